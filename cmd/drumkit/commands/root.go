package commands

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/drumkit/drumkit/internal/api"
	"github.com/drumkit/drumkit/internal/config"
)

// env is the dependency graph shared by subcommands.
type env struct {
	cfg    config.Config
	client *api.Client
	logger *zap.Logger
}

type rootFlags struct {
	configPath string
	baseURL    string
	noCache    bool
	logLevel   string
}

func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Running it without a subcommand starts
// the board.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	e := &env{}

	root := &cobra.Command{
		Use:           "drumkit",
		Short:         "Terminal load board for the drumkit load API",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.configPath != "" {
				if err := os.Setenv("DRUMKIT_CONFIG", flags.configPath); err != nil {
					return err
				}
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if flags.baseURL != "" {
				cfg.API.BaseURL = flags.baseURL
			}
			if flags.noCache {
				cfg.Cache.Path = ""
			}
			if flags.logLevel != "" {
				cfg.Log.Level = flags.logLevel
			}
			e.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd.Context(), e)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/drumkit/config.toml)")
	root.PersistentFlags().StringVar(&flags.baseURL, "base-url", "", "load API base URL")
	root.PersistentFlags().BoolVar(&flags.noCache, "no-cache", false, "do not read or write the snapshot cache")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(loadsCmd(e), configCmd(), cacheCmd(e))
	return root
}

func (e *env) newClient() *api.Client {
	return api.NewClient(e.cfg.API.BaseURL,
		api.WithTimeout(e.cfg.API.Timeout),
		api.WithLogger(e.logger),
	)
}
