package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/drumkit/drumkit/internal/database"
)

func cacheCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local snapshot cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every cached page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := e.cfg.Cache.Path
			if path == "" {
				return errors.New("cache is disabled")
			}
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Cache is empty.")
				return err
			}
			db, err := database.OpenMigrated(path)
			if err != nil {
				return fmt.Errorf("cache: %w", err)
			}
			defer db.Close()
			if err := database.NewSnapshotRepo(db).Clear(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", path)
			return err
		},
	})
	return cmd
}
