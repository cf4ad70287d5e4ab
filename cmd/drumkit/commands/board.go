package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/drumkit/drumkit/internal/database"
	"github.com/drumkit/drumkit/internal/logging"
	"github.com/drumkit/drumkit/internal/store"
	"github.com/drumkit/drumkit/internal/tui"
)

func runBoard(ctx context.Context, e *env) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, err := logging.New(e.cfg.Log.Path, e.cfg.Log.Level)
	if err != nil {
		return err
	}
	e.logger = logger

	opts := []store.Option{store.WithLogger(logger)}
	if path := e.cfg.Cache.Path; path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("mkdir cache dir: %w", err)
		}
		db, err := database.OpenMigrated(path)
		if err != nil {
			return fmt.Errorf("cache: %w", err)
		}
		defer db.Close()
		opts = append(opts, store.WithSnapshotter(database.NewSnapshotRepo(db)))
	}

	st := store.New(e.newClient(), opts...)
	if n, err := st.Warm(ctx); err != nil {
		logger.Warn("warm cache failed", zap.Error(err))
	} else if n > 0 {
		logger.Info("warmed cache", zap.Int("entries", n))
	}

	model := tui.New(ctx, st, tui.Options{
		PageSize:     e.cfg.List.PageSize,
		PageSizes:    e.cfg.List.PageSizes,
		TotalRecords: e.cfg.List.TotalRecords,
		Location:     e.cfg.UI.Location(),
		Logger:       logger,
	})
	logger.Info("starting board", zap.String("base_url", e.cfg.API.BaseURL))
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}
