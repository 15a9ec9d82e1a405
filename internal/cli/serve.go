package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/server"
	"github.com/hyperjump/kotae/internal/watcher"
)

func (a *app) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API on the configured host and port.
With the file backend and watch.enabled, edits to the corpus file are
picked up without a restart.`,
		Args: cobra.NoArgs,
		RunE: a.runServe,
	}
}

func (a *app) runServe(cmd *cobra.Command, args []string) error {
	logger, err := a.logger(false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("config loaded",
		zap.String("config_path", a.resolvedPath),
		zap.String("backend", a.cfg.Storage.Backend),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	components, err := a.initializeComponents(ctx, logger)
	if err != nil {
		return err
	}
	defer components.Close()

	var watch server.WatchService
	if a.cfg.Watch.Enabled && a.cfg.Storage.Backend == config.BackendFile {
		b := components.bot
		w := watcher.NewWatcher(
			components.store.Paths(),
			func(path string) {
				if err := b.Reload(context.Background()); err != nil {
					logger.Warn("reload after file change failed", zap.String("path", path), zap.Error(err))
				}
			},
			watcher.WithLogger(logger),
			watcher.WithDebounce(time.Duration(a.cfg.Watch.DebounceMs)*time.Millisecond),
		)
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
		watch = w
		logger.Info("watching corpus file", zap.Strings("files", w.Files()))
	}

	srv := server.NewServer(components.bot, components.metrics, &a.cfg.Server, logger, watch)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
