package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	app "github.com/mohammadpnp/cohort-sync/internal/application/cohort"
	"github.com/mohammadpnp/cohort-sync/internal/bootstrap"
	"github.com/mohammadpnp/cohort-sync/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		addr     string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the admin API and optionally sync on an interval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.HTTP.Addr = addr
			}
			if cmd.Flags().Changed("interval") {
				cfg.Sync.Interval = interval
			}

			application, err := bootstrap.NewApp(cfg, log)
			if err != nil {
				return &exitError{code: app.ExitCodeSetup, err: err}
			}
			defer func() {
				if err := application.Close(); err != nil {
					log.Warn().Err(err).Msg("close destination failed")
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			workerCtx, stopWorker := context.WithCancel(ctx)
			defer stopWorker()

			if cfg.Sync.Interval > 0 {
				newTrace := func() app.Trace { return logging.NewLogTrace(log) }
				worker := app.NewSyncWorker(application.Syncer, newTrace, app.SyncWorkerConfig{
					Interval: cfg.Sync.Interval,
				}, log.With().Str("component", "sync_worker").Logger())
				worker.Start(workerCtx)
			}

			server := bootstrap.NewHTTPServer(application)
			serverErr := make(chan error, 1)
			go func() {
				log.Info().Str("addr", cfg.HTTP.Addr).Msg("admin server listening")
				if err := server.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
				close(serverErr)
			}()

			select {
			case <-ctx.Done():
			case err, ok := <-serverErr:
				if ok {
					return &exitError{code: app.ExitCodeSetup, err: err}
				}
			}

			stopWorker()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			log.Info().Msg("shutting down")
			if err := server.Shutdown(shutdownCtx); err != nil {
				return &exitError{code: app.ExitCodeSetup, err: err}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (overrides http.addr)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "sync interval, 0 disables scheduled runs (overrides sync.interval)")

	return cmd
}
