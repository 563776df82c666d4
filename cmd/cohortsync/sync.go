package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	app "github.com/mohammadpnp/cohort-sync/internal/application/cohort"
	"github.com/mohammadpnp/cohort-sync/internal/bootstrap"
	"github.com/mohammadpnp/cohort-sync/internal/logging"
)

func newSyncCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one cohort synchronisation and exit",
		Long: `Run one cohort synchronisation and exit with its status:
  0  success
  1  the source database could not be reached
  2  configuration or destination store failure
  3  another synchronisation is already running
  4  the source roster could not be read`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseReportFormat(output)
			if err != nil {
				return &exitError{code: app.ExitCodeSetup, err: err}
			}

			cfg, log, err := opts.load(cmd)
			if err != nil {
				return err
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

			trace := logging.NewWriterTrace(cmd.ErrOrStderr())
			run, runErr := application.Syncer.Run(ctx, trace)
			if run.ID != "" {
				if err := writeReport(cmd.OutOrStdout(), format, run); err != nil {
					log.Warn().Err(err).Msg("write report failed")
				}
			}
			if runErr != nil {
				return &exitError{code: app.ExitCodeFor(runErr), err: runErr}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(reportText), "report format: text, json or yaml")

	return cmd
}
