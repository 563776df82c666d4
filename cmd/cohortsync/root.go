package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	app "github.com/mohammadpnp/cohort-sync/internal/application/cohort"
	"github.com/mohammadpnp/cohort-sync/internal/config"
	"github.com/mohammadpnp/cohort-sync/internal/logging"
)

type rootOptions struct {
	configFile string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "cohortsync",
		Short: "Synchronise LMS cohorts with the academic roster",
		Long: `cohortsync reads the roster of learners per module from the academic
information system and reconciles the cohorts of the LMS database with it:
missing cohorts and users are created, missing memberships are added and
memberships the roster no longer lists are removed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides log.level)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: json, console or auto (overrides log.format)")

	cmd.AddCommand(newSyncCmd(opts))
	cmd.AddCommand(newServeCmd(opts))

	return cmd
}

// load reads the configuration and builds the logger it describes.
func (o *rootOptions) load(cmd *cobra.Command) (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return config.Config{}, zerolog.Nop(), &exitError{code: app.ExitCodeSetup, err: err}
	}

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}

	log := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	}, cmd.ErrOrStderr())

	return cfg, log, nil
}
