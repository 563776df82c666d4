package bootstrap

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	app "github.com/mohammadpnp/cohort-sync/internal/application/cohort"
	"github.com/mohammadpnp/cohort-sync/internal/config"
	domain "github.com/mohammadpnp/cohort-sync/internal/domain/cohort"
	"github.com/mohammadpnp/cohort-sync/internal/infrastructure/db"
	"github.com/mohammadpnp/cohort-sync/internal/infrastructure/db/models"
	"github.com/mohammadpnp/cohort-sync/internal/infrastructure/repository"
	"github.com/mohammadpnp/cohort-sync/internal/infrastructure/source"
	"github.com/mohammadpnp/cohort-sync/internal/infrastructure/textcodec"
)

// App holds the wired sync pipeline and its use cases.
type App struct {
	DB          *gorm.DB
	Syncer      *app.Syncer
	RunSync     app.RunSync
	GetLastSync app.GetLastSync
	Log         zerolog.Logger
}

// NewApp validates cfg, opens the destination store and wires the syncer.
func NewApp(cfg config.Config, log zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	encoder, sourceCharset, err := newCodecs(cfg)
	if err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.Destination.DSN)
	if err != nil {
		return nil, err
	}

	tables := models.NewTables(cfg.Destination.TablePrefix)
	runs := repository.NewSyncRunRepository(database, tables)
	connector := source.NewConnector(SourceConfig(cfg.Source), sourceCharset)

	syncer := app.NewSyncer(
		connector,
		repository.NewDestination(database, tables),
		runs,
		app.NewRunCache(),
		encoder,
		SyncerConfig(cfg),
		log.With().Str("component", "syncer").Logger(),
	)

	return &App{
		DB:          database,
		Syncer:      syncer,
		RunSync:     app.NewRunSync(syncer, nil),
		GetLastSync: app.NewGetLastSync(runs),
		Log:         log,
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}

func SourceConfig(cfg config.SourceConfig) source.Config {
	return source.Config{
		DSN:      cfg.DSN,
		Host:     cfg.Host,
		Port:     cfg.Port,
		Name:     cfg.Name,
		User:     cfg.User,
		Password: cfg.Password,
		SSLMode:  cfg.SSLMode,
		Schema:   cfg.Schema,
		Table:    cfg.Table,
		Columns:  source.DefaultColumns(),
	}
}

func SyncerConfig(cfg config.Config) app.SyncerConfig {
	return app.SyncerConfig{
		Groups: app.GroupDefaults{
			ContextID: cfg.Groups.ContextID,
			Component: cfg.Groups.Component,
		},
		Users: domain.UserDefaults{
			Auth:    cfg.Users.Auth,
			Country: cfg.Users.Country,
		},
	}
}

func newCodecs(cfg config.Config) (*textcodec.DescriptionEncoder, textcodec.Charset, error) {
	quoting, err := textcodec.ParseQuoting(cfg.Destination.Quoting)
	if err != nil {
		return nil, textcodec.Charset{}, fmt.Errorf("destination quoting: %w", err)
	}
	destCharset, err := textcodec.LookupCharset(cfg.Destination.Charset)
	if err != nil {
		return nil, textcodec.Charset{}, fmt.Errorf("destination charset: %w", err)
	}
	if !destCharset.IsUTF8() {
		return nil, textcodec.Charset{}, fmt.Errorf("destination charset %s: %w: the destination connection only accepts UTF-8", destCharset.Name(), textcodec.ErrUnsupportedCharset)
	}
	sourceCharset, err := textcodec.LookupCharset(cfg.Source.Charset)
	if err != nil {
		return nil, textcodec.Charset{}, fmt.Errorf("source charset: %w", err)
	}

	return textcodec.NewDescriptionEncoder(quoting), sourceCharset, nil
}
