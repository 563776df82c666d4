// Package config loads cohortsync settings from .env files, COHORTSYNC_
// environment variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "COHORTSYNC"

var (
	ErrMissingDestination = errors.New("destination.dsn is required")
	ErrMissingSource      = errors.New("source.dsn or source.host is required")
	ErrReadConfigFile     = errors.New("failed to read config file")
)

type Config struct {
	ConfigFile string

	Source      SourceConfig
	Destination DestinationConfig
	Users       UsersConfig
	Groups      GroupsConfig
	HTTP        HTTPConfig
	Sync        SyncConfig
	Log         LogConfig
}

type SourceConfig struct {
	DSN      string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
	Schema   string
	Table    string
	// Charset of the stored roster text. Only applied when the source server
	// encoding is SQL_ASCII; other servers transcode to UTF-8 themselves.
	Charset string
}

type DestinationConfig struct {
	DSN         string
	TablePrefix string
	// Charset must be UTF-8, the only encoding the destination connection accepts.
	Charset string
	Quoting string
}

type UsersConfig struct {
	Auth    string
	Country string
}

type GroupsConfig struct {
	Component string
	ContextID int64
}

type HTTPConfig struct {
	Addr string
}

type SyncConfig struct {
	// Interval between scheduled runs in serve mode. Zero disables the worker.
	Interval time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// Load resolves each key from the first source that sets it: the process
// environment, then variables from .env and .env.local (which never override
// the process environment), then the config file, then defaults. An empty
// configFile skips the file.
func Load(configFile string) (Config, error) {
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrReadConfigFile, err)
		}
	}

	return fromViper(v), nil
}

// Validate checks what a sync run cannot do without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Destination.DSN) == "" {
		return ErrMissingDestination
	}
	if strings.TrimSpace(c.Source.DSN) == "" && strings.TrimSpace(c.Source.Host) == "" {
		return ErrMissingSource
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.dsn", "")
	v.SetDefault("source.host", "")
	v.SetDefault("source.port", 5432)
	v.SetDefault("source.name", "")
	v.SetDefault("source.user", "")
	v.SetDefault("source.password", "")
	v.SetDefault("source.sslmode", "prefer")
	v.SetDefault("source.schema", "ensam")
	v.SetDefault("source.table", "AM_SAVOIR_MEMBRES_GROUPES")
	v.SetDefault("source.charset", "utf-8")

	v.SetDefault("destination.dsn", "")
	v.SetDefault("destination.table_prefix", "mdl_")
	v.SetDefault("destination.charset", "utf-8")
	v.SetDefault("destination.quoting", "none")

	v.SetDefault("users.auth", "cas")
	v.SetDefault("users.country", "FR")

	v.SetDefault("groups.component", "enrol_roster")
	v.SetDefault("groups.context_id", 1)

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("sync.interval", time.Duration(0))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")
}

func fromViper(v *viper.Viper) Config {
	return Config{
		ConfigFile: v.ConfigFileUsed(),
		Source: SourceConfig{
			DSN:      v.GetString("source.dsn"),
			Host:     v.GetString("source.host"),
			Port:     v.GetInt("source.port"),
			Name:     v.GetString("source.name"),
			User:     v.GetString("source.user"),
			Password: v.GetString("source.password"),
			SSLMode:  v.GetString("source.sslmode"),
			Schema:   v.GetString("source.schema"),
			Table:    v.GetString("source.table"),
			Charset:  v.GetString("source.charset"),
		},
		Destination: DestinationConfig{
			DSN:         v.GetString("destination.dsn"),
			TablePrefix: v.GetString("destination.table_prefix"),
			Charset:     v.GetString("destination.charset"),
			Quoting:     v.GetString("destination.quoting"),
		},
		Users: UsersConfig{
			Auth:    v.GetString("users.auth"),
			Country: v.GetString("users.country"),
		},
		Groups: GroupsConfig{
			Component: v.GetString("groups.component"),
			ContextID: v.GetInt64("groups.context_id"),
		},
		HTTP: HTTPConfig{
			Addr: v.GetString("http.addr"),
		},
		Sync: SyncConfig{
			Interval: v.GetDuration("sync.interval"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}
}

// loadEnvFiles loads .env then .env.local. godotenv never overrides variables
// that are already set, so the real environment wins.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
