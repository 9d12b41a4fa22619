package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageDriver        = errors.New("unknown storage driver")
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env               string     `mapstructure:"env"`                // current application environment (local, dev, production)
	LogLevel          string     `mapstructure:"log_level"`          // overrides the environment default level when set
	TelegramAPIToken  string     `mapstructure:"-"`                  // Telegram API token loaded from environment
	AdminPasswordHash string     `mapstructure:"-"`                  // bcrypt hash, admin area is disabled when empty
	CatalogPath       string     `mapstructure:"catalog_path"`       // path to the 31-day sheet JSON
	ContestsPath      string     `mapstructure:"contests_path"`      // path to the contest list JSON
	Timezone          string     `mapstructure:"timezone"`           // zone defining the local calendar day
	StreakWindowDays  int        `mapstructure:"streak_window_days"` // trailing window for streak recomputation
	HeatmapDays       int        `mapstructure:"heatmap_days"`       // trailing days shown on the heatmap
	Storage           Storage    `mapstructure:"storage"`
	DB                DB         `mapstructure:"database"`
	HTTP              HTTP       `mapstructure:"http"`
	Codeforces        Codeforces `mapstructure:"codeforces"`
	Reminders         Reminders  `mapstructure:"reminders"`

	Location *time.Location `mapstructure:"-"`
}

// Storage selects where progress documents are kept.
type Storage struct {
	Driver string `mapstructure:"driver"` // "file" or "postgres"
	Dir    string `mapstructure:"dir"`    // directory for the file driver
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// HTTP configures the JSON read API.
type HTTP struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// Codeforces configures the external stats adapter.
type Codeforces struct {
	BaseURL          string        `mapstructure:"base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	SubmissionsCount int           `mapstructure:"submissions_count"` // upper bound of submissions fetched per sync
}

// Reminders configures the streak-at-risk notifications.
type Reminders struct {
	Enabled bool   `mapstructure:"enabled"`
	Spec    string `mapstructure:"spec"` // cron expression evaluated in Timezone
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// A missing .env is fine, real environments set variables directly.
	_ = godotenv.Load()

	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("admin_password_hash", "ADMIN_PASSWORD_HASH")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}
	cfg.AdminPasswordHash = v.GetString("admin_password_hash")
	cfg.DB.URL = v.GetString("database_url")

	switch cfg.Storage.Driver {
	case StorageFile:
	case StoragePostgres:
		if cfg.DB.URL == "" {
			return nil, ErrMissingEnvironmentVariables
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorageDriver, cfg.Storage.Driver)
	}

	loc, err := entities.ParseLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("parse timezone: %w", err)
	}
	cfg.Location = loc

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")
	v.SetDefault("catalog_path", "assets/data/cp31.json")
	v.SetDefault("contests_path", "assets/data/contests.json")
	v.SetDefault("timezone", "UTC")
	v.SetDefault("streak_window_days", 365)
	v.SetDefault("heatmap_days", 365)
	v.SetDefault("storage.driver", StorageFile)
	v.SetDefault("storage.dir", "./data/progress")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("http.enabled", true)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("codeforces.base_url", "https://codeforces.com/api")
	v.SetDefault("codeforces.timeout", "15s")
	v.SetDefault("codeforces.submissions_count", 1000)
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.spec", "0 20 * * *")
}
