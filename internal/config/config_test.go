package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "token", cfg.TelegramAPIToken)
	assert.Equal(t, StorageFile, cfg.Storage.Driver)
	assert.Equal(t, 365, cfg.StreakWindowDays)
	assert.Equal(t, 15*time.Second, cfg.Codeforces.Timeout)
	assert.Equal(t, 1000, cfg.Codeforces.SubmissionsCount)
	assert.Equal(t, 30*time.Second, cfg.DB.MaxConnLifetime)
	assert.True(t, cfg.HTTP.Enabled)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Empty(t, cfg.AdminPasswordHash)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/cp31")
	t.Setenv("TIMEZONE", "Asia/Kolkata")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$hash")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	dsn, err := cfg.DB.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/cp31", dsn)
	assert.Equal(t, "Asia/Kolkata", cfg.Location.String())
	assert.Equal(t, "$2a$10$hash", cfg.AdminPasswordHash)
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")

	_, err := load(viper.New())
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}

func TestLoadPostgresWithoutURL(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := load(viper.New())
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}

func TestLoadUnknownDriver(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("STORAGE_DRIVER", "redis")

	_, err := load(viper.New())
	assert.ErrorIs(t, err, ErrUnknownStorageDriver)
}

func TestLoadInvalidTimezone(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("TIMEZONE", "Nowhere/Atlantis")

	_, err := load(viper.New())
	assert.Error(t, err)
}

func TestDSNEmpty(t *testing.T) {
	_, err := DB{}.DSN()
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}
