package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/infrastructure/database"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "APP_PORT", "AUTH_ENABLED", "REDIS_CACHE_TTL", "SEED_ON_STARTUP", "HTTPS_REDIRECT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.False(t, cfg.JWT.Enabled)
	assert.Equal(t, 60, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 15*time.Minute, cfg.Redis.CacheTTL)
	assert.True(t, cfg.Seed.OnStartup)
	assert.False(t, cfg.HTTP.HTTPSRedirect)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REDIS_CACHE_TTL", "30s")
	t.Setenv("SEED_ON_STARTUP", "false")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.True(t, cfg.JWT.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.False(t, cfg.Seed.OnStartup)
	assert.Equal(t, 0, cfg.Redis.DB, "bad numbers fall back to the default")
}

func TestValidate_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "real-secret")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_SQLITE_PATH", ":memory:")
	t.Setenv("DB_MAX_RETRIES", "0")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, database.DialectSQLite, cfg.Dialect)
	assert.Equal(t, ":memory:", cfg.SQLitePath)
	assert.Equal(t, 1, cfg.MaxRetries)
	assert.Equal(t, 5432, cfg.Port)

	t.Setenv("DB_DRIVER", "oracle")
	_, err = LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_DRIVER")

	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_CONNECT_TIMEOUT", "soon")
	_, err = LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_CONNECT_TIMEOUT")
}

func TestLoadDatabaseConfig_ProductionNeedsPassword(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PASSWORD", "")

	_, err := LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_PASSWORD")

	t.Setenv("DB_PASSWORD", "hunter2")
	_, err = LoadDatabaseConfig()
	assert.NoError(t, err)
}
