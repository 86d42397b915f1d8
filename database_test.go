package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabaseConfig(t *testing.T) {
	config := NewDatabaseConfig()
	assert.NotNil(t, config)
	assert.Equal(t, "postgres", config.Driver)
	assert.Equal(t, "localhost", config.Host)
	assert.Equal(t, "5432", config.Port)
	assert.Equal(t, "membership", config.Database)
	assert.Equal(t, 25, config.MaxOpenConns)
	assert.Equal(t, 5, config.MaxIdleConns)
	assert.Equal(t, time.Hour, config.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, config.ConnMaxIdleTime)
	assert.Equal(t, 10*time.Second, config.ConnectTimeout)
	assert.Equal(t, 10, config.RetryAttempts)
	assert.Equal(t, 2*time.Second, config.RetryDelay)
}

func TestNewDatabaseConfig_WithEnvVars(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/test-membership.db")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("DB_RETRY_DELAY", "500ms")

	config := NewDatabaseConfig()
	assert.Equal(t, "sqlite", config.Driver)
	assert.Equal(t, "/tmp/test-membership.db", config.SQLitePath)
	assert.Equal(t, 50, config.MaxOpenConns)
	assert.Equal(t, 500*time.Millisecond, config.RetryDelay)
}

func TestParseIntOrDefault(t *testing.T) {
	t.Run("Returns parsed int when valid", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "42")
		assert.Equal(t, 42, parseIntOrDefault("TEST_INT_VAR", 10))
	})

	t.Run("Returns default when not set", func(t *testing.T) {
		os.Unsetenv("TEST_INT_VAR_MISSING")
		assert.Equal(t, 10, parseIntOrDefault("TEST_INT_VAR_MISSING", 10))
	})

	t.Run("Returns default when invalid", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "not-a-number")
		assert.Equal(t, 10, parseIntOrDefault("TEST_INT_VAR", 10))
	})
}

func TestParseDurationOrDefault(t *testing.T) {
	t.Run("Returns parsed duration when valid", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "90s")
		assert.Equal(t, 90*time.Second, parseDurationOrDefault("TEST_DURATION_VAR", "1h"))
	})

	t.Run("Returns default when not set", func(t *testing.T) {
		os.Unsetenv("TEST_DURATION_VAR_MISSING")
		assert.Equal(t, time.Hour, parseDurationOrDefault("TEST_DURATION_VAR_MISSING", "1h"))
	})

	t.Run("Returns default when invalid", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "soon")
		assert.Equal(t, time.Hour, parseDurationOrDefault("TEST_DURATION_VAR", "1h"))
	})
}

func TestConnectGORM_SQLite(t *testing.T) {
	config := &DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "membership.db"),
	}

	db, err := ConnectGORM(config)
	require.NoError(t, err)
	require.NotNil(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	sqlDB.Close()
}
