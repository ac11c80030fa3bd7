package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PACTWATCH_STORAGE", "PACTWATCH_DATA_DIR", "PACTWATCH_SQLITE_PATH",
		"PACTWATCH_REDIS_ADDR", "PACTWATCH_REDIS_DB", "PACTWATCH_REDIS_PASSWORD",
		"PACTWATCH_S3_BUCKET", "PACTWATCH_S3_REGION", "PACTWATCH_S3_ENDPOINT",
		"PACTWATCH_S3_PREFIX", "PACTWATCH_HORIZON_DAYS", "PACTWATCH_ORG_SUFFIX",
		"LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, StorageFile, cfg.Storage)
	assert.Contains(t, cfg.DataDir, ".pactwatch")
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 30, cfg.HorizonDays)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PACTWATCH_STORAGE", "sqlite")
	t.Setenv("PACTWATCH_SQLITE_PATH", "/tmp/contracts.db")
	t.Setenv("PACTWATCH_HORIZON_DAYS", "45")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Load()

	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, "/tmp/contracts.db", cfg.SQLitePath)
	assert.Equal(t, 45, cfg.HorizonDays)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadIgnoresBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("PACTWATCH_HORIZON_DAYS", "soon")

	cfg := Load()
	assert.Equal(t, 30, cfg.HorizonDays)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pactwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage: redis
redis_addr: cache:6379
horizon_days: 14
log_level: WARN
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, StorageRedis, cfg.Storage)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 14, cfg.HorizonDays)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
	assert.Equal(t, "us-east-1", cfg.S3Region, "unset fields still get defaults")
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pactwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("horizons_days: 14\n"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestSlogLevelFallback(t *testing.T) {
	cfg := &Config{LogLevel: "bogus"}
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}
