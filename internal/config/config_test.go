package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "3000", cfg.Server.Port)
	require.Equal(t, "file", cfg.Storage.Backend)
	require.Equal(t, "data", cfg.Storage.DataDir)
	require.Equal(t, 5*time.Minute, cfg.KeepAlive.Interval)
	require.Equal(t, "http://localhost:3000", cfg.KeepAlive.URL)
	require.False(t, cfg.KeepAlive.Enabled, "keep-alive is off outside production")
	require.Equal(t, 24*time.Hour, cfg.Backup.Interval)
	require.False(t, cfg.MinIO.Configured())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("BACKUP_KEEP", "7")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Server.Port)
	require.True(t, cfg.Server.Production())
	require.True(t, cfg.KeepAlive.Enabled)
	require.Equal(t, "http://localhost:8080", cfg.KeepAlive.URL)
	require.Equal(t, "redis", cfg.Storage.Backend)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr())
	require.Equal(t, 7, cfg.Backup.Keep)
}

func TestLoadConfigRejectsIncompleteBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "mongo")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("STORAGE_BACKEND", "sqlite")
	_, err = LoadConfig()
	require.Error(t, err)
}
