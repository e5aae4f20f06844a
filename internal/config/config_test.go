package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644))
	return dir
}

func clearEnv(t *testing.T) {
	for _, key := range []string{"JWT_SECRET", "SERVER_MODE", "DATABASE_DRIVER", "STORAGE_TYPE", "REDIS_ENABLED"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	uploads := filepath.Join(t.TempDir(), "uploads")
	dir := writeConfig(t, `
server:
  mode: test
database:
  driver: sqlite
  path: quiz.db
jwt:
  secret: a-test-secret
  expire_hours: 72
storage:
  type: local
  local_path: `+uploads+`
cors:
  allowed_origins:
    - http://localhost:5173
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 72*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 300*time.Second, cfg.CacheTTL())
	assert.Equal(t, time.Minute, cfg.RateLimitWindow())
	assert.Equal(t, 1000, cfg.RateLimit.MaxRequests)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigPath)

	info, err := os.Stat(uploads)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "from-the-environment")
	dir := writeConfig(t, `
database:
  driver: sqlite
jwt:
  secret: from-file
storage:
  local_path: `+t.TempDir()+`
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-the-environment", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
}

func TestLoadConfigValidation(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		body string
	}{
		{"short secret in release", "server:\n  mode: release\ndatabase:\n  driver: sqlite\njwt:\n  secret: short\n"},
		{"missing secret", "database:\n  driver: sqlite\n"},
		{"unsupported driver", "database:\n  driver: oracle\njwt:\n  secret: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body + "storage:\n  local_path: " + t.TempDir() + "\n"
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
