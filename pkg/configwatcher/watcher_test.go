package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PriyanshVijay26/quiz-master/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configBody(mode, uploads string) string {
	return "server:\n  mode: " + mode + "\n" +
		"database:\n  driver: sqlite\n" +
		"jwt:\n  secret: watcher-test-secret\n" +
		"storage:\n  local_path: " + uploads + "\n"
}

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	uploads := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configBody("debug", uploads)), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, path, func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// 等待监听建立
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(configBody("release-candidate", uploads)), 0644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "release-candidate", cfg.Server.Mode)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchConfigMissingDirectory(t *testing.T) {
	err := WatchConfig(context.Background(), filepath.Join(t.TempDir(), "missing", "config.yaml"), func(*config.Config) {})
	assert.Error(t, err)
}
