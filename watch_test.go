package marquee

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWatchConfigAppliesChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marquee.yaml")
	require.NoError(t, os.WriteFile(path, []byte("swap_lock: 500ms\n"), 0o644))

	var mu sync.Mutex
	var got []Config
	core, logs := observer.New(zap.WarnLevel)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, path, zap.New(core), func(cfg Config) {
			mu.Lock()
			got = append(got, cfg)
			mu.Unlock()
		})
	}()

	last := func() (Config, bool) {
		mu.Lock()
		defer mu.Unlock()
		if len(got) == 0 {
			return Config{}, false
		}
		return got[len(got)-1], true
	}

	// The watcher may not be registered yet; keep rewriting until it sees one.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("swap_lock: 750ms\n"), 0o644)
		cfg, ok := last()
		return ok && cfg.SwapLock == 750*time.Millisecond
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("swap_lock: -1s\n"), 0o644))
	require.Eventually(t, func() bool {
		return logs.FilterMessage("config reload rejected").Len() > 0
	}, 5*time.Second, 20*time.Millisecond)
	cfg, _ := last()
	require.Equal(t, 750*time.Millisecond, cfg.SwapLock, "invalid file keeps the last good config")

	cancel()
	require.NoError(t, <-done)
}

func TestWatchConfigMissingDir(t *testing.T) {
	err := WatchConfig(context.Background(), filepath.Join(t.TempDir(), "nope", "marquee.yaml"), nil, func(Config) {})
	require.Error(t, err)
}
