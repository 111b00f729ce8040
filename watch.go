package marquee

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchConfig reloads the config file at path whenever it changes and passes
// each valid result to apply. Invalid files are logged and skipped, so the
// last good configuration stays in effect. It blocks until ctx is cancelled.
//
// The containing directory is watched rather than the file, so editors that
// save by renaming a temp file over the original are picked up too. apply is
// called from the watcher's goroutine.
func WatchConfig(ctx context.Context, path string, logger *zap.Logger, apply func(Config)) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			data, err := os.ReadFile(abs)
			if err != nil || len(bytes.TrimSpace(data)) == 0 {
				// Mid-save: the file is gone or truncated. The next event
				// carries the new content.
				continue
			}
			cfg, err := loadConfig(data)
			if err != nil {
				logger.Warn("config reload rejected", zap.String("path", abs), zap.Error(err))
				continue
			}
			logger.Debug("config file changed", zap.String("path", abs), zap.Stringer("op", ev.Op))
			apply(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", zap.Error(err))
		}
	}
}
