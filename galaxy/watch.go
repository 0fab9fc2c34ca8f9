package galaxy

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchSettle is how long a file must stay quiet before it is reloaded.
// Editors often write a file in several steps.
const watchSettle = 100 * time.Millisecond

// Watch reloads the galaxy file at path whenever it changes on disk and
// delivers each galaxy that loads and validates on the returned channel.
// Only the latest unread galaxy is kept. Files that fail to load are logged
// and skipped. The channel is closed once ctx is done.
//
// The parent directory is watched rather than the file so that editors that
// replace the file by rename keep being observed.
func Watch(ctx context.Context, path string, logger *slog.Logger) (<-chan *Galaxy, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "galaxy_watch", "path", path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	out := make(chan *Galaxy, 1)
	go func() {
		defer close(out)
		defer w.Close()

		var settle *time.Timer
		var settleC <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if settle != nil {
					settle.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if settle == nil {
					settle = time.NewTimer(watchSettle)
				} else {
					settle.Reset(watchSettle)
				}
				settleC = settle.C
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error", "error", err)
			case <-settleC:
				settleC = nil
				g, err := Load(abs)
				if err != nil {
					logger.Warn("reload failed", "error", err)
					continue
				}
				logger.Info("galaxy reloaded", "systems", len(g.StarSystems))
				deliverLatest(out, g)
			}
		}
	}()
	return out, nil
}

// deliverLatest sends g, replacing an unread value. out must have a single
// sender.
func deliverLatest(out chan *Galaxy, g *Galaxy) {
	select {
	case out <- g:
		return
	default:
	}
	select {
	case <-out:
	default:
	}
	out <- g
}
