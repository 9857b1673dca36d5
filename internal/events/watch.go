package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrNotWatchable is returned for database paths that have no file on disk
var ErrNotWatchable = errors.New("database path cannot be watched")

// WatchDatabase reports writes to the sqlite file at dbPath, its WAL and its
// journal as AllBoards change events. Bursts of writes within debounce become
// one event. The channel is closed when ctx is done or the watcher fails.
//
// It is the fallback when no daemon is running: every board is refreshed,
// since the file does not say which board changed.
func WatchDatabase(ctx context.Context, dbPath string, debounce time.Duration) (<-chan Event, error) {
	if dbPath == "" || dbPath == ":memory:" || strings.HasPrefix(dbPath, "file::memory:") {
		return nil, fmt.Errorf("%w: %q", ErrNotWatchable, dbPath)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	// the directory is watched so WAL files created later are seen
	dir := filepath.Dir(dbPath)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	out := make(chan Event, 1)
	go watchLoop(ctx, watcher, filepath.Base(dbPath), debounce, out)
	return out, nil
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, base string, debounce time.Duration, out chan<- Event) {
	defer close(out)
	defer watcher.Close()

	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := false

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isDatabaseWrite(ev, base) {
				continue
			}
			if !pending {
				pending = true
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("database watcher error", "error", err)

		case <-timer.C:
			pending = false
			select {
			case out <- Event{Type: EventBoardChanged, BoardID: AllBoards, Timestamp: time.Now()}:
			default:
				// the reader has not drained the last refresh yet
			}

		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// isDatabaseWrite reports writes to base, base-wal or base-journal
func isDatabaseWrite(ev fsnotify.Event, base string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	name := filepath.Base(ev.Name)
	return name == base || name == base+"-wal" || name == base+"-journal"
}
