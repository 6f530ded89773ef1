package index

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thorcollective/hearth/internal/storage"
)

// debounce groups bursts of fsnotify events (editors fire several per save)
// into a single sync pass.
const debounce = 250 * time.Millisecond

// SyncCallback receives the changes applied by a watcher-driven sync pass.
// It runs on the watcher goroutine after the index has been updated, so a
// fresh snapshot can be loaded and published.
type SyncCallback func(changes []Change)

// Watch starts an fsnotify watcher on the vault root and resyncs the index
// whenever hunt files change, until ctx is cancelled. Because the catalog
// snapshot is rebuilt wholesale on every change, individual events are not
// replayed one by one: any relevant event schedules a debounced full sync,
// whose applied changes are handed to cb.
//
// New directories created at runtime (e.g. a category directory appearing
// after startup) are added to the watch list automatically.
func Watch(ctx context.Context, db HuntIndex, store storage.Provider, vaultRoot string, logger *slog.Logger, cb SyncCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, vaultRoot); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", vaultRoot))

	var syncTimer *time.Timer
	var syncCh <-chan time.Time

	scheduleSync := func() {
		if syncTimer == nil {
			syncTimer = time.NewTimer(debounce)
			syncCh = syncTimer.C
		} else {
			syncTimer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if syncTimer != nil {
				syncTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-syncCh:
			changes, syncErr := Sync(db, store, logger)
			if syncErr != nil {
				logger.Warn("watcher: sync failed", slog.String("error", syncErr.Error()))
				continue
			}
			if len(changes) > 0 {
				logger.Debug("watcher: synced", slog.Int("changes", len(changes)))
				if cb != nil {
					cb(changes)
				}
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			// New directories get added to the watch list and trigger a
			// sync in case they already contain hunt files.
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					scheduleSync()
					continue
				}
			}

			if !strings.HasSuffix(ev.Name, ".md") {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				scheduleSync()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
