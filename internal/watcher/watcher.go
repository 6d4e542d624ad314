// Package watcher keeps the catalog's presence flags in sync with the
// filesystem. Verify performs a one-shot sweep; Watch follows create,
// rename, and remove events on the directories holding cataloged files.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/fsnotify/fsnotify"

	"clipshelf/internal/catalog"
)

// VerifyResult summarizes a presence sweep.
type VerifyResult struct {
	Checked int
	Missing int
	Changed int
}

// Verify stats every cataloged path and updates records whose presence flag
// no longer matches the filesystem.
func Verify(ctx context.Context, store *catalog.Store) (VerifyResult, error) {
	records, err := store.List(ctx, catalog.Filter{})
	if err != nil {
		return VerifyResult{}, err
	}

	var result VerifyResult
	for _, record := range records {
		result.Checked++
		missing := !pathExists(record.Path)
		if missing {
			result.Missing++
		}
		if missing == record.Missing {
			continue
		}
		if err := store.MarkPresence(ctx, record.ID, missing); err != nil {
			return result, err
		}
		result.Changed++
	}
	return result, nil
}

// Watcher follows filesystem events for cataloged files.
type Watcher struct {
	store  *catalog.Store
	logger *slog.Logger
}

// New constructs a Watcher over the given store.
func New(store *catalog.Store, logger *slog.Logger) *Watcher {
	return &Watcher{store: store, logger: logger}
}

// Run performs an initial presence sweep, then watches the parent
// directories of all cataloged files until the context is canceled.
// Directories that cannot be watched are logged and skipped.
func (w *Watcher) Run(ctx context.Context) error {
	sweep, err := Verify(ctx, w.store)
	if err != nil {
		return err
	}
	w.logger.Info("initial presence sweep",
		"checked", sweep.Checked,
		"missing", sweep.Missing,
		"changed", sweep.Changed)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	dirs, err := w.watchedDirs(ctx)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			w.logger.Warn("cannot watch directory", "dir", dir, "error", err)
		}
	}
	w.logger.Info("watching directories", "count", len(dirs))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
		return
	}

	record, err := w.store.GetByPath(ctx, event.Name)
	if err != nil {
		w.logger.Warn("lookup failed", "path", event.Name, "error", err)
		return
	}
	if record == nil {
		return
	}

	missing := !pathExists(record.Path)
	if missing == record.Missing {
		return
	}
	if err := w.store.MarkPresence(ctx, record.ID, missing); err != nil {
		w.logger.Warn("presence update failed", "path", record.Path, "error", err)
		return
	}
	w.logger.Info("presence changed", "path", record.Path, "missing", missing)
}

// watchedDirs returns the sorted set of parent directories of all records.
func (w *Watcher) watchedDirs(ctx context.Context) ([]string, error) {
	records, err := w.store.List(ctx, catalog.Filter{})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	for _, record := range records {
		seen[filepath.Dir(record.Path)] = struct{}{}
	}
	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs, nil
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
