package workers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/store"
)

// ChangesFunc reports the unsynced local edits. store.LocalStore.PendingChanges
// implements it.
type ChangesFunc func(ctx context.Context) (store.PendingChanges, error)

// StoreWatcher turns writes to the local database file into data-change
// triggers. Bursts are debounced. A burst that settles while a sync runs is
// checked again once the sync is over.
//
// With a ChangesFunc only bursts that changed the pending edits trigger, so
// the writes of a sync itself (its commit, sync_meta, WAL checkpoints) do
// not start another one.
type StoreWatcher struct {
	path     string
	target   SyncTarget
	busy     func() bool
	changes  ChangesFunc
	debounce time.Duration
	logger   *logger.Logger

	seen store.PendingChanges
}

// StoreWatcherOption configures a StoreWatcher.
type StoreWatcherOption func(*StoreWatcher)

// WithPendingChanges makes the watcher trigger only when fn reports new
// unsynced edits.
func WithPendingChanges(fn ChangesFunc) StoreWatcherOption {
	return func(w *StoreWatcher) { w.changes = fn }
}

// NewStoreWatcher watches the database at path. busy reports whether a sync
// is running; it may be nil.
func NewStoreWatcher(path string, target SyncTarget, busy func() bool, debounce time.Duration, logger *logger.Logger, opts ...StoreWatcherOption) *StoreWatcher {
	if busy == nil {
		busy = func() bool { return false }
	}
	w := &StoreWatcher{
		path:     filepath.Clean(path),
		target:   target,
		busy:     busy,
		debounce: debounce,
		logger:   logger.WithStr("worker", "store-watcher"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches the directory of the database, since SQLite replaces and
// creates sidecar files next to it.
func (w *StoreWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create store watcher: %w", err)
	}
	defer watcher.Close()

	if err = watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Info().Str("path", w.path).Msg("watching local store")

	if w.changes != nil {
		// edits made before start are picked up by the daemon's first sync
		if w.seen, err = w.changes(ctx); err != nil {
			w.logger.Err(err).Msg("error reading pending changes")
		}
	}

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Err(err).Msg("store watcher error")

		case <-timerC:
			timerC = nil
			if w.busy() {
				timer.Reset(w.debounce)
				timerC = timer.C
				continue
			}
			if !w.userChanged(ctx) {
				continue
			}
			w.logger.Debug().Msg("local store changed")
			w.target.Trigger(service.TriggerDataChanged)
		}
	}
}

// userChanged reports whether the settled burst carries new unsynced edits.
// Without a ChangesFunc every burst counts.
func (w *StoreWatcher) userChanged(ctx context.Context) bool {
	if w.changes == nil {
		return true
	}

	current, err := w.changes(ctx)
	if err != nil {
		w.logger.Err(err).Msg("error reading pending changes")
		return false
	}
	if current == w.seen {
		return false
	}
	w.seen = current
	return !current.Empty()
}

// relevant reports whether event is a write to the database or one of its
// journal files.
func (w *StoreWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == w.path || strings.HasPrefix(name, w.path+"-")
}
