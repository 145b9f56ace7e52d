package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

// versionStamp is what the commit guard compares: whether the row existed
// and its modification and deletion state when the working copy first saw it.
type versionStamp struct {
	found    bool
	modified time.Time
	deleted  bool
}

func stampOf(r *models.Record) versionStamp {
	return versionStamp{found: true, modified: r.ModifiedAt(), deleted: r.IsDeleted()}
}

func (v versionStamp) equal(o versionStamp) bool {
	return v.found == o.found && v.deleted == o.deleted && v.modified.Equal(o.modified)
}

// TableChanges counts the staged writes of one table.
type TableChanges struct {
	Upserted int
	Deleted  int
}

// ChangeSet summarises what a working copy would write.
type ChangeSet struct {
	Folders TableChanges
	Notes   TableChanges
}

// Empty reports whether nothing was staged.
func (c ChangeSet) Empty() bool {
	return c == ChangeSet{}
}

// Total returns the number of staged writes.
func (c ChangeSet) Total() int {
	return c.Folders.Upserted + c.Folders.Deleted + c.Notes.Upserted + c.Notes.Deleted
}

// CommitResult describes an applied working copy.
type CommitResult struct {
	Applied ChangeSet
	// Skipped lists ids whose primary row changed after the working copy
	// first read it. Their staged writes were dropped; the newer local
	// state is picked up by the next sync.
	Skipped []string
}

// WorkingCopy is an isolated view of the local store. Reads fall through to
// the primary tables until a record is staged; writes stay in memory until
// Commit applies all of them in one SQL transaction.
type WorkingCopy struct {
	db      *DB
	folders *overlay[*models.Folder]
	notes   *overlay[*models.Note]
	closed  atomic.Bool
}

func newWorkingCopy(db *DB, folders *localTable[*models.Folder], notes *localTable[*models.Note]) *WorkingCopy {
	w := &WorkingCopy{db: db}
	w.folders = newOverlay(folders, &w.closed)
	w.notes = newOverlay(notes, &w.closed)
	return w
}

func (w *WorkingCopy) Folders() LocalTable[*models.Folder] { return w.folders }

func (w *WorkingCopy) Notes() LocalTable[*models.Note] { return w.notes }

// Changes returns the number of staged writes per table.
func (w *WorkingCopy) Changes() ChangeSet {
	return ChangeSet{Folders: w.folders.changes(), Notes: w.notes.changes()}
}

// Discard drops every staged write. It is safe to call more than once.
func (w *WorkingCopy) Discard() {
	if w.closed.Swap(true) {
		return
	}
	w.folders.reset()
	w.notes.reset()
}

// Commit applies the staged writes atomically. A staged write whose primary
// row was modified since the working copy first read it is skipped. On
// error nothing is applied. The working copy is closed either way.
func (w *WorkingCopy) Commit(ctx context.Context) (CommitResult, error) {
	if w.closed.Swap(true) {
		return CommitResult{}, ErrWorkingCopyClosed
	}
	defer func() {
		w.folders.reset()
		w.notes.reset()
	}()

	log := logger.FromContext(ctx)

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return CommitResult{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	var result CommitResult
	apply := func(fn func(*sql.Tx) (TableChanges, []string, error), into *TableChanges) error {
		changes, skipped, err := fn(tx)
		if err != nil {
			return err
		}
		*into = changes
		result.Skipped = append(result.Skipped, skipped...)
		return nil
	}

	if err := apply(func(tx *sql.Tx) (TableChanges, []string, error) { return w.folders.apply(ctx, tx) }, &result.Applied.Folders); err != nil {
		_ = tx.Rollback()
		log.Err(err).Str("func", "WorkingCopy.Commit").Msg("rolled back working copy")
		return CommitResult{}, err
	}
	if err := apply(func(tx *sql.Tx) (TableChanges, []string, error) { return w.notes.apply(ctx, tx) }, &result.Applied.Notes); err != nil {
		_ = tx.Rollback()
		log.Err(err).Str("func", "WorkingCopy.Commit").Msg("rolled back working copy")
		return CommitResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return CommitResult{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Debug().
		Str("func", "WorkingCopy.Commit").
		Int("folders_upserted", result.Applied.Folders.Upserted).
		Int("folders_deleted", result.Applied.Folders.Deleted).
		Int("notes_upserted", result.Applied.Notes.Upserted).
		Int("notes_deleted", result.Applied.Notes.Deleted).
		Int("skipped", len(result.Skipped)).
		Msg("working copy committed")

	return result, nil
}

// overlay stages the writes of one table on top of the primary table.
type overlay[T models.Syncable[T]] struct {
	base   *localTable[T]
	closed *atomic.Bool

	mu       sync.Mutex
	staged   map[string]T
	removed  map[string]struct{}
	order    []string
	observed map[string]versionStamp
}

func newOverlay[T models.Syncable[T]](base *localTable[T], closed *atomic.Bool) *overlay[T] {
	o := &overlay[T]{base: base, closed: closed}
	o.reset()
	return o
}

func (o *overlay[T]) reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.staged = make(map[string]T)
	o.removed = make(map[string]struct{})
	o.order = nil
	o.observed = make(map[string]versionStamp)
}

func (o *overlay[T]) changes() TableChanges {
	o.mu.Lock()
	defer o.mu.Unlock()
	return TableChanges{Upserted: len(o.staged), Deleted: len(o.removed)}
}

// observe records the primary state of id the first time it is seen.
// Callers hold o.mu.
func (o *overlay[T]) observe(id string, stamp versionStamp) {
	if _, ok := o.observed[id]; !ok {
		o.observed[id] = stamp
	}
}

func (o *overlay[T]) touch(id string) {
	for _, seen := range o.order {
		if seen == id {
			return
		}
	}
	o.order = append(o.order, id)
}

func (o *overlay[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if o.closed.Load() {
		return zero, ErrWorkingCopyClosed
	}

	o.mu.Lock()
	if _, gone := o.removed[id]; gone {
		o.mu.Unlock()
		return zero, fmt.Errorf("%s %s: %w", o.base.codec.table, id, ErrRecordNotFound)
	}
	if item, ok := o.staged[id]; ok {
		o.mu.Unlock()
		return item.Clone(), nil
	}
	o.mu.Unlock()

	item, err := o.base.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	o.mu.Lock()
	o.observe(id, stampOf(item.Meta()))
	o.mu.Unlock()
	return item, nil
}

func (o *overlay[T]) List(ctx context.Context, filter RecordFilter) ([]T, error) {
	if o.closed.Load() {
		return nil, ErrWorkingCopyClosed
	}

	items, err := o.base.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	result := make([]T, 0, len(items)+len(o.staged))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		id := item.Meta().ID
		seen[id] = struct{}{}
		o.observe(id, stampOf(item.Meta()))

		if _, gone := o.removed[id]; gone {
			continue
		}
		if staged, ok := o.staged[id]; ok {
			if filter.match(staged.Meta(), o.base.codec.parent(staged)) {
				result = append(result, staged.Clone())
			}
			continue
		}
		result = append(result, item)
	}

	for _, id := range o.order {
		if _, ok := seen[id]; ok {
			continue
		}
		staged, ok := o.staged[id]
		if ok && filter.match(staged.Meta(), o.base.codec.parent(staged)) {
			result = append(result, staged.Clone())
		}
	}

	return result, nil
}

func (o *overlay[T]) Upsert(ctx context.Context, items ...T) error {
	if o.closed.Load() {
		return ErrWorkingCopyClosed
	}

	for _, item := range items {
		id := item.Meta().ID
		if err := o.ensureObserved(ctx, id); err != nil {
			return err
		}

		o.mu.Lock()
		delete(o.removed, id)
		o.staged[id] = item.Clone()
		o.touch(id)
		o.mu.Unlock()
	}
	return nil
}

func (o *overlay[T]) Delete(ctx context.Context, ids ...string) error {
	if o.closed.Load() {
		return ErrWorkingCopyClosed
	}

	for _, id := range ids {
		if err := o.ensureObserved(ctx, id); err != nil {
			return err
		}

		o.mu.Lock()
		delete(o.staged, id)
		o.removed[id] = struct{}{}
		o.touch(id)
		o.mu.Unlock()
	}
	return nil
}

func (o *overlay[T]) ensureObserved(ctx context.Context, id string) error {
	o.mu.Lock()
	_, ok := o.observed[id]
	o.mu.Unlock()
	if ok {
		return nil
	}

	stamp, err := o.base.modifiedAt(ctx, o.base.db, id)
	if err != nil {
		return err
	}

	o.mu.Lock()
	o.observe(id, stamp)
	o.mu.Unlock()
	return nil
}

// apply writes the staged changes inside tx.
func (o *overlay[T]) apply(ctx context.Context, tx *sql.Tx) (TableChanges, []string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	var (
		changes TableChanges
		skipped []string
	)
	for _, id := range o.order {
		current, err := o.base.modifiedAt(ctx, tx, id)
		if err != nil {
			return changes, nil, err
		}
		if !current.equal(o.observed[id]) {
			logger.FromContext(ctx).Warn().
				Str("func", "overlay.apply").
				Str("table", o.base.codec.table).
				Str("id", id).
				Msg("record changed during sync, keeping the local edit")
			skipped = append(skipped, id)
			continue
		}

		if _, gone := o.removed[id]; gone {
			if err := o.base.delete(ctx, tx, id); err != nil {
				return changes, nil, err
			}
			changes.Deleted++
			continue
		}
		if item, ok := o.staged[id]; ok {
			if err := o.base.upsert(ctx, tx, item); err != nil {
				return changes, nil, err
			}
			changes.Upserted++
		}
	}
	return changes, skipped, nil
}
