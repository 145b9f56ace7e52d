package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

// PhaseResult counts the records handled by one upload or download phase.
type PhaseResult struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
	// Resolved is the number of local records overwritten by newer remote
	// ones.
	Resolved int `json:"resolved"`
}

// Success reports whether the phase had nothing to do or settled at least
// one record.
func (r PhaseResult) Success() bool {
	return r.Total == 0 || r.Succeeded > 0
}

// entityHooks adapts EntitySyncManager to one entity kind.
type entityHooks[T models.Syncable[T]] struct {
	kind   models.EntityKind
	remote adapter.RemoteTable[T]
	local  func(tx *SyncTransaction) store.LocalTable[T]

	// skipUpload settles a dirty record without any remote call.
	skipUpload func(ctx context.Context, tx *SyncTransaction, item T) (bool, error)

	// uploadBinary and downloadBinary move attached content when binary
	// transfer is enabled.
	uploadBinary   func(ctx context.Context, item T) error
	downloadBinary func(ctx context.Context, item T) error
}

// EntitySyncManager runs the sync phases of one entity kind inside the
// active transaction.
type EntitySyncManager[T models.Syncable[T]] struct {
	hooks    entityHooks[T]
	tx       *TransactionManager
	recovery *NetworkRecoveryManager
	resolver ConflictResolver[T]
}

func newEntitySyncManager[T models.Syncable[T]](hooks entityHooks[T], tx *TransactionManager, recovery *NetworkRecoveryManager) *EntitySyncManager[T] {
	return &EntitySyncManager[T]{hooks: hooks, tx: tx, recovery: recovery}
}

// Kind is the entity kind handled by m.
func (m *EntitySyncManager[T]) Kind() models.EntityKind {
	return m.hooks.kind
}

// FetchDirty returns the records of ownerID that must be pushed, soft
// deletions included, most recently modified first.
func (m *EntitySyncManager[T]) FetchDirty(ctx context.Context, tx *SyncTransaction, ownerID int64) ([]T, error) {
	items, err := m.hooks.local(tx).List(ctx, store.Dirty(ownerID))
	if err != nil {
		return nil, fmt.Errorf("list dirty %ss: %w", m.hooks.kind, err)
	}

	slices.SortStableFunc(items, func(a, b T) int {
		return b.Meta().ModifiedAt().Compare(a.Meta().ModifiedAt())
	})
	return items, nil
}

// UploadPhase pushes every dirty record. Remote failures are counted per
// record; a local store failure aborts the phase.
func (m *EntitySyncManager[T]) UploadPhase(ctx context.Context, tx *SyncTransaction, ownerID int64, opts SyncOptions, progress *progressTracker) (PhaseResult, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "EntitySyncManager.UploadPhase").
		Str("kind", string(m.hooks.kind)).
		Logger()

	var result PhaseResult
	defer progress.kind(m.hooks.kind, func(k *models.KindProgress) { k.UploadDone = true })

	dirty, err := m.FetchDirty(ctx, tx, ownerID)
	if err != nil {
		return result, err
	}

	result.Total = len(dirty)
	progress.kind(m.hooks.kind, func(k *models.KindProgress) { k.Total = len(dirty) })

	for _, item := range dirty {
		err := m.uploadOne(ctx, tx, ownerID, item, opts)
		progress.kind(m.hooks.kind, func(k *models.KindProgress) { k.Synced++ })

		var recErr *PerRecordError
		switch {
		case err == nil:
			result.Succeeded++
		case errors.Is(err, models.ErrValidation):
			result.Skipped++
			log.Warn().Err(err).Str("id", item.Meta().ID).Msg("invalid record skipped")
		case errors.As(err, &recErr):
			result.Failed++
			log.Error().Err(err).Str("id", recErr.RecordID).Str("op", recErr.Op).Msg("record upload failed")
		default:
			return result, err
		}
	}

	log.Info().
		Int("total", result.Total).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Msg("upload phase finished")
	return result, nil
}

func (m *EntitySyncManager[T]) uploadOne(ctx context.Context, tx *SyncTransaction, ownerID int64, item T, opts SyncOptions) error {
	if err := item.Validate(); err != nil {
		return err
	}

	meta := item.Meta()
	table := m.hooks.local(tx)
	remote := m.hooks.remote
	opName := fmt.Sprintf("%s.upload", m.hooks.kind)

	if meta.IsDeleted() {
		err := m.recovery.ExecuteWithRetry(ctx, opName, func(ctx context.Context) error {
			return remote.Delete(ctx, ownerID, meta.ID)
		})
		if err != nil && !errors.Is(err, adapter.ErrNotFound) {
			return m.recordError("delete", meta.ID, err)
		}
		meta.SyncStatus = models.StatusTombstoned
		return m.save(ctx, table, item)
	}

	if m.hooks.skipUpload != nil {
		skip, err := m.hooks.skipUpload(ctx, tx, item)
		if err != nil {
			return err
		}
		if skip {
			logger.FromContext(ctx).Debug().
				Str("kind", string(m.hooks.kind)).
				Str("id", meta.ID).
				Msg("record kept local only")
			meta.SyncStatus = models.StatusSynced
			return m.save(ctx, table, item)
		}
	}

	existing, err := Retry(ctx, m.recovery, opName, func(ctx context.Context) (T, error) {
		return remote.Get(ctx, ownerID, meta.ID)
	})

	outgoing := item.Clone()
	outgoing.Meta().SyncStatus = models.StatusSynced

	switch {
	case errors.Is(err, adapter.ErrNotFound):
		err = m.recovery.ExecuteWithRetry(ctx, opName, func(ctx context.Context) error {
			return remote.Insert(ctx, outgoing)
		})
		if errors.Is(err, adapter.ErrConflict) {
			err = m.recovery.ExecuteWithRetry(ctx, opName, func(ctx context.Context) error {
				return remote.Update(ctx, outgoing)
			})
		}
		if err != nil {
			return m.recordError("insert", meta.ID, err)
		}
	case err != nil:
		return m.recordError("get", meta.ID, err)
	case existing.Meta().IsDeleted():
		// The remote deletion is final; the local copy follows it.
		deletedAt := *existing.Meta().DeletedAt
		meta.DeletedAt = &deletedAt
		meta.LastModified = &deletedAt
		meta.SyncStatus = models.StatusTombstoned
		return m.save(ctx, table, item)
	default:
		err = m.recovery.ExecuteWithRetry(ctx, opName, func(ctx context.Context) error {
			return remote.Update(ctx, outgoing)
		})
		if err != nil {
			return m.recordError("update", meta.ID, err)
		}
	}

	if m.hooks.uploadBinary != nil && opts.IncludeBinaryData {
		err := m.recovery.ExecuteWithRetry(ctx, opName, func(ctx context.Context) error {
			return m.hooks.uploadBinary(ctx, item)
		})
		if err != nil {
			return m.recordError("upload binary", meta.ID, err)
		}
	}

	meta.SyncStatus = models.StatusSynced
	return m.save(ctx, table, item)
}

// DownloadPhase reconciles every active remote record with the local
// table. A failed listing fails the phase.
func (m *EntitySyncManager[T]) DownloadPhase(ctx context.Context, tx *SyncTransaction, ownerID int64, opts SyncOptions, progress *progressTracker) (PhaseResult, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "EntitySyncManager.DownloadPhase").
		Str("kind", string(m.hooks.kind)).
		Logger()

	var result PhaseResult
	defer progress.kind(m.hooks.kind, func(k *models.KindProgress) { k.DownloadDone = true })

	remoteItems, err := Retry(ctx, m.recovery, fmt.Sprintf("%s.list", m.hooks.kind), func(ctx context.Context) ([]T, error) {
		return m.hooks.remote.List(ctx, ownerID)
	})
	if err != nil {
		return result, fmt.Errorf("list remote %ss: %w", m.hooks.kind, m.recovery.describe(err))
	}

	result.Total = len(remoteItems)
	progress.kind(m.hooks.kind, func(k *models.KindProgress) { k.DownloadTotal = len(remoteItems) })

	table := m.hooks.local(tx)
	active := make(map[string]struct{}, len(remoteItems))

	for _, remoteItem := range remoteItems {
		err := m.downloadOne(ctx, table, ownerID, remoteItem, opts, active, &result)
		progress.kind(m.hooks.kind, func(k *models.KindProgress) { k.Downloaded++ })

		var recErr *PerRecordError
		switch {
		case err == nil:
		case errors.Is(err, models.ErrValidation):
			result.Skipped++
			log.Warn().Err(err).Msg("invalid remote record skipped")
		case errors.As(err, &recErr):
			result.Failed++
			log.Error().Err(err).Str("id", recErr.RecordID).Str("op", recErr.Op).Msg("record download failed")
		default:
			return result, err
		}
	}

	if result.Resolved > 0 {
		progress.update(func(p *models.SyncProgress) { p.ResolvedConflicts += result.Resolved })
	}

	if opts.PruneMissing {
		if err := m.pruneMissing(ctx, table, ownerID, active); err != nil {
			return result, err
		}
	}

	log.Info().
		Int("total", result.Total).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Int("resolved", result.Resolved).
		Msg("download phase finished")
	return result, nil
}

func (m *EntitySyncManager[T]) downloadOne(ctx context.Context, table store.LocalTable[T], ownerID int64, remoteItem T, opts SyncOptions, active map[string]struct{}, result *PhaseResult) error {
	if err := remoteItem.Validate(); err != nil {
		return err
	}

	meta := remoteItem.Meta()
	if meta.OwnerID != ownerID {
		return fmt.Errorf("%w: record %s belongs to user %d", models.ErrValidation, meta.ID, meta.OwnerID)
	}
	if meta.IsDeleted() {
		result.Skipped++
		return nil
	}
	active[meta.ID] = struct{}{}

	local, err := table.Get(ctx, meta.ID)
	found := true
	if errors.Is(err, store.ErrRecordNotFound) {
		found = false
	} else if err != nil {
		return fmt.Errorf("read local %s %s: %w", m.hooks.kind, meta.ID, err)
	}

	resolution := m.resolver.Resolve(local, found, remoteItem)
	switch resolution.Action {
	case ActionCreate, ActionOverwrite:
	default:
		result.Succeeded++
		return nil
	}

	if m.hooks.downloadBinary != nil && opts.IncludeBinaryData {
		err := m.recovery.ExecuteWithRetry(ctx, fmt.Sprintf("%s.download", m.hooks.kind), func(ctx context.Context) error {
			return m.hooks.downloadBinary(ctx, resolution.Record)
		})
		if err != nil {
			return m.recordError("download binary", meta.ID, err)
		}
	}

	if err := m.save(ctx, table, resolution.Record); err != nil {
		return err
	}

	result.Succeeded++
	if resolution.Conflict() {
		result.Resolved++
		logger.FromContext(ctx).Info().
			Str("kind", string(m.hooks.kind)).
			Str("id", meta.ID).
			Time("local_modified", local.Meta().ModifiedAt()).
			Time("remote_modified", meta.ModifiedAt()).
			Msg("conflict resolved in favour of the remote record")
	}
	return nil
}

// pruneMissing hard-deletes synced local records the remote side no longer
// lists.
func (m *EntitySyncManager[T]) pruneMissing(ctx context.Context, table store.LocalTable[T], ownerID int64, active map[string]struct{}) error {
	synced, err := table.List(ctx, store.RecordFilter{OwnerID: ownerID, Statuses: []models.SyncStatus{models.StatusSynced}})
	if err != nil {
		return fmt.Errorf("list synced %ss: %w", m.hooks.kind, err)
	}

	var missing []string
	for _, item := range synced {
		if _, ok := active[item.Meta().ID]; !ok {
			missing = append(missing, item.Meta().ID)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	if err := table.Delete(ctx, missing...); err != nil {
		return fmt.Errorf("prune %ss: %w", m.hooks.kind, err)
	}
	logger.FromContext(ctx).Info().
		Str("kind", string(m.hooks.kind)).
		Strs("ids", missing).
		Msg("pruned records missing remotely")
	return m.tx.MarkChanges()
}

// CleanupTombstones hard-deletes records whose deletion the remote side
// acknowledged. It returns the number of removed records.
func (m *EntitySyncManager[T]) CleanupTombstones(ctx context.Context, tx *SyncTransaction, ownerID int64) (int, error) {
	table := m.hooks.local(tx)
	tombstones, err := table.List(ctx, store.Tombstones(ownerID))
	if err != nil {
		return 0, fmt.Errorf("list tombstoned %ss: %w", m.hooks.kind, err)
	}
	if len(tombstones) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(tombstones))
	for _, item := range tombstones {
		ids = append(ids, item.Meta().ID)
	}
	if err := table.Delete(ctx, ids...); err != nil {
		return 0, fmt.Errorf("delete tombstoned %ss: %w", m.hooks.kind, err)
	}
	return len(ids), m.tx.MarkChanges()
}

func (m *EntitySyncManager[T]) save(ctx context.Context, table store.LocalTable[T], item T) error {
	if err := table.Upsert(ctx, item); err != nil {
		return fmt.Errorf("save %s %s: %w", m.hooks.kind, item.Meta().ID, err)
	}
	return m.tx.MarkChanges()
}

func (m *EntitySyncManager[T]) recordError(op, id string, err error) error {
	return &PerRecordError{Kind: m.hooks.kind, RecordID: id, Op: op, Err: m.recovery.describe(err)}
}
