// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

// Checkpoint labels recorded on the transaction of a sync run.
const (
	CheckpointFolderUpload   = "folders.upload"
	CheckpointNoteUpload     = "notes.upload"
	CheckpointFolderDownload = "folders.download"
	CheckpointNoteDownload   = "notes.download"
	CheckpointCleanup        = "tombstones.cleanup"
	CheckpointPurge          = "defaults.purge"
	CheckpointCommit         = "commit"
)

// Values of store.MetaLastSyncStatus.
const (
	LastSyncSucceeded = "success"
	LastSyncPartial   = "partial"
)

// SyncOptions tunes one sync run.
type SyncOptions struct {
	// IncludeBinaryData transfers note binary content.
	IncludeBinaryData bool
	// TwoWay adds the download phases.
	TwoWay bool
	// PruneMissing hard-deletes local synced records the remote side no
	// longer lists.
	PruneMissing bool
	// Budget bounds the run. It is checked between phases only.
	Budget time.Duration
}

// SyncResult summarizes a committed sync run.
type SyncResult struct {
	SyncID string `json:"sync_id"`

	FolderUpload   PhaseResult `json:"folder_upload"`
	NoteUpload     PhaseResult `json:"note_upload"`
	FolderDownload PhaseResult `json:"folder_download"`
	NoteDownload   PhaseResult `json:"note_download"`

	ResolvedConflicts int `json:"resolved_conflicts"`
	CleanedTombstones int `json:"cleaned_tombstones"`
	PurgedFolders     int `json:"purged_folders"`

	Commit      store.CommitResult `json:"-"`
	Checkpoints []string           `json:"checkpoints"`
	Duration    time.Duration      `json:"duration"`

	// Success is true when any phase succeeded. Download phases only
	// count in two-way runs.
	Success bool `json:"success"`
}

// SyncCoordinator runs sync sessions one at a time.
type SyncCoordinator struct {
	auth     AuthSessionProvider
	store    LocalSyncStore
	tx       *TransactionManager
	recovery *NetworkRecoveryManager
	folders  *EntitySyncManager[*models.Folder]
	notes    *EntitySyncManager[*models.Note]

	progressInterval time.Duration

	lock    *semaphore.Weighted
	running atomic.Bool

	logger *logger.Logger
}

// NewSyncCoordinator wires a coordinator. folders and notes must share tx.
func NewSyncCoordinator(
	auth AuthSessionProvider,
	local LocalSyncStore,
	tx *TransactionManager,
	recovery *NetworkRecoveryManager,
	folders *EntitySyncManager[*models.Folder],
	notes *EntitySyncManager[*models.Note],
	progressInterval time.Duration,
	log *logger.Logger,
) *SyncCoordinator {
	return &SyncCoordinator{
		auth:             auth,
		store:            local,
		tx:               tx,
		recovery:         recovery,
		folders:          folders,
		notes:            notes,
		progressInterval: progressInterval,
		lock:             semaphore.NewWeighted(1),
		logger:           log,
	}
}

// IsSyncInProgress reports whether a run holds the single-flight lock.
func (c *SyncCoordinator) IsSyncInProgress() bool {
	return c.running.Load()
}

// Sync runs one sync session. A call made while another is in flight
// returns ErrLockConflict at once. Nothing reaches the primary local store
// unless every phase finishes; any error rolls the run back.
func (c *SyncCoordinator) Sync(ctx context.Context, opts SyncOptions, onProgress func(models.SyncProgress)) (SyncResult, error) {
	if !c.lock.TryAcquire(1) {
		return SyncResult{}, ErrLockConflict
	}
	c.running.Store(true)
	defer func() {
		c.running.Store(false)
		c.lock.Release(1)
	}()

	result := SyncResult{SyncID: uuid.NewString()}
	log := c.logger.WithStr("sync_id", result.SyncID)
	ctx = log.WithContext(ctx)

	reporter := NewProgressReporter(c.progressInterval, onProgress)
	progress := newProgressTracker(reporter, opts.TwoWay)
	defer reporter.FlushPending()

	started := time.Now()
	log.Info().
		Str("func", "SyncCoordinator.Sync").
		Bool("two_way", opts.TwoWay).
		Bool("binary", opts.IncludeBinaryData).
		Msg("sync started")

	err := c.run(ctx, opts, progress, &result)
	result.Duration = time.Since(started)
	result.ResolvedConflicts = progress.snapshot().ResolvedConflicts

	if err != nil {
		progress.status(fmt.Sprintf("Sync failed: %v", err))
		log.Error().
			Err(err).
			Str("func", "SyncCoordinator.Sync").
			Dur("duration", result.Duration).
			Msg("sync failed")
		return result, err
	}

	c.recordLastSync(ctx, result)
	progress.status(fmt.Sprintf("Sync complete: %d conflicts resolved", result.ResolvedConflicts))
	log.Info().
		Str("func", "SyncCoordinator.Sync").
		Bool("success", result.Success).
		Int("resolved_conflicts", result.ResolvedConflicts).
		Int("cleaned", result.CleanedTombstones).
		Int("purged", result.PurgedFolders).
		Dur("duration", result.Duration).
		Msg("sync finished")
	return result, nil
}

func (c *SyncCoordinator) run(ctx context.Context, opts SyncOptions, progress *progressTracker, result *SyncResult) (err error) {
	progress.status("Checking session...")
	err = c.recovery.ExecuteWithRetry(ctx, "auth.validate", c.auth.ValidateAndRefreshTokenIfNeeded)
	if err != nil {
		if errors.Is(err, ErrAuth) {
			return err
		}
		return fmt.Errorf("validate session: %w", c.recovery.describe(err))
	}

	session, err := c.auth.Session(ctx)
	if err != nil {
		return err
	}
	owner := session.UserID

	tx, err := c.tx.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			c.tx.Rollback(ctx)
		}
	}()

	var deadline time.Time
	if opts.Budget > 0 {
		deadline = time.Now().Add(opts.Budget)
	}
	boundary := func(name string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return fmt.Errorf("%w: %s before %s", ErrSyncBudgetExceeded, opts.Budget, name)
		}
		return c.tx.Checkpoint(name)
	}

	type step struct {
		name   string
		status string
		run    func() error
	}

	steps := []step{
		{CheckpointFolderUpload, "Uploading folders...", func() (err error) {
			result.FolderUpload, err = c.folders.UploadPhase(ctx, tx, owner, opts, progress)
			return err
		}},
		{CheckpointNoteUpload, "Uploading notes...", func() (err error) {
			result.NoteUpload, err = c.notes.UploadPhase(ctx, tx, owner, opts, progress)
			return err
		}},
	}
	if opts.TwoWay {
		steps = append(steps,
			step{CheckpointFolderDownload, "Downloading folders...", func() (err error) {
				result.FolderDownload, err = c.folders.DownloadPhase(ctx, tx, owner, opts, progress)
				return err
			}},
			step{CheckpointNoteDownload, "Downloading notes...", func() (err error) {
				result.NoteDownload, err = c.notes.DownloadPhase(ctx, tx, owner, opts, progress)
				return err
			}},
		)
	}
	steps = append(steps,
		step{CheckpointCleanup, "Cleaning up deleted records...", func() error {
			folders, err := c.folders.CleanupTombstones(ctx, tx, owner)
			if err != nil {
				return err
			}
			notes, err := c.notes.CleanupTombstones(ctx, tx, owner)
			result.CleanedTombstones = folders + notes
			return err
		}},
		step{CheckpointPurge, "Removing empty default folders...", func() (err error) {
			result.PurgedFolders, err = PurgeInvalidDefaults(ctx, c.folders, tx, owner)
			return err
		}},
	)

	for _, s := range steps {
		if err := boundary(s.name); err != nil {
			return err
		}
		progress.status(s.status)
		if err := s.run(); err != nil {
			return err
		}
	}

	if err := boundary(CheckpointCommit); err != nil {
		return err
	}
	result.Checkpoints = c.tx.Checkpoints()

	progress.status("Saving changes...")
	result.Commit, err = c.tx.Commit(ctx)
	if err != nil {
		return err
	}

	result.Success = result.FolderUpload.Success() || result.NoteUpload.Success()
	if opts.TwoWay {
		result.Success = result.Success || result.FolderDownload.Success() || result.NoteDownload.Success()
	}
	return nil
}

// recordLastSync stores the time and outcome of a committed run. Failures
// are logged only: the sync itself is already durable.
func (c *SyncCoordinator) recordLastSync(ctx context.Context, result SyncResult) {
	status := LastSyncSucceeded
	if !result.Success {
		status = LastSyncPartial
	}

	log := logger.FromContext(ctx)
	if err := c.store.SetMeta(ctx, store.MetaLastSyncAt, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		log.Warn().Err(err).Msg("failed to record last sync time")
	}
	if err := c.store.SetMeta(ctx, store.MetaLastSyncStatus, status); err != nil {
		log.Warn().Err(err).Msg("failed to record last sync status")
	}
}
