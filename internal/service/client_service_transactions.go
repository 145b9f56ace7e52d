package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

// SyncTransaction is the working copy of one sync run together with its
// diagnostics.
type SyncTransaction struct {
	ID        string
	StartedAt time.Time

	copy        *store.WorkingCopy
	checkpoints []string
	hasChanges  bool
}

func (t *SyncTransaction) Folders() store.LocalTable[*models.Folder] {
	return t.copy.Folders()
}

func (t *SyncTransaction) Notes() store.LocalTable[*models.Note] {
	return t.copy.Notes()
}

// TransactionManager owns the single active sync transaction. All of its
// operations are serialized by one mutex.
type TransactionManager struct {
	store WorkingCopyFactory

	mu     sync.Mutex
	active *SyncTransaction

	logger *logger.Logger
}

func NewTransactionManager(s WorkingCopyFactory, log *logger.Logger) *TransactionManager {
	return &TransactionManager{store: s, logger: log}
}

// Begin opens a transaction over a fresh working copy.
func (m *TransactionManager) Begin(ctx context.Context) (*SyncTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		return nil, fmt.Errorf("%w: %s started at %s", ErrTransactionAlreadyActive, m.active.ID, m.active.StartedAt.Format(time.RFC3339))
	}

	m.active = &SyncTransaction{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		copy:      m.store.Begin(),
	}

	logger.FromContext(ctx).Debug().
		Str("func", "TransactionManager.Begin").
		Str("tx_id", m.active.ID).
		Msg("sync transaction started")

	return m.active, nil
}

// Active reports whether a transaction is open.
func (m *TransactionManager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active != nil
}

// Checkpoint records a diagnostic label on the active transaction.
func (m *TransactionManager) Checkpoint(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return ErrNoActiveTransaction
	}
	m.active.checkpoints = append(m.active.checkpoints, name)
	return nil
}

// Checkpoints returns the labels recorded so far.
func (m *TransactionManager) Checkpoints() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return nil
	}
	return append([]string(nil), m.active.checkpoints...)
}

// MarkChanges flags the active transaction as having staged writes.
func (m *TransactionManager) MarkChanges() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return ErrNoActiveTransaction
	}
	m.active.hasChanges = true
	return nil
}

// Commit applies the staged writes of the active transaction to the primary
// store, or just drops the working copy when nothing was marked. The active
// transaction is cleared in every case.
func (m *TransactionManager) Commit(ctx context.Context) (store.CommitResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := m.active
	if tx == nil {
		return store.CommitResult{}, ErrNoActiveTransaction
	}
	m.active = nil

	log := logger.FromContext(ctx).With().
		Str("func", "TransactionManager.Commit").
		Str("tx_id", tx.ID).
		Strs("checkpoints", tx.checkpoints).
		Logger()

	if !tx.hasChanges {
		tx.copy.Discard()
		log.Debug().Msg("nothing to commit")
		return store.CommitResult{}, nil
	}

	result, err := tx.copy.Commit(ctx)
	if err != nil {
		log.Err(err).Msg("commit failed")
		return store.CommitResult{}, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	log.Info().
		Dur("duration", time.Since(tx.StartedAt)).
		Int("skipped", len(result.Skipped)).
		Msg("sync transaction committed")
	return result, nil
}

// Rollback drops the staged writes of the active transaction. It is a
// no-op when no transaction is open.
func (m *TransactionManager) Rollback(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := m.active
	if tx == nil {
		return
	}
	m.active = nil
	tx.copy.Discard()

	logger.FromContext(ctx).Warn().
		Str("func", "TransactionManager.Rollback").
		Str("tx_id", tx.ID).
		Strs("checkpoints", tx.checkpoints).
		Msg("sync transaction rolled back")
}
