package workers

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

// localSyncer marks pending notes synced and records the run in sync_meta,
// writing to the database the way a real sync does.
type localSyncer struct {
	local   *store.LocalStore
	mu      sync.Mutex
	running atomic.Bool
	runs    atomic.Int32
}

func (s *localSyncer) Sync(ctx context.Context, _ service.SyncOptions, _ func(models.SyncProgress)) (service.SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running.Store(true)
	defer s.running.Store(false)
	s.runs.Add(1)

	dirty, err := s.local.Notes().List(ctx, store.Dirty(0))
	if err != nil {
		return service.SyncResult{}, err
	}
	for _, n := range dirty {
		n.SyncStatus = models.StatusSynced
	}
	if err = s.local.Notes().Upsert(ctx, dirty...); err != nil {
		return service.SyncResult{}, err
	}
	if err = s.local.SetMeta(ctx, store.MetaLastSyncAt, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return service.SyncResult{}, err
	}
	return service.SyncResult{Success: true}, nil
}

func (s *localSyncer) IsSyncInProgress() bool { return s.running.Load() }

// ─────────────────────────────────────────────
// scheduler + watcher on a real local store
// ─────────────────────────────────────────────

func TestStoreWatcher_SyncWritesDoNotRetrigger(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbPath := filepath.Join(t.TempDir(), "notes.db")
	local, err := store.NewLocalStore(ctx, config.ClientStorage{DB: config.ClientDB{DSN: dbPath}}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })

	syncer := &localSyncer{local: local}
	var scheduler *service.AutoSyncScheduler
	// как в демоне: статистика пишется в sync_meta после каждого запуска
	scheduler = service.NewAutoSyncScheduler(syncer, service.SchedulerConfig{
		BatchWindow: 30 * time.Millisecond,
		RetryBase:   time.Second,
		RetryMax:    time.Second,
	}, logger.Nop(), service.WithResult(func(service.SyncResult, error) {
		raw, err := json.Marshal(scheduler.Stats())
		if assert.NoError(t, err) {
			assert.NoError(t, local.SetMeta(ctx, store.MetaSchedulerStats, string(raw)))
		}
	}))

	watcher := NewStoreWatcher(dbPath, scheduler, syncer.IsSyncInProgress, 40*time.Millisecond, logger.Nop(),
		WithPendingChanges(local.PendingChanges))

	done := make(chan error, 1)
	go func() { done <- NewWorkers(logger.Nop(), scheduler, watcher).Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})
	time.Sleep(50 * time.Millisecond)

	scheduler.Trigger(service.TriggerUserInitiated)
	require.Eventually(t, func() bool { return syncer.runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	// собственные записи синхронизации не запускают новую
	time.Sleep(500 * time.Millisecond)
	assert.EqualValues(t, 1, syncer.runs.Load())

	note := &models.Note{Record: models.NewRecord(7, time.Now()), Title: "edited", Content: "by the user"}
	require.NoError(t, local.Notes().Upsert(ctx, note))

	require.Eventually(t, func() bool { return syncer.runs.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(500 * time.Millisecond)
	assert.EqualValues(t, 2, syncer.runs.Load())

	pending, err := local.PendingChanges(ctx)
	require.NoError(t, err)
	assert.True(t, pending.Empty())
}

func TestStoreWatcher_SettledWhileBusyIsCheckedAfterSync(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "notes.db")
	appendTo(t, dbPath, "init")

	var (
		busy    atomic.Bool
		pending atomic.Int64
	)
	busy.Store(true)
	changes := func(context.Context) (store.PendingChanges, error) {
		return store.PendingChanges{Count: pending.Load(), Latest: "2026-03-01 12:00:00+00:00"}, nil
	}

	target := &recordingTarget{}
	startWatcher(t, NewStoreWatcher(dbPath, target, busy.Load, 20*time.Millisecond, logger.Nop(), WithPendingChanges(changes)))

	// правка пользователя во время синхронизации
	pending.Store(1)
	appendTo(t, dbPath, "x")
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, target.triggerCount())

	busy.Store(false)
	require.Eventually(t, func() bool { return target.triggerCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	// та же картина pending-изменений повторно не срабатывает
	appendTo(t, dbPath, "y")
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, target.triggerCount())
}
