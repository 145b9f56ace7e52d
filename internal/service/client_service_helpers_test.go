package service

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/mock"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

const testOwner int64 = 7

var (
	day1 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 = day1.Add(24 * time.Hour)
)

func newTestStore(t *testing.T) *store.LocalStore {
	t.Helper()
	s, err := store.NewLocalStore(context.Background(), config.ClientStorage{
		DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "notes.db")},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// fastPolicies keeps retries but without real waiting.
func fastPolicies() RetryPolicies {
	p := RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}
	return RetryPolicies{Aggressive: p, Default: p, Conservative: p}
}

func newFolder(name string, at time.Time, status models.SyncStatus) *models.Folder {
	rec := models.NewRecord(testOwner, at)
	rec.SyncStatus = status
	return models.NewFolder(rec, name, "green")
}

func newNote(title string, folder *models.Folder, at time.Time, status models.SyncStatus) *models.Note {
	rec := models.NewRecord(testOwner, at)
	rec.SyncStatus = status
	n := &models.Note{Record: rec, Title: title, Content: title + " content"}
	if folder != nil {
		id := folder.ID
		n.FolderID = &id
	}
	return n
}

func httpErr(code int) error {
	return &adapter.HTTPError{StatusCode: code, Op: "fake"}
}

// fakeTable is an in-memory backend table that behaves like the REST
// backend: soft deletes, 404 for missing rows, 409 for taken ids.
type fakeTable[T models.Syncable[T]] struct {
	mu    sync.Mutex
	kind  string
	rows  map[string]T
	calls []string

	// fail returns an error to inject for op, or nil.
	fail  func(op, id string) error
	delay time.Duration
}

func newFakeTable[T models.Syncable[T]](kind string) *fakeTable[T] {
	return &fakeTable[T]{kind: kind, rows: make(map[string]T)}
}

func (f *fakeTable[T]) put(items ...T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range items {
		f.rows[item.Meta().ID] = item.Clone()
	}
}

func (f *fakeTable[T]) row(id string) (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.rows[id]
	if !ok {
		return item, false
	}
	return item.Clone(), true
}

func (f *fakeTable[T]) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeTable[T]) enter(op, id string) error {
	f.mu.Lock()
	f.calls = append(f.calls, fmt.Sprintf("%s %s %s", op, f.kind, id))
	fail, delay := f.fail, f.delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if fail != nil {
		return fail(op, id)
	}
	return nil
}

func (f *fakeTable[T]) List(ctx context.Context, ownerID int64) ([]T, error) {
	if err := f.enter("list", ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []T
	for _, item := range f.rows {
		if item.Meta().OwnerID == ownerID && !item.Meta().IsDeleted() {
			out = append(out, item.Clone())
		}
	}
	return out, nil
}

func (f *fakeTable[T]) Get(ctx context.Context, ownerID int64, id string) (T, error) {
	var zero T
	if err := f.enter("get", id); err != nil {
		return zero, err
	}
	item, ok := f.row(id)
	if !ok || item.Meta().OwnerID != ownerID {
		return zero, httpErr(http.StatusNotFound)
	}
	return item, nil
}

func (f *fakeTable[T]) Insert(ctx context.Context, item T) error {
	if err := f.enter("insert", item.Meta().ID); err != nil {
		return err
	}
	if _, ok := f.row(item.Meta().ID); ok {
		return httpErr(http.StatusConflict)
	}
	f.put(item)
	return nil
}

func (f *fakeTable[T]) Update(ctx context.Context, item T) error {
	if err := f.enter("update", item.Meta().ID); err != nil {
		return err
	}
	existing, ok := f.row(item.Meta().ID)
	if !ok || existing.Meta().IsDeleted() {
		return httpErr(http.StatusNotFound)
	}
	f.put(item)
	return nil
}

func (f *fakeTable[T]) Delete(ctx context.Context, ownerID int64, id string) error {
	if err := f.enter("delete", id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.rows[id]
	if !ok || item.Meta().OwnerID != ownerID {
		return httpErr(http.StatusNotFound)
	}
	if !item.Meta().IsDeleted() {
		at := time.Now().UTC()
		item.Meta().DeletedAt = &at
	}
	return nil
}

// fakeServer is an in-memory ServerAdapter.
type fakeServer struct {
	adapter.ServerAdapter

	folders *fakeTable[*models.Folder]
	notes   *fakeTable[*models.Note]

	mu       sync.Mutex
	binaries map[string][]byte
	types    map[string]string
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		folders:  newFakeTable[*models.Folder]("folder"),
		notes:    newFakeTable[*models.Note]("note"),
		binaries: make(map[string][]byte),
		types:    make(map[string]string),
	}
}

func (s *fakeServer) Folders() adapter.RemoteTable[*models.Folder] { return s.folders }

func (s *fakeServer) Notes() adapter.RemoteTable[*models.Note] { return s.notes }

func (s *fakeServer) UploadBinary(ctx context.Context, ownerID int64, noteID, contentType string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.binaries[noteID] = append([]byte(nil), data...)
	s.types[noteID] = contentType
	return nil
}

func (s *fakeServer) DownloadBinary(ctx context.Context, ownerID int64, noteID string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.binaries[noteID]
	if !ok {
		return nil, "", httpErr(http.StatusNotFound)
	}
	return append([]byte(nil), data...), s.types[noteID], nil
}

func (s *fakeServer) remoteCalls() []string {
	return append(s.folders.recorded(), s.notes.recorded()...)
}

// testEngine is a coordinator over a real local store and a fake server.
type testEngine struct {
	store       *store.LocalStore
	server      *fakeServer
	auth        *mock.MockAuthSessionProvider
	tx          *TransactionManager
	folders     *EntitySyncManager[*models.Folder]
	notes       *EntitySyncManager[*models.Note]
	coordinator *SyncCoordinator
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()
	ctrl := gomock.NewController(t)

	e := &testEngine{
		store:  newTestStore(t),
		server: newFakeServer(),
		auth:   mock.NewMockAuthSessionProvider(ctrl),
	}
	recovery := NewNetworkRecoveryManager(WithPolicies(fastPolicies()))
	e.tx = NewTransactionManager(e.store, logger.Nop())
	e.folders = NewFolderSyncManager(e.server, e.tx, recovery)
	e.notes = NewNoteSyncManager(e.server, e.tx, recovery)
	e.coordinator = NewSyncCoordinator(e.auth, e.store, e.tx, recovery, e.folders, e.notes, time.Millisecond, logger.Nop())
	return e
}

// loggedIn makes every sync see a valid session.
func (e *testEngine) loggedIn() {
	e.auth.EXPECT().ValidateAndRefreshTokenIfNeeded(gomock.Any()).Return(nil).AnyTimes()
	e.auth.EXPECT().Session(gomock.Any()).Return(models.Session{UserID: testOwner, Login: "alice"}, nil).AnyTimes()
}

func (e *testEngine) sync(t *testing.T, opts SyncOptions) SyncResult {
	t.Helper()
	result, err := e.coordinator.Sync(context.Background(), opts, nil)
	require.NoError(t, err)
	return result
}

func (e *testEngine) localFolder(t *testing.T, id string) *models.Folder {
	t.Helper()
	f, err := e.store.Folders().Get(context.Background(), id)
	require.NoError(t, err)
	return f
}

func (e *testEngine) localNote(t *testing.T, id string) *models.Note {
	t.Helper()
	n, err := e.store.Notes().Get(context.Background(), id)
	require.NoError(t, err)
	return n
}
