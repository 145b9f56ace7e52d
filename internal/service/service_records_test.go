package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/mock"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

func newTestNoteService(t *testing.T) (RecordService[*models.Note], *mock.MockRecordRepository[*models.Note]) {
	t.Helper()
	repo := mock.NewMockRecordRepository[*models.Note](gomock.NewController(t))
	svc := NewRecordService(models.KindNote, repo, logger.Nop(), NewRecordValidationWrapper[*models.Note]())
	return svc, repo
}

// ── Create / Update ─────────────────────────────────────────────────────────

func TestRecordService_CreateMarksSynced(t *testing.T) {
	svc, repo := newTestNoteService(t)
	note := newNote("New", nil, day1, models.StatusPending)

	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n *models.Note) (*models.Note, error) {
		assert.Equal(t, models.StatusSynced, n.SyncStatus)
		return n, nil
	})

	created, err := svc.Create(context.Background(), note)
	require.NoError(t, err)
	assert.Equal(t, note.ID, created.ID)
}

func TestRecordService_CreateDuplicate(t *testing.T) {
	svc, repo := newTestNoteService(t)

	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil, store.ErrRecordExists)

	_, err := svc.Create(context.Background(), newNote("Dup", nil, day1, models.StatusPending))
	assert.ErrorIs(t, err, store.ErrRecordExists)
}

func TestRecordService_UpdateClearsDeletion(t *testing.T) {
	svc, repo := newTestNoteService(t)
	note := newNote("Edited", nil, day1, models.StatusPending)
	note.SoftDelete(day2)

	repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n *models.Note) (*models.Note, error) {
		assert.Nil(t, n.DeletedAt)
		assert.Equal(t, models.StatusSynced, n.SyncStatus)
		return n, nil
	})

	_, err := svc.Update(context.Background(), note)
	require.NoError(t, err)
}

func TestRecordService_UpdateMissing(t *testing.T) {
	svc, repo := newTestNoteService(t)

	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil, store.ErrRecordNotFound)

	_, err := svc.Update(context.Background(), newNote("Gone", nil, day1, models.StatusPending))
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

// ── Read / Delete ───────────────────────────────────────────────────────────

func TestRecordService_ListAndGet(t *testing.T) {
	svc, repo := newTestNoteService(t)
	ctx := context.Background()
	note := newNote("Listed", nil, day1, models.StatusSynced)

	repo.EXPECT().List(ctx, testOwner).Return([]*models.Note{note}, nil)
	repo.EXPECT().Get(ctx, testOwner, note.ID).Return(note, nil)
	repo.EXPECT().Get(ctx, testOwner, "missing").Return(nil, store.ErrRecordNotFound)

	items, err := svc.List(ctx, testOwner)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	got, err := svc.Get(ctx, testOwner, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Listed", got.Title)

	_, err = svc.Get(ctx, testOwner, "missing")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestRecordService_DeleteIsSoft(t *testing.T) {
	repo := mock.NewMockRecordRepository[*models.Folder](gomock.NewController(t))
	svc := NewRecordService(models.KindFolder, repo, logger.Nop()).(*recordService[*models.Folder])
	svc.now = func() time.Time { return day2 }

	repo.EXPECT().SoftDelete(gomock.Any(), testOwner, "f-1", day2).Return(nil)
	repo.EXPECT().SoftDelete(gomock.Any(), testOwner, "f-2", day2).Return(store.ErrRecordNotFound)

	require.NoError(t, svc.Delete(context.Background(), testOwner, "f-1"))
	assert.ErrorIs(t, svc.Delete(context.Background(), testOwner, "f-2"), store.ErrRecordNotFound)
}

// ── Validation ──────────────────────────────────────────────────────────────

func TestRecordValidation_RejectsBeforeRepository(t *testing.T) {
	// репозиторий без ожиданий: любой вызов провалит тест
	svc, _ := newTestNoteService(t)
	ctx := context.Background()

	noOwner := newNote("No owner", nil, day1, models.StatusPending)
	noOwner.OwnerID = 0

	badID := newNote("Bad id", nil, day1, models.StatusPending)
	badID.ID = "not-a-uuid"

	tests := []struct {
		name    string
		call    func() error
		wantErr error
	}{
		{name: "list without owner", call: func() error { _, err := svc.List(ctx, 0); return err }, wantErr: ErrValidationNoUserID},
		{name: "get without owner", call: func() error { _, err := svc.Get(ctx, 0, "x"); return err }, wantErr: ErrValidationNoUserID},
		{name: "get without id", call: func() error { _, err := svc.Get(ctx, testOwner, ""); return err }, wantErr: ErrInvalidDataProvided},
		{name: "delete without id", call: func() error { return svc.Delete(ctx, testOwner, "") }, wantErr: ErrInvalidDataProvided},
		{name: "create without owner", call: func() error { _, err := svc.Create(ctx, noOwner); return err }, wantErr: ErrInvalidDataProvided},
		{name: "create malformed id", call: func() error { _, err := svc.Create(ctx, badID); return err }, wantErr: models.ErrValidation},
		{name: "update nil", call: func() error { _, err := svc.Update(ctx, nil); return err }, wantErr: ErrInvalidDataProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
