package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

// recordService is the RecordService of one entity kind on top of its
// repository.
type recordService[T models.Syncable[T]] struct {
	repository store.RecordRepository[T]
	kind       models.EntityKind
	now        func() time.Time

	logger *logger.Logger
}

// NewRecordService wraps repository with the wrappers in order: the first
// wrapper is the outermost.
func NewRecordService[T models.Syncable[T]](kind models.EntityKind, repository store.RecordRepository[T], logger *logger.Logger, wrappers ...RecordServiceWrapper[T]) RecordService[T] {
	var svc RecordService[T] = &recordService[T]{
		repository: repository,
		kind:       kind,
		now:        time.Now,
		logger:     logger,
	}
	for i := len(wrappers) - 1; i >= 0; i-- {
		svc = wrappers[i].Wrap(svc)
	}
	return svc
}

func (s *recordService[T]) List(ctx context.Context, ownerID int64) ([]T, error) {
	items, err := s.repository.List(ctx, ownerID)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "recordService.List").
			Str("kind", string(s.kind)).
			Int64("user_id", ownerID).
			Msg("listing records failed")
		return nil, fmt.Errorf("list %ss: %w", s.kind, err)
	}
	return items, nil
}

func (s *recordService[T]) Get(ctx context.Context, ownerID int64, id string) (T, error) {
	item, err := s.repository.Get(ctx, ownerID, id)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("get %s %s: %w", s.kind, id, err)
	}
	return item, nil
}

// Create stores a new record. The backend copy is always synced.
func (s *recordService[T]) Create(ctx context.Context, item T) (T, error) {
	item.Meta().SyncStatus = models.StatusSynced
	created, err := s.repository.Insert(ctx, item)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "recordService.Create").
			Str("kind", string(s.kind)).
			Str("id", item.Meta().ID).
			Msg("inserting record failed")
		var zero T
		return zero, fmt.Errorf("create %s: %w", s.kind, err)
	}
	return created, nil
}

func (s *recordService[T]) Update(ctx context.Context, item T) (T, error) {
	item.Meta().SyncStatus = models.StatusSynced
	item.Meta().DeletedAt = nil
	updated, err := s.repository.Update(ctx, item)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "recordService.Update").
			Str("kind", string(s.kind)).
			Str("id", item.Meta().ID).
			Msg("updating record failed")
		var zero T
		return zero, fmt.Errorf("update %s: %w", s.kind, err)
	}
	return updated, nil
}

// Delete soft-deletes the record. Repeated deletes keep the first
// deletion time.
func (s *recordService[T]) Delete(ctx context.Context, ownerID int64, id string) error {
	if err := s.repository.SoftDelete(ctx, ownerID, id, s.now()); err != nil {
		return fmt.Errorf("delete %s %s: %w", s.kind, id, err)
	}
	logger.FromContext(ctx).Info().
		Str("kind", string(s.kind)).
		Str("id", id).
		Int64("user_id", ownerID).
		Msg("record soft-deleted")
	return nil
}
