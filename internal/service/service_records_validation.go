package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-sync/models"
)

// RecordServiceWrapper decorates a RecordService, e.g. with validation.
type RecordServiceWrapper[T models.Syncable[T]] interface {
	Wrap(RecordService[T]) RecordService[T]
}

// recordValidationService rejects malformed input before it reaches the
// wrapped service.
type recordValidationService[T models.Syncable[T]] struct {
	inner RecordService[T]
}

type recordValidationWrapper[T models.Syncable[T]] struct{}

// NewRecordValidationWrapper returns the validating RecordServiceWrapper.
func NewRecordValidationWrapper[T models.Syncable[T]]() RecordServiceWrapper[T] {
	return recordValidationWrapper[T]{}
}

func (recordValidationWrapper[T]) Wrap(inner RecordService[T]) RecordService[T] {
	return &recordValidationService[T]{inner: inner}
}

func (v *recordValidationService[T]) List(ctx context.Context, ownerID int64) ([]T, error) {
	if ownerID <= 0 {
		return nil, ErrValidationNoUserID
	}
	return v.inner.List(ctx, ownerID)
}

func (v *recordValidationService[T]) Get(ctx context.Context, ownerID int64, id string) (T, error) {
	if err := validateScope(ownerID, id); err != nil {
		var zero T
		return zero, err
	}
	return v.inner.Get(ctx, ownerID, id)
}

func (v *recordValidationService[T]) Create(ctx context.Context, item T) (T, error) {
	if err := validateItem(item); err != nil {
		var zero T
		return zero, err
	}
	return v.inner.Create(ctx, item)
}

func (v *recordValidationService[T]) Update(ctx context.Context, item T) (T, error) {
	if err := validateItem(item); err != nil {
		var zero T
		return zero, err
	}
	return v.inner.Update(ctx, item)
}

func (v *recordValidationService[T]) Delete(ctx context.Context, ownerID int64, id string) error {
	if err := validateScope(ownerID, id); err != nil {
		return err
	}
	return v.inner.Delete(ctx, ownerID, id)
}

func validateScope(ownerID int64, id string) error {
	if ownerID <= 0 {
		return ErrValidationNoUserID
	}
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidDataProvided)
	}
	return nil
}

func validateItem[T models.Syncable[T]](item T) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if item.Meta().OwnerID <= 0 {
		return ErrValidationNoUserID
	}
	return nil
}
