package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-note-sync/models"
)

//go:generate mockgen -source=interfaces.go -exclude_interfaces=ErrorClassificator -destination=../mock/store_mock.go -package=mock

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository stores backend accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// RecordRepository is the backend table of one entity kind. Every method is
// scoped to an owner.
type RecordRepository[T models.Syncable[T]] interface {
	// List returns the live records of ownerID.
	List(ctx context.Context, ownerID int64) ([]T, error)
	// Get returns the record including a soft-deleted one, or
	// ErrRecordNotFound.
	Get(ctx context.Context, ownerID int64, id string) (T, error)
	// Insert stores a new record; ErrRecordExists when the id is taken.
	Insert(ctx context.Context, item T) (T, error)
	// Update replaces a live record; ErrRecordNotFound when it is absent or
	// soft-deleted.
	Update(ctx context.Context, item T) (T, error)
	// SoftDelete marks the record deleted at the given time. Deleting a
	// deleted record keeps the first deletion time.
	SoftDelete(ctx context.Context, ownerID int64, id string, at time.Time) error
}

// BinaryStorage keeps note binary content outside the relational database.
type BinaryStorage interface {
	PutBinary(ctx context.Context, ownerID int64, noteID string, contentType string, data []byte) error
	// GetBinary returns ErrBinaryNotFound when nothing is stored.
	GetBinary(ctx context.Context, ownerID int64, noteID string) ([]byte, error)
	DeleteBinary(ctx context.Context, ownerID int64, noteID string) error
}
