package service

import (
	"context"

	"github.com/MKhiriev/go-note-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService registers and authenticates backend accounts and issues
// their tokens.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// RecordService is the backend use-case layer of one entity kind. Every
// call is scoped to an owner.
type RecordService[T models.Syncable[T]] interface {
	List(ctx context.Context, ownerID int64) ([]T, error)
	Get(ctx context.Context, ownerID int64, id string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, ownerID int64, id string) error
}

// BinaryService stores the binary content attached to notes.
type BinaryService interface {
	// Upload stores data for a live note and returns the sniffed content
	// type.
	Upload(ctx context.Context, ownerID int64, noteID string, data []byte) (string, error)
	// Download returns the content and its type.
	Download(ctx context.Context, ownerID int64, noteID string) ([]byte, string, error)
}

// AppInfoService answers the unauthenticated health and version probes.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	// Health reports whether the backend can serve requests.
	Health(ctx context.Context) error
}
