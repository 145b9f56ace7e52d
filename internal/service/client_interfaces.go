package service

import (
	"context"

	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// WorkingCopyFactory opens working copies over the primary local store.
type WorkingCopyFactory interface {
	Begin() *store.WorkingCopy
}

// LocalSyncStore is the part of the local store the sync engine needs.
type LocalSyncStore interface {
	WorkingCopyFactory
	store.SyncMetaRepository
}

// AuthSessionProvider supplies the authenticated principal of a sync run.
type AuthSessionProvider interface {
	// Session returns the current session or an error wrapping ErrAuth
	// when nobody is logged in.
	Session(ctx context.Context) (models.Session, error)

	// ValidateAndRefreshTokenIfNeeded refreshes the token when it is about
	// to expire. A rejected token is reported as ErrAuth.
	ValidateAndRefreshTokenIfNeeded(ctx context.Context) error
}

// ClientAuthService is the AuthSessionProvider used by the CLI. It also
// registers, logs in and logs out.
type ClientAuthService interface {
	AuthSessionProvider

	// Register creates an account and stores the resulting session.
	Register(ctx context.Context, user models.User) (models.Session, error)

	// Login authenticates and stores the resulting session.
	Login(ctx context.Context, user models.User) (models.Session, error)

	// Logout forgets the local session.
	Logout(ctx context.Context) error
}
