// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the note backend protocol.
//
// [ServerAdapter] decouples the sync engine from HTTP. It exposes the two
// remote tables (folders and notes) through the generic [RemoteTable], the
// auth endpoints and the binary content endpoints. Non-2xx responses become
// [*HTTPError] values that unwrap to the sentinels in errors.go, so callers
// can use [errors.Is] (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401)
// while the retry layer can still read the status code.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-note-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// RemoteTable is one owner-scoped table of the backend.
type RemoteTable[T models.Syncable[T]] interface {
	// List returns the active (not soft-deleted) rows of ownerID.
	List(ctx context.Context, ownerID int64) ([]T, error)

	// Get returns the row with id, soft-deleted rows included. A missing row
	// yields an error matching [ErrNotFound].
	Get(ctx context.Context, ownerID int64, id string) (T, error)

	// Insert creates item. An existing id yields [ErrConflict].
	Insert(ctx context.Context, item T) error

	// Update overwrites an active row. A missing or soft-deleted row yields
	// [ErrNotFound].
	Update(ctx context.Context, item T) error

	// Delete soft-deletes the row with id. A missing row yields [ErrNotFound].
	Delete(ctx context.Context, ownerID int64, id string) error
}

// ServerAdapter defines transport-agnostic communication with the note
// backend. Implementations attach the bearer token to every authenticated
// request and map transport failures to the sentinels of this package.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if none has been set.
	Token() string

	// Register creates an account and stores the returned token.
	Register(ctx context.Context, user models.User) (models.Token, error)

	// Login authenticates and stores the returned token.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// Refresh exchanges the current token for a fresh one and stores it.
	Refresh(ctx context.Context) (models.Token, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Version returns the backend version string.
	Version(ctx context.Context) (string, error)

	Folders() RemoteTable[*models.Folder]
	Notes() RemoteTable[*models.Note]

	// UploadBinary stores the binary content of a note.
	UploadBinary(ctx context.Context, ownerID int64, noteID, contentType string, data []byte) error

	// DownloadBinary returns the binary content of a note and its content
	// type. Missing content yields [ErrNotFound].
	DownloadBinary(ctx context.Context, ownerID int64, noteID string) ([]byte, string, error)
}
