// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-note-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -exclude_interfaces=LocalTable -destination=../mock/client_store_mock.go -package=mock

// RecordFilter narrows local listings. The zero filter lists every live
// record of every owner.
type RecordFilter struct {
	// OwnerID limits the listing to one principal when non-zero.
	OwnerID int64
	// Statuses limits the listing to the given sync states when non-empty.
	Statuses []models.SyncStatus
	// IncludeDeleted also returns soft-deleted records.
	IncludeDeleted bool
	// FolderID limits the listing to records whose parent is this folder.
	FolderID *string
}

// Dirty selects the records of ownerID that must be pushed, deletions
// included. Only pending rows qualify: tombstoned rows were already pushed
// and are hard-deleted in the run that acknowledged them.
func Dirty(ownerID int64) RecordFilter {
	return RecordFilter{OwnerID: ownerID, Statuses: []models.SyncStatus{models.StatusPending}, IncludeDeleted: true}
}

// Tombstones selects the records of ownerID whose deletion was acknowledged.
func Tombstones(ownerID int64) RecordFilter {
	return RecordFilter{OwnerID: ownerID, Statuses: []models.SyncStatus{models.StatusTombstoned}, IncludeDeleted: true}
}

func (f RecordFilter) match(r *models.Record, parent *string) bool {
	if f.OwnerID != 0 && r.OwnerID != f.OwnerID {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, r.SyncStatus) {
		return false
	}
	if !f.IncludeDeleted && r.IsDeleted() {
		return false
	}
	if f.FolderID != nil && (parent == nil || *parent != *f.FolderID) {
		return false
	}
	return true
}

// LocalTable is the client-side table of one entity kind. Both the primary
// store and a working copy implement it.
type LocalTable[T models.Syncable[T]] interface {
	// Get returns the record with id or ErrRecordNotFound. Soft-deleted
	// records are returned too.
	Get(ctx context.Context, id string) (T, error)
	// List returns the records matching filter ordered by creation time.
	List(ctx context.Context, filter RecordFilter) ([]T, error)
	// Upsert inserts or fully replaces items by id.
	Upsert(ctx context.Context, items ...T) error
	// Delete removes records physically. Missing ids are ignored.
	Delete(ctx context.Context, ids ...string) error
}

// SyncMetaRepository keeps small key/value facts about past syncs.
type SyncMetaRepository interface {
	GetMeta(ctx context.Context, key string) (string, bool, error)
	SetMeta(ctx context.Context, key, value string) error
}

// SessionRepository persists the single local login session.
type SessionRepository interface {
	SaveSession(ctx context.Context, session models.Session) error
	LoadSession(ctx context.Context) (models.Session, error)
	ClearSession(ctx context.Context) error
}
