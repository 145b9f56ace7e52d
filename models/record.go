// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrValidation is returned (wrapped) when a record is malformed, e.g. it has
// no id or no owner. Sync phases skip such records instead of failing.
var ErrValidation = errors.New("invalid record")

// SyncStatus describes where a record is in its sync lifecycle.
type SyncStatus string

const (
	// StatusPending marks a locally dirty record that must be pushed.
	StatusPending SyncStatus = "pending"

	// StatusSynced marks a record whose last known state matches the remote.
	StatusSynced SyncStatus = "synced"

	// StatusTombstoned marks a record whose deletion was acknowledged by the
	// remote side and which now waits for local hard deletion.
	StatusTombstoned SyncStatus = "tombstoned"
)

// EntityKind names a syncable table.
type EntityKind string

const (
	KindFolder EntityKind = "folder"
	KindNote   EntityKind = "note"
)

// Record holds the fields every syncable entity shares. Folder and Note embed
// it, so *Folder and *Note get Meta through promotion.
type Record struct {
	// ID is a UUID, immutable once created, and the only correlation key
	// between local and remote rows.
	ID string `json:"id"`

	// OwnerID is the principal the record belongs to.
	OwnerID int64 `json:"user_id"`

	CreatedAt time.Time `json:"created_at"`

	// LastModified is the authority for conflict resolution. When nil,
	// CreatedAt is used instead.
	LastModified *time.Time `json:"last_modified,omitempty"`

	SyncStatus SyncStatus `json:"sync_status"`

	// DeletedAt is the soft-delete marker.
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Meta returns the record itself. It exists so that generic sync code can
// reach the shared fields of any entity embedding Record.
func (r *Record) Meta() *Record {
	return r
}

// ModifiedAt returns LastModified, falling back to CreatedAt.
func (r *Record) ModifiedAt() time.Time {
	if r.LastModified != nil {
		return *r.LastModified
	}
	return r.CreatedAt
}

// IsDeleted reports whether the record carries a soft-delete marker.
func (r *Record) IsDeleted() bool {
	return r.DeletedAt != nil
}

// Touch stamps the record as locally modified and pending.
func (r *Record) Touch(at time.Time) {
	at = Timestamp(at)
	r.LastModified = &at
	r.SyncStatus = StatusPending
}

// SoftDelete sets the deletion marker and leaves the record pending so the
// deletion is pushed on the next sync.
func (r *Record) SoftDelete(at time.Time) {
	at = Timestamp(at)
	r.DeletedAt = &at
	r.LastModified = &at
	r.SyncStatus = StatusPending
}

// Validate checks the identity fields of the record.
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: empty id", ErrValidation)
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		return fmt.Errorf("%w: id %q is not a uuid", ErrValidation, r.ID)
	}
	if r.OwnerID == 0 {
		return fmt.Errorf("%w: record %s has no owner", ErrValidation, r.ID)
	}
	if r.CreatedAt.IsZero() {
		return fmt.Errorf("%w: record %s has no creation time", ErrValidation, r.ID)
	}
	return nil
}

// Syncable is the constraint satisfied by pointers to syncable entities.
type Syncable[T any] interface {
	// Meta exposes the shared record fields for in-place modification.
	Meta() *Record

	// Clone returns a deep copy.
	Clone() T

	// MergeFrom overwrites every mutable field (including the shared record
	// timestamps and deletion marker) with the values of src. ID and OwnerID
	// are left untouched.
	MergeFrom(src T)

	// Validate reports malformed entities with ErrValidation.
	Validate() error
}

// Timestamp normalises t to UTC with microsecond precision, which is what
// both the local and the remote stores keep.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// NewRecord returns a pending record for ownerID with a fresh UUID v7.
func NewRecord(ownerID int64, now time.Time) Record {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	now = Timestamp(now)
	return Record{
		ID:           id.String(),
		OwnerID:      ownerID,
		CreatedAt:    now,
		LastModified: &now,
		SyncStatus:   StatusPending,
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func (r Record) clone() Record {
	r.LastModified = cloneTime(r.LastModified)
	r.DeletedAt = cloneTime(r.DeletedAt)
	return r
}

func (r *Record) mergeFrom(src *Record) {
	r.CreatedAt = src.CreatedAt
	r.LastModified = cloneTime(src.LastModified)
	r.DeletedAt = cloneTime(src.DeletedAt)
	r.SyncStatus = src.SyncStatus
}
