package service

import "github.com/MKhiriev/go-note-sync/models"

// ConflictAction is the outcome of comparing a local and a remote record.
type ConflictAction int

const (
	// ActionCreate stores the remote record; no local copy existed.
	ActionCreate ConflictAction = iota
	// ActionOverwrite replaces the local record with the newer remote one.
	ActionOverwrite
	// ActionKeepLocal leaves the local record untouched.
	ActionKeepLocal
	// ActionIgnoreDeleted ignores the remote record because a local deletion
	// is still waiting to be pushed.
	ActionIgnoreDeleted
)

func (a ConflictAction) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionOverwrite:
		return "overwrite"
	case ActionKeepLocal:
		return "keep-local"
	case ActionIgnoreDeleted:
		return "ignore-deleted"
	default:
		return "unknown"
	}
}

// Resolution is the decision of the resolver. Record is what must be
// stored locally for ActionCreate and ActionOverwrite.
type Resolution[T models.Syncable[T]] struct {
	Action ConflictAction
	Record T
}

// Conflict reports whether a local record was overwritten.
func (r Resolution[T]) Conflict() bool {
	return r.Action == ActionOverwrite
}

// ConflictResolver decides between a local and a remote record by last
// modification time. The later timestamp wins; ties keep the local record.
type ConflictResolver[T models.Syncable[T]] struct{}

// Resolve compares local (valid only when found) with remote. It never
// modifies its arguments.
func (ConflictResolver[T]) Resolve(local T, found bool, remote T) Resolution[T] {
	if !found {
		created := remote.Clone()
		created.Meta().SyncStatus = models.StatusSynced
		return Resolution[T]{Action: ActionCreate, Record: created}
	}

	if local.Meta().IsDeleted() {
		return Resolution[T]{Action: ActionIgnoreDeleted, Record: local}
	}

	if !remote.Meta().ModifiedAt().After(local.Meta().ModifiedAt()) {
		return Resolution[T]{Action: ActionKeepLocal, Record: local}
	}

	merged := local.Clone()
	merged.MergeFrom(remote)
	merged.Meta().SyncStatus = models.StatusSynced
	return Resolution[T]{Action: ActionOverwrite, Record: merged}
}
