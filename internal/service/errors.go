package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-sync/models"
)

// Sync engine errors.
var (
	// ErrLockConflict is returned immediately when a sync is already running.
	ErrLockConflict = errors.New("sync already in progress")

	// ErrAuth is returned when the session is missing or was rejected by the
	// backend. It is never retried.
	ErrAuth = errors.New("authentication failed")

	// ErrNotLoggedIn is returned when no local session exists.
	ErrNotLoggedIn = fmt.Errorf("%w: not logged in", ErrAuth)

	// ErrTransaction is the parent of every transaction manager failure.
	ErrTransaction = errors.New("sync transaction error")

	ErrTransactionAlreadyActive = fmt.Errorf("%w: transaction already active", ErrTransaction)
	ErrNoActiveTransaction      = fmt.Errorf("%w: no active transaction", ErrTransaction)
	ErrCommitFailed             = fmt.Errorf("%w: commit failed", ErrTransaction)

	// ErrSyncBudgetExceeded is returned when a sync runs longer than its
	// budget. The budget is checked between phases only.
	ErrSyncBudgetExceeded = errors.New("sync budget exceeded")
)

// Backend service errors.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrUnauthorizedAccessToDifferentUserData = errors.New("unauthorized access to different user data")
	ErrValidationNoUserID                    = errors.New("no user ID was given")
	ErrVersionIsNotSpecified                 = errors.New("app version is not specified")
	ErrBinaryTooLarge                        = errors.New("binary content too large")
	ErrNoteHasNoBinary                       = errors.New("note has no binary content")
)

// NetworkError reports a remote failure that stayed after every retry the
// policy of its kind allowed.
type NetworkError struct {
	Kind RecoverableKind
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error (%s): %v", e.Kind, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// PerRecordError is the failure of one record. Phases log it and move on.
type PerRecordError struct {
	Kind     models.EntityKind
	RecordID string
	Op       string
	Err      error
}

func (e *PerRecordError) Error() string {
	return fmt.Sprintf("%s %s %s: %v", e.Op, e.Kind, e.RecordID, e.Err)
}

func (e *PerRecordError) Unwrap() error {
	return e.Err
}
