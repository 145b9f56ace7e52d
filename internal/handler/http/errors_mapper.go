package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/models"
)

// errorStatusList is checked in order, so wrapped errors carrying several
// sentinels get the first listed status.
var errorStatusList = []struct {
	err    error
	status int
}{
	{errNoCaller, http.StatusUnauthorized},
	{service.ErrUnauthorizedAccessToDifferentUserData, http.StatusForbidden},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrValidationNoUserID, http.StatusBadRequest},
	{service.ErrVersionIsNotSpecified, http.StatusBadRequest},
	{models.ErrValidation, http.StatusBadRequest},
	{service.ErrWrongPassword, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrBinaryTooLarge, http.StatusRequestEntityTooLarge},
	{service.ErrNoteHasNoBinary, http.StatusNotFound},

	{store.ErrLoginAlreadyExists, http.StatusConflict},
	{store.ErrRecordExists, http.StatusConflict},
	{store.ErrUserNotFound, http.StatusUnauthorized},
	{store.ErrRecordNotFound, http.StatusNotFound},
	{store.ErrBinaryNotFound, http.StatusNotFound},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, entry := range errorStatusList {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError answers with the status of err. Server-side failures
// get the generic status text only.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		utils.WriteError(w, http.StatusText(status), status)
		return
	}
	utils.WriteError(w, err.Error(), status)
}
