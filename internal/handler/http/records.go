package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-note-sync/internal/app"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/models"
)

// recordRoutes serves the REST collection of one entity kind.
type recordRoutes[T models.Syncable[T]] struct {
	kind models.EntityKind
	svc  service.RecordService[T]
}

func newRecordRoutes[T models.Syncable[T]](kind models.EntityKind, svc service.RecordService[T]) *recordRoutes[T] {
	return &recordRoutes[T]{kind: kind, svc: svc}
}

func (rr *recordRoutes[T]) mount(r chi.Router) {
	r.Get("/", rr.list)
	r.Post("/", rr.create)
	r.Get("/{id}", rr.get)
	r.Put("/{id}", rr.update)
	r.Delete("/{id}", rr.delete)
}

// list returns every record of the owner, tombstones included.
func (rr *recordRoutes[T]) list(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerScope(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items, err := rr.svc.List(r.Context(), ownerID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("kind", string(rr.kind)).Msg("list failed")
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	_, _ = utils.WriteJSON(w, items, http.StatusOK)
}

func (rr *recordRoutes[T]) get(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerScope(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	item, err := rr.svc.Get(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_, _ = utils.WriteJSON(w, item, http.StatusOK)
}

func (rr *recordRoutes[T]) create(w http.ResponseWriter, r *http.Request) {
	item, ok := rr.decode(w, r)
	if !ok {
		return
	}

	created, err := rr.svc.Create(r.Context(), item)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("kind", string(rr.kind)).Str("id", item.Meta().ID).Msg("create failed")
		writeServiceError(w, err)
		return
	}
	_, _ = utils.WriteJSON(w, created, http.StatusCreated)
}

func (rr *recordRoutes[T]) update(w http.ResponseWriter, r *http.Request) {
	item, ok := rr.decode(w, r)
	if !ok {
		return
	}
	if id := chi.URLParam(r, "id"); item.Meta().ID != id {
		utils.WriteError(w, app.MsgRecordIDMismatch, http.StatusBadRequest)
		return
	}

	updated, err := rr.svc.Update(r.Context(), item)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("kind", string(rr.kind)).Str("id", item.Meta().ID).Msg("update failed")
		writeServiceError(w, err)
		return
	}
	_, _ = utils.WriteJSON(w, updated, http.StatusOK)
}

func (rr *recordRoutes[T]) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerScope(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err = rr.svc.Delete(r.Context(), ownerID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a record body and checks that it belongs to the caller.
func (rr *recordRoutes[T]) decode(w http.ResponseWriter, r *http.Request) (T, bool) {
	var item T

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return item, false
	}

	var zero T
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil || any(item) == any(zero) {
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return item, false
	}
	if item.Meta().OwnerID != userID {
		writeServiceError(w, service.ErrUnauthorizedAccessToDifferentUserData)
		return item, false
	}
	return item, true
}

// ownerScope returns the user_id query parameter when it names the
// authenticated caller.
func ownerScope(r *http.Request) (int64, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return 0, errNoCaller
	}

	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		return 0, service.ErrUnauthorizedAccessToDifferentUserData
	}
	ownerID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Join(service.ErrInvalidDataProvided, err)
	}
	if ownerID != userID {
		return 0, service.ErrUnauthorizedAccessToDifferentUserData
	}
	return ownerID, nil
}
