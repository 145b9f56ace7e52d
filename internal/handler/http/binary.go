package http

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-note-sync/internal/app"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/utils"
)

func (h *Handler) uploadBinary(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerScope(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// one extra byte tells an oversized body from one at the limit
	data, err := io.ReadAll(io.LimitReader(r.Body, service.MaxBinarySize+1))
	if err != nil {
		utils.WriteError(w, app.MsgFailedToReadBody, http.StatusBadRequest)
		return
	}

	noteID := chi.URLParam(r, "id")
	contentType, err := h.services.BinaryService.Upload(r.Context(), ownerID, noteID, data)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("id", noteID).Msg("binary upload failed")
		writeServiceError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]string{"content_type": contentType}, http.StatusOK)
}

func (h *Handler) downloadBinary(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerScope(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	noteID := chi.URLParam(r, "id")
	data, contentType, err := h.services.BinaryService.Download(r.Context(), ownerID, noteID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
