// Package http implements the REST transport of the note backend.
package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/utils"
)

// auth admits requests that carry a valid bearer token and stores the token
// owner with [utils.WithUserID]. Everything else gets 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := bearerToken(r)
		if err != nil {
			log.Warn().Err(err).Msg("unauthenticated request")
			unauthorized(w, err.Error())
			return
		}

		token, err := h.services.AuthService.ParseToken(r.Context(), tokenString)
		if err != nil {
			log.Warn().Err(err).Msg("error occurred during parsing token")
			unauthorized(w, http.StatusText(http.StatusUnauthorized))
			return
		}

		ctx := log.With().Int64("user_id", token.UserID).Logger().WithContext(r.Context())
		next.ServeHTTP(w, r.WithContext(utils.WithUserID(ctx, token.UserID)))
	})
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	token, err := utils.ParseBearerToken(header)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err)
	}
	return token, nil
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="notes"`)
	utils.WriteError(w, message, http.StatusUnauthorized)
}
