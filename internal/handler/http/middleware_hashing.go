package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-note-sync/internal/app"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/utils"
)

// withHashing checks the HashSHA256 header of request bodies and signs
// response bodies. It is a no-op when no hash key is configured.
func (h *Handler) withHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.hasher.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		if signature := r.Header.Get(utils.HashHeader); signature != "" && r.Body != nil {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				log.Err(err).Str("func", "*Handler.withHashing").Msg(app.MsgFailedToReadBody)
				utils.WriteError(w, app.MsgFailedToReadBody, http.StatusBadRequest)
				return
			}
			_ = r.Body.Close()

			if !h.hasher.Verify(body, signature) {
				log.Error().Str("func", "*Handler.withHashing").
					Str("hash from request", signature).
					Msg("hashes are not equal")
				utils.WriteError(w, ErrIntegrityCheckFailed.Error(), http.StatusBadRequest)
				return
			}
			// restore request body
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		hw := &hashingResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(hw, r)

		if hw.buf.Len() > 0 {
			w.Header().Set(utils.HashHeader, h.hasher.SumHex(hw.buf.Bytes()))
		}
		w.WriteHeader(hw.status)
		if hw.buf.Len() > 0 {
			_, _ = w.Write(hw.buf.Bytes())
		}
	})
}

// hashingResponseWriter holds the response back until its body can be
// signed.
type hashingResponseWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *hashingResponseWriter) WriteHeader(statusCode int) {
	w.status = statusCode
}

func (w *hashingResponseWriter) Write(data []byte) (int, error) {
	return w.buf.Write(data)
}
