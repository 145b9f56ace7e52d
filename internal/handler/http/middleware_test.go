// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/utils"
)

// ── Authorization header ───────────────────────────────────────────

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", wantToken: "abc.def.ghi"},
		{name: "scheme is case-insensitive", header: "bearer abc", wantToken: "abc"},
		{name: "no header", header: "", wantErr: ErrEmptyAuthorizationHeader},
		{name: "no token", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty token", header: "Bearer ", wantErr: ErrInvalidAuthorizationHeader},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidAuthorizationHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, err := bearerToken(req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

// ── Method check ───────────────────────────────────────────────────

func TestCheckHTTPMethod(t *testing.T) {
	router := chi.NewRouter()
	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }
	router.Get("/items", ok)
	router.Post("/items", ok)
	router.Route("/things", func(r chi.Router) {
		r.Get("/{id}", ok)
		r.Delete("/{id}", ok)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	tests := []struct {
		method     string
		path       string
		wantStatus int
		wantAllow  string
	}{
		{method: http.MethodGet, path: "/items", wantStatus: http.StatusOK},
		{method: http.MethodPut, path: "/items", wantStatus: http.StatusMethodNotAllowed, wantAllow: "GET, POST"},
		{method: http.MethodPost, path: "/things/1", wantStatus: http.StatusMethodNotAllowed, wantAllow: "GET, DELETE"},
		{method: http.MethodGet, path: "/nothing", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllow, rr.Header().Get("Allow"))
		})
	}
}

// ── Hashing ────────────────────────────────────────────────────────

func TestWithHashing(t *testing.T) {
	const key = "k"
	hasher := utils.NewHasher(key)
	body := []byte(`{"id":"1"}`)

	tests := []struct {
		name          string
		key           string
		signature     string
		wantStatus    int
		wantNext      bool
		wantSignature bool
	}{
		{name: "disabled hasher ignores signatures", key: "", signature: "garbage", wantStatus: http.StatusAccepted, wantNext: true},
		{name: "valid signature", key: key, signature: hasher.SumHex(body), wantStatus: http.StatusAccepted, wantNext: true, wantSignature: true},
		{name: "unsigned request is accepted", key: key, wantStatus: http.StatusAccepted, wantNext: true, wantSignature: true},
		{name: "wrong signature", key: key, signature: hasher.SumHex([]byte("other")), wantStatus: http.StatusBadRequest},
		{name: "signature is not hex", key: key, signature: "zz", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{hasher: utils.NewHasher(tt.key), logger: logger.Nop()}

			var nextCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				got, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				// тело должно быть восстановлено после проверки
				assert.Equal(t, body, got)
				w.WriteHeader(http.StatusAccepted)
				_, _ = w.Write([]byte("done"))
			})

			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
			if tt.signature != "" {
				req.Header.Set(utils.HashHeader, tt.signature)
			}
			rr := httptest.NewRecorder()
			h.withHashing(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if tt.wantSignature {
				assert.True(t, hasher.Verify(rr.Body.Bytes(), rr.Header().Get(utils.HashHeader)))
			}
		})
	}
}

func TestWithHashing_EmptyResponseIsNotSigned(t *testing.T) {
	h := &Handler{hasher: utils.NewHasher("k"), logger: logger.Nop()}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rr := httptest.NewRecorder()
	h.withHashing(next).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Header().Get(utils.HashHeader))
}

// ── GZip ───────────────────────────────────────────────────────────

func TestWithGZip_CompressesResponse(t *testing.T) {
	payload := strings.Repeat("note body ", 100)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(payload))
	})

	tests := []struct {
		name           string
		acceptEncoding string
		wantGzip       bool
	}{
		{name: "gzip accepted", acceptEncoding: "gzip", wantGzip: true},
		{name: "gzip among others", acceptEncoding: "deflate, gzip;q=1.0, br", wantGzip: true},
		{name: "identity only", acceptEncoding: "", wantGzip: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			rr := httptest.NewRecorder()
			withGZip(next).ServeHTTP(rr, req)

			if !tt.wantGzip {
				assert.Empty(t, rr.Header().Get("Content-Encoding"))
				assert.Equal(t, payload, rr.Body.String())
				return
			}

			assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
			assert.Less(t, rr.Body.Len(), len(payload))
			zr, err := gzip.NewReader(rr.Body)
			require.NoError(t, err)
			got, err := io.ReadAll(zr)
			require.NoError(t, err)
			assert.Equal(t, payload, string(got))
		})
	}
}

func TestWithGZip_InflatesRequest(t *testing.T) {
	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	_, _ = zw.Write([]byte(`{"title":"compressed"}`))
	require.NoError(t, zw.Close())

	var got []byte
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = io.ReadAll(r.Body)
		assert.Empty(t, r.Header.Get("Content-Encoding"))
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", &compressed)
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()
	withGZip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"title":"compressed"}`, string(got))
}

func TestWithGZip_RejectsBrokenRequest(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next must not be called")
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()
	withGZip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWithGZip_NoContentIsUntouched(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	withGZip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Zero(t, rr.Body.Len())
}

func TestWithGZip_SkipsPrecompressedMedia(t *testing.T) {
	png := bytes.Repeat([]byte{0x89, 'P', 'N', 'G'}, 64)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	withGZip(next).ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", rr.Header().Get("Vary"))
	assert.Equal(t, png, rr.Body.Bytes())
}

func TestCompressible(t *testing.T) {
	for contentType, want := range map[string]bool{
		"":                          true,
		"application/json":          true,
		"text/plain; charset=utf-8": true,
		"image/svg+xml":             true,
		"application/octet-stream":  true,
		"image/jpeg":                false,
		"video/mp4":                 false,
		"application/zip":           false,
		"application/pdf":           false,
		"not a media type;;":        true,
	} {
		assert.Equal(t, want, compressible(contentType), contentType)
	}
}

// ── Trace id and access log ────────────────────────────────────────

func TestWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	traceID := rr.Header().Get(traceIDHeader)
	_, err := uuid.Parse(traceID)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, traceID, entry["trace_id"])
}

func TestValidTraceID(t *testing.T) {
	assert.True(t, validTraceID("trace-42"))
	assert.True(t, validTraceID(strings.Repeat("a", maxTraceIDLength)))

	assert.False(t, validTraceID(""))
	assert.False(t, validTraceID(strings.Repeat("a", maxTraceIDLength+1)))
	assert.False(t, validTraceID("with space"))
	assert.False(t, validTraceID("line\nbreak"))
	assert.False(t, validTraceID("юникод"))
}

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantLevel string
	}{
		{name: "success", status: http.StatusCreated, body: "created", wantLevel: "info"},
		{name: "client error", status: http.StatusNotFound, wantLevel: "warn"},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := zerolog.New(&buf)
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			req := httptest.NewRequest(http.MethodPost, "/api/notes", nil)
			req = req.WithContext(l.WithContext(req.Context()))
			(&Handler{}).withLogging(next).ServeHTTP(httptest.NewRecorder(), req)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "/api/notes", entry["uri"])
			assert.Equal(t, http.MethodPost, entry["method"])
			assert.EqualValues(t, tt.status, entry["status"])
			assert.EqualValues(t, len(tt.body), entry["size"])
		})
	}
}

func TestResponseWriter(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	_, err := w.Write([]byte("first"))
	require.NoError(t, err)
	w.WriteHeader(http.StatusTeapot)
	_, err = w.Write([]byte("-second"))
	require.NoError(t, err)

	// implicit 200 wins over the late WriteHeader
	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, len("first-second"), w.size)
}
