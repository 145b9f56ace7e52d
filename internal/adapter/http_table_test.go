package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/models"
)

// fakeBackend keeps notes in memory and follows the REST contract of the
// real backend closely enough for the table tests.
type fakeBackend struct {
	mu    sync.Mutex
	notes map[string]*models.Note
	calls []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{notes: make(map[string]*models.Note)}
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, r.Method+" "+r.URL.Path)

	if r.Header.Get("Authorization") != "Bearer token" {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	const prefix = "/api/notes"
	id := ""
	if len(r.URL.Path) > len(prefix)+1 {
		id = r.URL.Path[len(prefix)+1:]
	}

	switch {
	case r.Method == http.MethodGet && id == "":
		items := make([]*models.Note, 0, len(b.notes))
		for _, n := range b.notes {
			if !n.IsDeleted() {
				items = append(items, n)
			}
		}
		_, _ = utils.WriteJSON(w, items, http.StatusOK)
	case r.Method == http.MethodGet:
		n, ok := b.notes[id]
		if !ok {
			utils.WriteError(w, "note not found", http.StatusNotFound)
			return
		}
		_, _ = utils.WriteJSON(w, n, http.StatusOK)
	case r.Method == http.MethodPost:
		var n models.Note
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &n); err != nil {
			utils.WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if _, ok := b.notes[n.ID]; ok {
			utils.WriteError(w, "exists", http.StatusConflict)
			return
		}
		b.notes[n.ID] = &n
		w.WriteHeader(http.StatusCreated)
	case r.Method == http.MethodPut:
		current, ok := b.notes[id]
		if !ok || current.IsDeleted() {
			utils.WriteError(w, "note not found", http.StatusNotFound)
			return
		}
		var n models.Note
		_ = json.NewDecoder(r.Body).Decode(&n)
		b.notes[id] = &n
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodDelete:
		n, ok := b.notes[id]
		if !ok {
			utils.WriteError(w, "note not found", http.StatusNotFound)
			return
		}
		now := time.Now().UTC()
		n.DeletedAt = &now
		w.WriteHeader(http.StatusNoContent)
	}
}

func TestHTTPTable_Lifecycle(t *testing.T) {
	backend := newFakeBackend()
	srv := httptest.NewServer(backend)
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("token")
	notes := a.Notes()
	ctx := context.Background()

	note := &models.Note{Record: models.NewRecord(5, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)), Title: "plan", Content: "write it"}
	note.Binary = []byte("never sent as json")

	_, err := notes.Get(ctx, 5, note.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, notes.Insert(ctx, note))
	assert.ErrorIs(t, notes.Insert(ctx, note), ErrConflict)

	got, err := notes.Get(ctx, 5, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "plan", got.Title)
	assert.Nil(t, got.Binary)
	assert.True(t, note.CreatedAt.Equal(got.CreatedAt))

	note.Title = "plan v2"
	require.NoError(t, notes.Update(ctx, note))

	list, err := notes.List(ctx, 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "plan v2", list[0].Title)

	require.NoError(t, notes.Delete(ctx, 5, note.ID))

	list, err = notes.List(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, list)

	// soft-deleted rows are still visible by id
	got, err = notes.Get(ctx, 5, note.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted())
	assert.ErrorIs(t, notes.Update(ctx, note), ErrNotFound)

	assert.Equal(t, []string{
		"GET /api/notes/" + note.ID,
		"POST /api/notes",
		"POST /api/notes",
		"GET /api/notes/" + note.ID,
		"PUT /api/notes/" + note.ID,
		"GET /api/notes",
		"DELETE /api/notes/" + note.ID,
		"GET /api/notes",
		"GET /api/notes/" + note.ID,
		"PUT /api/notes/" + note.ID,
	}, backend.calls)
}

func TestHTTPTable_SendsOwnerScope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/folders", r.URL.Path)
		assert.Equal(t, "11", r.URL.Query().Get("user_id"))
		_, _ = w.Write([]byte(`[{"id":"0192f0a4-7d2c-7c1e-9b5a-3f1e2d4c5b6a","user_id":11,"name":"Work","color":"red","sync_status":"synced","created_at":"2026-01-01T00:00:00Z"}]`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("token")

	folders, err := a.Folders().List(context.Background(), 11)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "Work", folders[0].Name)
	assert.Equal(t, int64(11), folders[0].OwnerID)
	assert.Equal(t, models.StatusSynced, folders[0].SyncStatus)
}

func TestHTTPTable_NoToken(t *testing.T) {
	a := newTestAdapter(t, "http://127.0.0.1:1")

	_, err := a.Notes().List(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestHTTPTable_GetEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("token")

	_, err := a.Notes().Get(context.Background(), 1, "id")
	assert.Error(t, err)
}

func TestHTTPTable_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{status: http.StatusBadRequest, want: ErrBadRequest},
		{status: http.StatusForbidden, want: ErrForbidden},
		{status: http.StatusRequestTimeout, want: ErrRequestTimeout},
		{status: http.StatusTooManyRequests, want: ErrTooManyRequests},
		{status: http.StatusInternalServerError, want: ErrInternalServerError},
		{status: http.StatusBadGateway, want: ErrBadGateway},
		{status: http.StatusServiceUnavailable, want: ErrServiceUnavailable},
		{status: http.StatusGatewayTimeout, want: ErrGatewayTimeout},
		{status: http.StatusTeapot, want: ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			a.SetToken("token")

			err := a.Notes().Delete(context.Background(), 1, "id")
			assert.ErrorIs(t, err, tt.want)

			var httpErr *HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.status, httpErr.StatusCode)
		})
	}
}

func TestHTTPTable_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	a := newTestAdapter(t, url)
	a.SetToken("token")

	_, err := a.Notes().List(context.Background(), 1)
	require.Error(t, err)

	var opErr *net.OpError
	assert.True(t, errors.As(err, &opErr), "transport errors keep their net cause: %v", err)
}
