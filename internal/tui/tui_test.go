package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

// headless запускает программу без терминала.
func headless(out *bytes.Buffer) []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithInput(nil), tea.WithOutput(out), tea.WithoutSignalHandler()}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// ── sync view ──────────────────────────────────────────────────────

func TestSyncModel_ProgressAndDone(t *testing.T) {
	m := tea.Model(newSyncModel(nil))

	m, cmd := m.Update(progressMsg(models.SyncProgress{
		Folders: models.KindProgress{Total: 2, Synced: 1},
		Status:  "Uploading notes",
	}))
	assert.Nil(t, cmd)
	view := m.View()
	assert.Contains(t, view, "Uploading notes")
	assert.Contains(t, view, "отправлено 1/2")

	result := service.SyncResult{
		Duration: 1500 * time.Millisecond,
		Commit:   store.CommitResult{Applied: store.ChangeSet{Notes: store.TableChanges{Upserted: 3}}},
	}
	m, cmd = m.Update(syncDoneMsg{result: result})
	assert.True(t, isQuit(cmd))
	assert.Contains(t, m.View(), "применено изменений 3")
}

func TestSyncModel_ShowsError(t *testing.T) {
	m := tea.Model(newSyncModel(nil))

	m, _ = m.Update(syncDoneMsg{err: fmt.Errorf("sync: %w", service.ErrNotLoggedIn)})

	assert.Contains(t, m.View(), "notesync login")
}

func TestSyncModel_QuitCancelsOnce(t *testing.T) {
	var cancelled int
	m := tea.Model(newSyncModel(func() { cancelled++ }))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.False(t, isQuit(cmd), "the view waits for the rollback")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.Equal(t, 1, cancelled)
	assert.Contains(t, m.View(), "Отмена")
}

func TestRunSync_ReturnsResult(t *testing.T) {
	var out bytes.Buffer

	result, err := RunSync(context.Background(), func(_ context.Context, onProgress func(models.SyncProgress)) (service.SyncResult, error) {
		onProgress(models.SyncProgress{Status: "Preparing sync"})
		onProgress(models.SyncProgress{Status: "Completed", Folders: models.KindProgress{UploadDone: true}})
		return service.SyncResult{SyncID: "run-1", Success: true}, nil
	}, headless(&out)...)

	require.NoError(t, err)
	assert.Equal(t, "run-1", result.SyncID)
}

func TestRunSync_ReturnsSyncError(t *testing.T) {
	var out bytes.Buffer
	boom := errors.New("boom")

	_, err := RunSync(context.Background(), func(context.Context, func(models.SyncProgress)) (service.SyncResult, error) {
		return service.SyncResult{}, boom
	}, headless(&out)...)

	assert.ErrorIs(t, err, boom)
}

// ── credentials form ───────────────────────────────────────────────

func TestCredentialsModel_Submit(t *testing.T) {
	m := tea.Model(newCredentialsModel("ВХОД", ""))

	m = typeText(m, "alice")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, isQuit(cmd), "enter on the login field moves to the password")

	m = typeText(m, "s3cret")
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, isQuit(cmd))

	final := m.(credentialsModel)
	assert.True(t, final.submitted)
	assert.Equal(t, models.User{Login: "alice", Password: "s3cret"}, final.user())
	assert.NotContains(t, final.View(), "s3cret")
}

func TestCredentialsModel_RequiresBothFields(t *testing.T) {
	m := tea.Model(newCredentialsModel("ВХОД", ""))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "only-password")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, isQuit(cmd))
	assert.Contains(t, m.View(), "Логин и пароль обязательны")
}

func TestCredentialsModel_PrefilledLogin(t *testing.T) {
	m := newCredentialsModel("ВХОД", "bob")

	assert.Equal(t, 1, m.focus)
	assert.Equal(t, "bob", m.user().Login)
}

func TestCredentialsModel_Esc(t *testing.T) {
	m := tea.Model(newCredentialsModel("ВХОД", ""))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, isQuit(cmd))
	assert.True(t, m.(credentialsModel).quitByUser)
}

// ── helpers ────────────────────────────────────────────────────────

func TestHumanizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: service.ErrLockConflict, want: "Синхронизация уже выполняется"},
		{err: fmt.Errorf("x: %w", service.ErrAuth), want: "Сессия недействительна"},
		{err: &service.NetworkError{Err: errors.New("reset")}, want: "Сервер недоступен"},
		{err: errors.New("dial tcp 127.0.0.1:8080: connection refused"), want: "Сервер недоступен"},
		{err: errors.New("something else"), want: "something else"},
	}

	for _, tt := range tests {
		got := HumanizeError(tt.err)
		if tt.want == "" {
			assert.Empty(t, got)
			continue
		}
		assert.True(t, strings.Contains(got, tt.want), got)
	}
}

func TestRenderBuildInfo(t *testing.T) {
	view := RenderBuildInfo(models.NewAppBuildInfo("v1.0.0", "", "abc123"))

	assert.Contains(t, view, "v1.0.0")
	assert.Contains(t, view, "N/A")
	assert.Contains(t, view, "abc123")
}
