// Package tui renders the terminal views of the notesync CLI.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/models"
)

// SyncFunc runs one sync and reports its progress through onProgress.
type SyncFunc func(ctx context.Context, onProgress func(models.SyncProgress)) (service.SyncResult, error)

// RunSync runs sync behind a progress view. Pressing q cancels the run;
// RunSync returns once the run has finished either way.
func RunSync(ctx context.Context, sync SyncFunc, opts ...tea.ProgramOption) (service.SyncResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(newSyncModel(cancel), opts...)

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		result, err := sync(ctx, func(p models.SyncProgress) {
			program.Send(progressMsg(p))
		})
		program.Send(syncDoneMsg{result: result, err: err})
	}()

	finalModel, err := program.Run()
	cancel()
	<-finished
	if err != nil {
		return service.SyncResult{}, err
	}

	result, ok := finalModel.(syncModel)
	if !ok || !result.done {
		return service.SyncResult{}, tea.ErrProgramKilled
	}
	return result.result, result.err
}

// PromptCredentials asks for a login and a password. login pre-fills the
// first field.
func PromptCredentials(title, login string, opts ...tea.ProgramOption) (models.User, error) {
	finalModel, err := tea.NewProgram(newCredentialsModel(title, login), opts...).Run()
	if err != nil {
		return models.User{}, err
	}

	result, ok := finalModel.(credentialsModel)
	if !ok {
		return models.User{}, tea.ErrProgramKilled
	}
	if result.quitByUser || !result.submitted {
		return models.User{}, ErrUserQuit
	}
	return result.user(), nil
}
