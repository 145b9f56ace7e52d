package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/models"
)

type progressMsg models.SyncProgress

type syncDoneMsg struct {
	result service.SyncResult
	err    error
}

// syncModel shows the progress of one sync run. Quitting cancels the run
// and waits for it to roll back.
type syncModel struct {
	spinner spinner.Model
	bar     progress.Model

	state      models.SyncProgress
	cancel     func()
	cancelling bool

	done   bool
	result service.SyncResult
	err    error
}

func newSyncModel(cancel func()) syncModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return syncModel{
		spinner: s,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		cancel:  cancel,
	}
}

func (m syncModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m syncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) && !m.done && !m.cancelling {
			m.cancelling = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case progressMsg:
		m.state = models.SyncProgress(msg)
		return m, nil

	case syncDoneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m syncModel) View() string {
	var b strings.Builder

	switch {
	case m.done:
		b.WriteString(m.bar.ViewAs(m.finalCompletion()))
	default:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.bar.ViewAs(m.state.Completion()))
	}
	b.WriteString("\n\n")

	b.WriteString(renderKindLine("Папки", m.state.Folders, m.state.TwoWay))
	b.WriteString(renderKindLine("Заметки", m.state.Notes, m.state.TwoWay))
	if m.state.ResolvedConflicts > 0 {
		fmt.Fprintf(&b, "Конфликтов разрешено: %d\n", m.state.ResolvedConflicts)
	}

	b.WriteString("\n")
	switch {
	case m.done && m.err != nil:
		b.WriteString(errorStyle.Render("Ошибка: " + HumanizeError(m.err)))
	case m.done:
		b.WriteString(successStyle.Render(Summarize(m.result)))
	case m.cancelling:
		b.WriteString("Отмена, откат изменений...")
	default:
		b.WriteString(valueOrNA(m.state.Status))
	}

	hotKeys := "q: отменить"
	if m.done {
		hotKeys = ""
	}
	return renderPage("СИНХРОНИЗАЦИЯ", b.String(), hotKeys)
}

func (m syncModel) finalCompletion() float64 {
	if m.err != nil {
		return m.state.Completion()
	}
	return 1
}

func renderKindLine(title string, k models.KindProgress, twoWay bool) string {
	line := fmt.Sprintf("%-8s отправлено %d/%d", title, k.Synced, k.Total)
	if twoWay {
		line += fmt.Sprintf(", получено %d/%d", k.Downloaded, k.DownloadTotal)
	}
	return line + "\n"
}

// Summarize renders the outcome of a committed run.
func Summarize(r service.SyncResult) string {
	failed := r.FolderUpload.Failed + r.NoteUpload.Failed + r.FolderDownload.Failed + r.NoteDownload.Failed
	msg := fmt.Sprintf("Готово за %s: применено изменений %d", r.Duration.Round(time.Millisecond), r.Commit.Applied.Total())
	if failed > 0 {
		msg += fmt.Sprintf(", не синхронизировано записей: %d", failed)
	}
	return msg
}
