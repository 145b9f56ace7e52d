package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	bodyStyle  = lipgloss.NewStyle().PaddingLeft(2).PaddingRight(2)
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false).
			BorderForeground(lipgloss.Color("8"))
)

// renderPage lays out a titled block with an optional hint line below it.
func renderPage(title, body, hint string) string {
	if strings.TrimSpace(body) == "" {
		body = "-"
	}

	parts := []string{
		titleStyle.Render(title),
		frameStyle.Render(bodyStyle.Render(body)),
	}
	if hint = strings.TrimSpace(hint); hint != "" {
		parts = append(parts, bodyStyle.Render(helpStyle.Render(hint)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderFields aligns label/value pairs into two columns.
func renderFields(pairs ...[2]string) string {
	labels := make([]string, len(pairs))
	values := make([]string, len(pairs))
	for i, p := range pairs {
		labels[i] = p[0] + ":"
		values[i] = valueOrNA(p[1])
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().PaddingRight(1).Render(strings.Join(labels, "\n")),
		strings.Join(values, "\n"),
	)
}

func valueOrNA(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return "N/A"
	}
	return v
}
