package console

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/timetick/internal/ui/theme"
)

var styles = struct {
	banner   lipgloss.Style
	heading  lipgloss.Style
	prompt   lipgloss.Style
	dim      lipgloss.Style
	question lipgloss.Style
	token    lipgloss.Style
	correct  lipgloss.Style
	wrong    lipgloss.Style
	warn     lipgloss.Style
	err      lipgloss.Style
	score    lipgloss.Style
}{
	banner: lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Highlight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2),
	heading: lipgloss.NewStyle().Bold(true),
	prompt:  lipgloss.NewStyle().Foreground(theme.Text),
	dim:     lipgloss.NewStyle().Foreground(theme.TextDim),
	question: lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1),
	token:   lipgloss.NewStyle().Foreground(theme.Highlight),
	correct: lipgloss.NewStyle().Bold(true).Foreground(theme.Success),
	wrong:   lipgloss.NewStyle().Bold(true).Foreground(theme.Error),
	warn:    lipgloss.NewStyle().Foreground(theme.Accent),
	err:     lipgloss.NewStyle().Bold(true).Foreground(theme.Error),
	score:   lipgloss.NewStyle().Bold(true).Foreground(theme.Highlight),
}
