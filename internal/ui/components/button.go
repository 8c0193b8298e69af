package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/timetick/internal/ui/theme"
)

// ButtonRow is a horizontal set of buttons with one focused.
type ButtonRow struct {
	Labels  []string
	Focused int
}

// NewButtonRow focuses the first label.
func NewButtonRow(labels ...string) ButtonRow {
	return ButtonRow{Labels: labels}
}

// Move shifts focus by delta, clamped to the row.
func (b ButtonRow) Move(delta int) ButtonRow {
	b.Focused = min(max(b.Focused+delta, 0), len(b.Labels)-1)
	return b
}

// View renders the buttons side by side.
func (b ButtonRow) View() string {
	parts := make([]string, 0, len(b.Labels)*2)
	for i, l := range b.Labels {
		if i > 0 {
			parts = append(parts, "  ")
		}
		if i == b.Focused {
			parts = append(parts, theme.ButtonActive.Render("▸ "+l))
		} else {
			parts = append(parts, theme.ButtonInactive.Render(l))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
