package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/timetick/internal/ui/theme"
)

// MultiChoice renders numbered answer options with a cursor. After
// Reveal it colors the correct option green and a wrong pick red.
type MultiChoice struct {
	Options  []string
	Cursor   int
	Chosen   int // -1 until a choice is made
	Correct  string
	Revealed bool
}

// NewMultiChoice creates a selector with the cursor on the first option.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, Chosen: -1}
}

// Move shifts the cursor by delta, clamped to the options.
func (m MultiChoice) Move(delta int) MultiChoice {
	if m.Revealed || len(m.Options) == 0 {
		return m
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Options)-1)
	return m
}

// Choose marks option i (zero-based) as picked.
func (m MultiChoice) Choose(i int) MultiChoice {
	if i >= 0 && i < len(m.Options) {
		m.Chosen = i
		m.Cursor = i
	}
	return m
}

// Reveal shows the verdict colors. chosen is the picked option text,
// empty when the question timed out.
func (m MultiChoice) Reveal(chosen, correct string) MultiChoice {
	m.Revealed = true
	m.Correct = correct
	m.Chosen = -1
	for i, o := range m.Options {
		if o == chosen {
			m.Chosen = i
		}
	}
	return m
}

// View renders one option per line.
func (m MultiChoice) View() string {
	lines := make([]string, len(m.Options))
	for i, opt := range m.Options {
		prefix := "  "
		if !m.Revealed && i == m.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.Revealed && opt == m.Correct:
			style = theme.Correct
			line += "  ✓"
		case m.Revealed && i == m.Chosen:
			style = theme.Incorrect
			line += "  ✗"
		case m.Revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}
