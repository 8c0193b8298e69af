package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestMenu_SkipsDisabled(t *testing.T) {
	ran := ""
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B", Action: func() tea.Cmd { ran = "B"; return nil }},
		{Label: "C", Disabled: true},
		{Label: "D", Action: func() tea.Cmd { ran = "D"; return nil }},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, "D", ran)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, m.Selected)
	assert.Equal(t, []string{"A", "B", "C", "D"}, m.Labels())
}

func TestMenu_Hotkeys(t *testing.T) {
	ran := ""
	m := NewMenu([]MenuItem{
		{Label: "PLAY", Key: "p", Action: func() tea.Cmd { ran = "play"; return nil }},
		{Label: "HISTORY", Key: "h", Disabled: true, Action: func() tea.Cmd { ran = "history"; return nil }},
		{Label: "EXIT", Key: "q", Action: func() tea.Cmd { ran = "exit"; return nil }},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	assert.Empty(t, ran)
	assert.Equal(t, 0, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	assert.Equal(t, "exit", ran)
	assert.Equal(t, 2, m.Selected)
}

func TestMultiChoice_Reveal(t *testing.T) {
	m := NewMultiChoice([]string{"Quito", "Lima", "Bogota"})
	m = m.Move(1).Move(5)
	assert.Equal(t, 2, m.Cursor)

	m = m.Reveal("Quito", "Lima")
	assert.Equal(t, 0, m.Chosen)
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "2) Lima  ✓")
	assert.Contains(t, view, "1) Quito  ✗")

	// The cursor no longer moves once revealed.
	assert.Equal(t, m.Cursor, m.Move(-1).Cursor)
}

func TestMultiChoice_RevealTimeout(t *testing.T) {
	m := NewMultiChoice([]string{"True", "False"}).Reveal("", "False")
	assert.Equal(t, -1, m.Chosen)
	assert.NotContains(t, m.View(), "✗")
}

func TestCountdown(t *testing.T) {
	tests := []struct {
		remaining, limit int
		want             float64
	}{
		{15, 15, 1},
		{0, 15, 0},
		{5, 10, 0.5},
		{-1, 10, 0},
		{3, 0, 0},
	}
	for _, tt := range tests {
		c := Countdown{Remaining: tt.remaining, Limit: tt.limit, Width: 40}
		assert.InDelta(t, tt.want, c.Fraction(), 0.001)
	}

	view := Countdown{Remaining: 7, Limit: 10, Width: 30}.View()
	assert.True(t, strings.HasSuffix(strings.TrimSpace(ansi.Strip(view)), "7s"))
}

func TestButtonRow_Move(t *testing.T) {
	b := NewButtonRow("Play again", "Home")
	assert.Equal(t, 1, b.Move(1).Move(1).Focused)
	assert.Equal(t, 0, b.Move(-3).Focused)
}
