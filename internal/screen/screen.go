// Package screen defines what the router stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/timetick/internal/ui/layout"
)

// Screen is one full-frame view of the app, drawn between the header
// and the footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider screens replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer screens own background work. Close is called once the screen
// leaves the stack and must be safe to call more than once.
type Closer interface {
	Close()
}
