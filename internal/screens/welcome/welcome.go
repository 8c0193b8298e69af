// Package welcome is the splash shown when the TUI starts.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/timetick/internal/router"
	"github.com/abhisek/timetick/internal/screen"
	"github.com/abhisek/timetick/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 800 * time.Millisecond
	totalDur     = 2400 * time.Millisecond
)

// The hourglass drains over these frames.
var hourglassFrames = []string{
	"  ┌───────┐\n  │▓▓▓▓▓▓▓│\n   ╲▓▓▓▓▓╱\n    ╲ ▓ ╱\n    ╱ · ╲\n   ╱     ╲\n  │       │\n  └───────┘",
	"  ┌───────┐\n  │       │\n   ╲▓▓▓▓▓╱\n    ╲ ▓ ╱\n    ╱ · ╲\n   ╱  ▓  ╲\n  │ ▓▓▓▓▓ │\n  └───────┘",
	"  ┌───────┐\n  │       │\n   ╲     ╱\n    ╲ ▓ ╱\n    ╱ · ╲\n   ╱▓▓▓▓▓╲\n  │▓▓▓▓▓▓▓│\n  └───────┘",
}

type tickMsg time.Time

// WelcomeScreen animates an hourglass, then waits for a key before
// handing over to the next screen.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that is replaced by next() on the first key.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Replace(w.next())
}

func (w *WelcomeScreen) frame() string {
	// Drain once over the animation, then flip every few ticks.
	n := len(hourglassFrames)
	if w.elapsed < totalDur {
		return hourglassFrames[int(w.elapsed)*n/int(totalDur)]
	}
	return hourglassFrames[(w.tickCount/8)%n]
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Accent).Render(w.frame()),
	}

	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render("A Magic Library Adventure"),
		)
	}
	if w.elapsed >= totalDur {
		sections = append(sections,
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
