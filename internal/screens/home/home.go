// Package home is the main menu.
package home

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/timetick/internal/config"
	"github.com/abhisek/timetick/internal/quiz"
	"github.com/abhisek/timetick/internal/router"
	"github.com/abhisek/timetick/internal/screen"
	"github.com/abhisek/timetick/internal/screens/history"
	"github.com/abhisek/timetick/internal/screens/leaderboard"
	"github.com/abhisek/timetick/internal/screens/play"
	"github.com/abhisek/timetick/internal/screens/setup"
	"github.com/abhisek/timetick/internal/screens/summary"
	"github.com/abhisek/timetick/internal/session"
	"github.com/abhisek/timetick/internal/trivia"
	"github.com/abhisek/timetick/internal/ui/components"
	"github.com/abhisek/timetick/internal/ui/layout"
)

// updateCheckTimeout bounds the background release lookup.
const updateCheckTimeout = 5 * time.Second

// Options wires the home screen to the rest of the application.
type Options struct {
	Service    *session.Service
	Categories trivia.CategoryLister
	Defaults   config.QuizSettings
	Username   string

	// History backs the history screen. Nil disables the menu entry.
	History history.Repo

	// DriverOptions are passed to every session's driver.
	DriverOptions []quiz.DriverOption

	// CheckUpdate returns a newer release version, or "" when current.
	// Nil skips the check.
	CheckUpdate func(ctx context.Context) (string, error)
}

type updateCheckedMsg struct {
	latest string
}

type playerStats struct {
	Score    int
	Rank     int
	Players  int
	Sessions int
}

// HomeScreen is the main menu shown after login.
type HomeScreen struct {
	opts   Options
	menu   components.Menu
	latest string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen for opts.Username.
func New(opts Options) *HomeScreen {
	h := &HomeScreen{opts: opts}

	items := []components.MenuItem{
		{Label: "PLAY", Key: "p", Action: func() tea.Cmd {
			return router.Push(h.newSetup())
		}},
		{Label: "LEADERBOARD", Key: "l", Action: func() tea.Cmd {
			return router.Push(leaderboard.New(opts.Service.Profiles, opts.Username))
		}},
		{Label: "HISTORY", Key: "h", Disabled: opts.History == nil, Action: func() tea.Cmd {
			return router.Push(history.New(opts.History, opts.Username))
		}},
		{Label: "EXIT", Key: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

// newSetup builds the setup -> play -> summary chain. "Play again" on the
// summary starts a fresh chain in its place.
func (h *HomeScreen) newSetup() screen.Screen {
	o := h.opts
	summarize := func(sum *session.Summary) screen.Screen {
		return summary.New(sum, h.newSetup)
	}
	return setup.New(o.Service, o.Categories, o.Defaults, func(s session.Settings, qs []trivia.Question) screen.Screen {
		return play.New(o.Service, o.Username, s, qs, summarize, o.DriverOptions...)
	})
}

func (h *HomeScreen) Init() tea.Cmd {
	check := h.opts.CheckUpdate
	if check == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), updateCheckTimeout)
		defer cancel()
		latest, err := check(ctx)
		if err != nil {
			slog.Debug("update check failed", "error", err)
			return nil
		}
		return updateCheckedMsg{latest: latest}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "P L H", Description: "Shortcuts"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(updateCheckedMsg); ok {
		h.latest = m.latest
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// stats is read on every render so scores from a finished session show
// up as soon as the player returns here.
func (h *HomeScreen) stats() playerStats {
	st := playerStats{}
	board := h.opts.Service.Profiles.Leaderboard()
	st.Players = len(board)
	for i, e := range board {
		if e.Username == h.opts.Username {
			st.Score = e.Score
			st.Rank = i + 1
			break
		}
	}
	if h.opts.History != nil {
		us, err := h.opts.History.UserStats(context.Background(), h.opts.Username)
		if err == nil {
			st.Sessions = us.Sessions
		}
	}
	return st
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back the header and footer.
	compact := height+8 < 30 || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.stats(), cw, compact),
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(h.menu.View(22)),
	}
	if h.latest != "" {
		sections = append(sections, renderUpdateNote(h.latest, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
