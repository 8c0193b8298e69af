// Package leaderboard ranks every known player by total score.
package leaderboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/timetick/internal/profile"
	"github.com/abhisek/timetick/internal/router"
	"github.com/abhisek/timetick/internal/screen"
	"github.com/abhisek/timetick/internal/ui/components"
	"github.com/abhisek/timetick/internal/ui/layout"
	"github.com/abhisek/timetick/internal/ui/theme"
)

// Ranker supplies leaderboard rows, best first.
type Ranker interface {
	Leaderboard() []profile.Entry
}

// maxRows caps the table; the current player is appended below when
// ranked further down.
const maxRows = 10

// LeaderboardScreen shows the top players.
type LeaderboardScreen struct {
	ranker   Ranker
	username string
	entries  []profile.Entry
}

var _ screen.Screen = (*LeaderboardScreen)(nil)
var _ screen.KeyHintProvider = (*LeaderboardScreen)(nil)

func New(ranker Ranker, username string) *LeaderboardScreen {
	return &LeaderboardScreen{ranker: ranker, username: username}
}

// Init snapshots the ranking; scores only change while playing.
func (s *LeaderboardScreen) Init() tea.Cmd {
	s.entries = s.ranker.Leaderboard()
	return nil
}

func (s *LeaderboardScreen) Title() string {
	return "Leaderboard"
}

func (s *LeaderboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *LeaderboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "enter":
			return s, router.Pop
		}
	}
	return s, nil
}

func (s *LeaderboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if len(s.entries) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Nobody has played yet."))
	}

	var rows []string
	for i, e := range s.entries {
		if i >= maxRows && e.Username != s.username {
			continue
		}
		if i >= maxRows {
			rows = append(rows, theme.Hint.Render("…"))
		}
		rows = append(rows, s.row(i+1, e, cw-8))
	}

	body := theme.Title.Render("Hall of Fame") + "\n\n" + strings.Join(rows, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(body, cw))
}

func (s *LeaderboardScreen) row(rank int, e profile.Entry, w int) string {
	medal := "  "
	switch rank {
	case 1:
		medal = "🥇"
	case 2:
		medal = "🥈"
	case 3:
		medal = "🥉"
	}
	name := e.Username
	nameW := max(w-16, 4)
	if r := []rune(name); len(r) > nameW {
		name = string(r[:nameW-1]) + "…"
	}
	line := fmt.Sprintf("%s %3d. %-*s %6d", medal, rank, nameW, name, e.Score)

	if e.Username == s.username {
		return theme.Selected.Render(line)
	}
	return theme.Body.Render(line)
}
