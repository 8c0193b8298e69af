// Package history lists a player's past sessions.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/timetick/internal/router"
	"github.com/abhisek/timetick/internal/screen"
	"github.com/abhisek/timetick/internal/store"
	"github.com/abhisek/timetick/internal/ui/layout"
	"github.com/abhisek/timetick/internal/ui/theme"
)

// sessionLimit bounds how many sessions are loaded.
const sessionLimit = 50

// Repo is the part of the history store this screen reads.
type Repo interface {
	RecentSessions(ctx context.Context, opts store.QueryOpts) ([]store.SessionRecord, error)
	SessionAnswers(ctx context.Context, sessionID string) ([]store.AnswerRecord, error)
	UserStats(ctx context.Context, username string) (store.UserStats, error)
}

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Stats    store.UserStats
	Err      error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerRecord
	Err       error
}

// HistoryScreen displays past sessions. Enter expands a session into
// its answers.
type HistoryScreen struct {
	repo     Repo
	username string
	sessions []store.SessionRecord
	stats    store.UserStats
	answers  map[string][]store.AnswerRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen for username.
func New(repo Repo, username string) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		username: username,
		answers:  make(map[string][]store.AnswerRecord),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, user := s.repo, s.username
	return func() tea.Msg {
		ctx := context.Background()
		sessions, err := repo.RecentSessions(ctx, store.QueryOpts{Username: user, Limit: sessionLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := repo.UserStats(ctx, user)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Sessions: sessions, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err == nil {
			s.answers[msg.SessionID] = msg.Answers
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			return s, s.toggle()
		}
	}
	return s, nil
}

// toggle expands or collapses the selected session, loading its answers
// the first time.
func (s *HistoryScreen) toggle() tea.Cmd {
	if s.selected >= len(s.sessions) {
		return nil
	}
	s.expanded[s.selected] = !s.expanded[s.selected]

	id := s.sessions[s.selected].ID
	if _, ok := s.answers[id]; ok || !s.expanded[s.selected] {
		return nil
	}
	repo := s.repo
	return func() tea.Msg {
		answers, err := repo.SessionAnswers(context.Background(), id)
		return answersLoadedMsg{SessionID: id, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  No sessions yet. Start a quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")
	st := s.stats
	b.WriteString(center.Foreground(theme.Highlight).Bold(true).Render(fmt.Sprintf(
		"%d sessions  ·  %d/%d correct (%.0f%%)  ·  best %d",
		st.Sessions, st.Correct, st.Questions, st.Accuracy()*100, st.BestScore)))
	b.WriteString("\n\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		d := sess.FinishedAt.Sub(sess.StartedAt)
		line := fmt.Sprintf("%s%s  %-22s %-6s %2d/%-2d  %d:%02d",
			prefix, sess.StartedAt.Local().Format("Jan 02 15:04"), truncate(sess.Category, 22),
			sess.Difficulty, sess.Score, sess.Total, int(d.Minutes()), int(d.Seconds())%60)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Highlight).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAnswers(sess.ID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAnswers(id string, width int) string {
	answers, ok := s.answers[id]
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    Loading...")) + "\n"
	}

	var b strings.Builder
	for _, a := range answers {
		var line string
		switch {
		case a.Correct:
			line = theme.Correct.Render("✓ ") + truncate(a.Prompt, 50)
		case a.Outcome == "timed_out":
			line = lipgloss.NewStyle().Foreground(theme.Accent).Render("⌛ ") + truncate(a.Prompt, 50) +
				dim.Render("  → "+a.CorrectAnswer)
		default:
			line = theme.Incorrect.Render("✗ ") + truncate(a.Prompt, 50) +
				dim.Render(fmt.Sprintf("  %s → %s", a.Selected, a.CorrectAnswer))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
