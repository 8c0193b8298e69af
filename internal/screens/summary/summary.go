// Package summary shows the result of a finished session.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/timetick/internal/quiz"
	"github.com/abhisek/timetick/internal/router"
	"github.com/abhisek/timetick/internal/screen"
	"github.com/abhisek/timetick/internal/session"
	"github.com/abhisek/timetick/internal/ui/components"
	"github.com/abhisek/timetick/internal/ui/layout"
	"github.com/abhisek/timetick/internal/ui/theme"
)

const (
	buttonAgain = iota
	buttonHome
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.Summary
	again   func() screen.Screen
	buttons components.ButtonRow
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. again builds a fresh setup screen for
// "Play again".
func New(summary *session.Summary, again func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{
		summary: summary,
		again:   again,
		buttons: components.NewButtonRow("Play again", "Home"),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→ Enter", Description: "Choose"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h":
		s.buttons = s.buttons.Move(-1)
	case "right", "l", "tab":
		s.buttons = s.buttons.Move(1)
	case "esc":
		return s, router.Pop
	case "enter":
		if s.buttons.Focused == buttonAgain && s.again != nil {
			next := s.again()
			return s, router.Replace(next)
		}
		return s, router.Pop
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil || sum.Result == nil {
		return ""
	}
	cw := components.ContentWidth(width)
	res := sum.Result

	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var sections []string
	sections = append(sections,
		theme.Title.Width(cw).Render("Quiz finished!"),
		center.Render(fmt.Sprintf("You scored %s in this session.",
			theme.Selected.Render(fmt.Sprintf("%d/%d", res.Score, res.Total)))),
	)

	d := sum.Duration()
	stats := fmt.Sprintf("Accuracy: %.0f%%     Time: %d:%02d     Total: %d → %s",
		sum.Accuracy()*100, int(d.Minutes()), int(d.Seconds())%60,
		sum.PreviousTotal, theme.Selected.Render(fmt.Sprint(sum.NewTotal)))
	sections = append(sections, center.Foreground(theme.TextDim).Render(stats))

	sections = append(sections, components.Card(renderAnswers(res.Answers, cw-6), cw))

	if sum.SaveErr != nil {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).
			Render("Your score could not be saved: "+sum.SaveErr.Error()))
	}
	if sum.HistoryErr != nil {
		sections = append(sections, theme.Hint.Render("This session was not added to your history."))
	}

	sections = append(sections, s.buttons.View())

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func renderAnswers(answers []quiz.AnswerRecord, w int) string {
	lines := make([]string, 0, len(answers))
	for _, a := range answers {
		var mark string
		switch {
		case a.Correct:
			mark = theme.Correct.Render("✓")
		case a.Outcome == quiz.TimedOut:
			mark = lipgloss.NewStyle().Foreground(theme.Accent).Render("⌛")
		default:
			mark = theme.Incorrect.Render("✗")
		}
		prompt := truncate(a.Prompt, w-6)
		lines = append(lines, fmt.Sprintf("%s %2d. %s", mark, a.Number, prompt))
	}
	return lipgloss.NewStyle().Align(lipgloss.Left).Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
