// Package play is the quiz screen. The session driver runs in a
// background goroutine; its progress reaches the screen as messages and
// key presses reach it through an answer channel.
package play

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/timetick/internal/quiz"
	"github.com/abhisek/timetick/internal/router"
	"github.com/abhisek/timetick/internal/screen"
	"github.com/abhisek/timetick/internal/session"
	"github.com/abhisek/timetick/internal/trivia"
	"github.com/abhisek/timetick/internal/ui/components"
	"github.com/abhisek/timetick/internal/ui/layout"
	"github.com/abhisek/timetick/internal/ui/theme"
)

// SummaryFunc builds the screen shown after a finished session.
type SummaryFunc func(sum *session.Summary) screen.Screen

// PlayScreen runs one session.
type PlayScreen struct {
	svc       *session.Service
	username  string
	settings  session.Settings
	questions []trivia.Question
	summary   SummaryFunc
	opts      []quiz.DriverOption

	bridge *bridge
	cancel context.CancelFunc

	view      *quiz.QuestionView
	choices   components.MultiChoice
	remaining int
	verdict   *quiz.Verdict
	score     int

	confirmQuit bool
	quitting    bool
	errMsg      string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.Closer = (*PlayScreen)(nil)

// New creates a PlayScreen for questions. opts are passed to the driver.
func New(svc *session.Service, username string, s session.Settings, questions []trivia.Question,
	summary SummaryFunc, opts ...quiz.DriverOption) *PlayScreen {
	return &PlayScreen{
		svc:       svc,
		username:  username,
		settings:  s,
		questions: questions,
		summary:   summary,
		opts:      opts,
	}
}

// Init starts the session goroutine.
func (p *PlayScreen) Init() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.bridge = newBridge(ctx)

	b := p.bridge
	opts := append(append([]quiz.DriverOption{}, p.opts...), quiz.WithPresenter(b))
	go func() {
		sum, err := p.svc.Run(ctx, p.username, p.settings, p.questions, b, opts...)
		b.finish(sum, err)
	}()

	return b.wait()
}

// Close abandons the session if it is still running.
func (p *PlayScreen) Close() {
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *PlayScreen) Title() string {
	return fmt.Sprintf("Quiz: %s", p.settings.CategoryName)
}

func (p *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case p.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case p.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: fmt.Sprintf("1-%d", max(len(p.choices.Options), 1)), Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Pick"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (p *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionStartedMsg:
		v := msg.view
		p.view = &v
		p.verdict = nil
		p.remaining = v.TimeLimit
		p.choices = components.NewMultiChoice(v.Choices)
		return p, p.bridge.wait()

	case tickMsg:
		if p.view != nil && msg.number == p.view.Number {
			p.remaining = msg.remaining
		}
		return p, p.bridge.wait()

	case resolvedMsg:
		v := msg.verdict
		p.verdict = &v
		p.score = v.Score
		p.choices = p.choices.Reveal(v.Selected, v.CorrectAnswer)
		return p, p.bridge.wait()

	case finishedMsg:
		return p.handleFinished(msg)

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *PlayScreen) handleFinished(msg finishedMsg) (screen.Screen, tea.Cmd) {
	p.cancel()
	if errors.Is(msg.err, context.Canceled) {
		return p, router.Pop
	}
	if msg.err != nil {
		p.errMsg = msg.err.Error()
		return p, nil
	}
	next := p.summary(msg.summary)
	return p, router.Replace(next)
}

func (p *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if p.errMsg != "" {
		return p, router.Pop
	}
	if p.quitting {
		return p, nil
	}

	if p.confirmQuit {
		switch key {
		case "y", "Y":
			p.quitting = true
			p.cancel()
		case "n", "N", "esc":
			p.confirmQuit = false
		}
		return p, nil
	}

	if key == "esc" {
		p.confirmQuit = true
		return p, nil
	}

	if p.view == nil || p.verdict != nil {
		return p, nil
	}

	switch key {
	case "up", "k":
		p.choices = p.choices.Move(-1)
	case "down", "j":
		p.choices = p.choices.Move(1)
	case "enter":
		p.submit(p.choices.Cursor)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(p.choices.Options) {
			p.submit(n - 1)
		}
	}
	return p, nil
}

func (p *PlayScreen) submit(i int) {
	p.choices = p.choices.Choose(i)
	p.bridge.offer(answer{number: p.view.Number, token: strconv.Itoa(i + 1)})
}

func (p *PlayScreen) View(width, height int) string {
	if p.errMsg != "" {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Render("\n\n" + theme.Incorrect.Render(p.errMsg))
	}
	if p.view == nil {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Render("\n\n" + theme.Hint.Render("Opening the magic book..."))
	}
	if p.confirmQuit {
		return renderQuitConfirm(width, height, p.quitting)
	}

	cw := components.ContentWidth(width)
	v := p.view

	info := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d/%d", v.Number, v.Total))
	score := theme.Selected.Render(fmt.Sprintf("Score %d", p.score))
	gap := max(cw-lipgloss.Width(info)-lipgloss.Width(score), 1)

	sections := []string{
		info + strings.Repeat(" ", gap) + score,
		components.Countdown{Remaining: p.remaining, Limit: v.TimeLimit, Width: cw}.View(),
		components.Card(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(v.Prompt), cw),
		lipgloss.NewStyle().Width(cw).Render(p.choices.View()),
	}
	if p.verdict != nil {
		sections = append(sections, renderVerdict(*p.verdict))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func renderVerdict(v quiz.Verdict) string {
	switch {
	case v.Correct:
		return theme.Correct.Render("Correct! You earned a point.")
	case v.Outcome.Kind == quiz.TimedOut:
		return theme.Incorrect.Render("Time's up!") + " The correct answer was: " + theme.Correct.Render(v.CorrectAnswer)
	default:
		return theme.Incorrect.Render("Sorry, that's incorrect.") + " The correct answer was: " + theme.Correct.Render(v.CorrectAnswer)
	}
}

func renderQuitConfirm(width, height int, quitting bool) string {
	body := theme.Title.Render("End this quiz?") + "\n\n" +
		theme.Body.Render("Your score for this session will not be counted.") + "\n\n" +
		theme.Hint.Render("Y to end, N to keep going")
	if quitting {
		body = theme.Hint.Render("Ending quiz...")
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
