// Package setup is the quiz settings form shown before every session.
package setup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/timetick/internal/config"
	"github.com/abhisek/timetick/internal/router"
	"github.com/abhisek/timetick/internal/screen"
	"github.com/abhisek/timetick/internal/session"
	"github.com/abhisek/timetick/internal/trivia"
	"github.com/abhisek/timetick/internal/ui/components"
	"github.com/abhisek/timetick/internal/ui/layout"
	"github.com/abhisek/timetick/internal/ui/theme"
)

// Form rows, top to bottom.
const (
	fieldAmount = iota
	fieldTime
	fieldCategory
	fieldDifficulty
	fieldType
	fieldCount
)

// StartFunc builds the screen that plays the fetched questions.
type StartFunc func(s session.Settings, questions []trivia.Question) screen.Screen

type categoriesMsg struct {
	cats []trivia.Category
	err  error
}

type preparedMsg struct {
	settings  session.Settings
	questions []trivia.Question
	err       error
}

// SetupScreen lets the player pick the session settings and fetches the
// questions.
type SetupScreen struct {
	svc     *session.Service
	lister  trivia.CategoryLister
	start   StartFunc
	values  config.QuizSettings
	cats    []trivia.Category
	catIdx  int
	field   int
	loading bool
	note    string

	fetching bool
	cancel   context.CancelFunc
	errMsg   string
	errCause string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)
var _ screen.Closer = (*SetupScreen)(nil)

// New creates a SetupScreen seeded with defaults. lister may be nil.
func New(svc *session.Service, lister trivia.CategoryLister, defaults config.QuizSettings, start StartFunc) *SetupScreen {
	return &SetupScreen{
		svc:     svc,
		lister:  lister,
		start:   start,
		values:  defaults,
		cats:    trivia.DefaultCategories(),
		loading: lister != nil,
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	if s.lister == nil {
		return nil
	}
	lister := s.lister
	return func() tea.Msg {
		cats, err := lister.Categories(context.Background())
		return categoriesMsg{cats: cats, err: err}
	}
}

func (s *SetupScreen) Title() string {
	return "Set up your quiz"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.fetching {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case categoriesMsg:
		s.loading = false
		if msg.err != nil || len(msg.cats) == 0 {
			slog.Warn("fetch categories failed", "error", msg.err)
			s.note = "Could not fetch categories. Using defaults."
			return s, nil
		}
		s.cats = msg.cats
		s.catIdx = 0
		for i, c := range s.cats {
			if c.ID == s.values.Category {
				s.catIdx = i
			}
		}
		return s, nil

	case preparedMsg:
		s.fetching = false
		s.cancel = nil
		if msg.err != nil {
			s.errMsg = session.StartFailedMessage
			s.errCause = msg.err.Error()
			return s, nil
		}
		next := s.start(msg.settings, msg.questions)
		return s, router.Replace(next)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// Close stops an in-flight question fetch.
func (s *SetupScreen) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.fetching {
		if key == "esc" && s.cancel != nil {
			s.cancel()
		}
		return s, nil
	}

	switch key {
	case "esc":
		return s, router.Pop
	case "up", "k", "shift+tab":
		s.field = (s.field + fieldCount - 1) % fieldCount
	case "down", "j", "tab":
		s.field = (s.field + 1) % fieldCount
	case "left", "h":
		s.adjust(-1)
	case "right", "l":
		s.adjust(1)
	case "enter":
		return s, s.fetch()
	}
	return s, nil
}

// adjust steps the focused field by delta, clamping numbers and
// wrapping enums.
func (s *SetupScreen) adjust(delta int) {
	s.errMsg, s.errCause = "", ""
	switch s.field {
	case fieldAmount:
		s.values.Amount = clamp(s.values.Amount+delta, trivia.MinAmount, trivia.MaxAmount)
	case fieldTime:
		s.values.TimeLimit = clamp(s.values.TimeLimit+delta, config.MinTimeLimit, config.MaxTimeLimit)
	case fieldCategory:
		s.catIdx = wrap(s.catIdx+delta, len(s.cats))
	case fieldDifficulty:
		s.values.Difficulty = step(trivia.Difficulties, s.values.Difficulty, delta)
	case fieldType:
		s.values.Type = step(trivia.QuestionTypes, s.values.Type, delta)
	}
}

// Settings returns the settings currently selected in the form.
func (s *SetupScreen) Settings() session.Settings {
	v := s.values
	cat := s.cats[s.catIdx]
	v.Category = cat.ID
	return session.Settings{QuizSettings: v, CategoryName: cat.Name}
}

func (s *SetupScreen) fetch() tea.Cmd {
	settings := s.Settings()
	if err := settings.Validate(); err != nil {
		s.errMsg = err.Error()
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.fetching = true
	s.cancel = cancel
	s.errMsg, s.errCause = "", ""

	svc := s.svc
	return func() tea.Msg {
		defer cancel()
		qs, err := svc.Prepare(ctx, settings)
		return preparedMsg{settings: settings, questions: qs, err: err}
	}
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	settings := s.Settings()
	rows := []struct{ label, value string }{
		{"Questions", fmt.Sprintf("%d", settings.Amount)},
		{"Seconds per question", fmt.Sprintf("%d", settings.TimeLimit)},
		{"Category", settings.CategoryName},
		{"Difficulty", string(settings.Difficulty)},
		{"Question type", string(settings.Type)},
	}

	var b strings.Builder
	for i, r := range rows {
		label := lipgloss.NewStyle().Width(22).Foreground(theme.TextDim).Render(r.label)
		value := "  " + r.value + "  "
		if i == s.field && !s.fetching {
			value = theme.Selected.Render("◂ " + r.value + " ▸")
		} else {
			value = theme.Unselected.Render(value)
		}
		b.WriteString(label + value)
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}

	sections := []string{
		theme.Title.Width(cw).Render("Let's set up your quiz!"),
		components.Card(b.String(), cw),
	}

	switch {
	case s.fetching:
		sections = append(sections, theme.Correct.Render("Fetching questions from the magic book..."))
	case s.errMsg != "":
		errLines := theme.Incorrect.Render(s.errMsg)
		if s.errCause != "" {
			errLines += "\n" + theme.Hint.Render(s.errCause)
		}
		sections = append(sections, errLines)
	case s.loading:
		sections = append(sections, theme.Hint.Render("Loading categories..."))
	case s.note != "":
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Accent).Render(s.note))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func step[T comparable](vals []T, cur T, delta int) T {
	for i, v := range vals {
		if v == cur {
			return vals[wrap(i+delta, len(vals))]
		}
	}
	return vals[0]
}
