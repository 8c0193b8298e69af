// Package login asks for the player name before anything else.
package login

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/timetick/internal/router"
	"github.com/abhisek/timetick/internal/screen"
	"github.com/abhisek/timetick/internal/ui/components"
	"github.com/abhisek/timetick/internal/ui/layout"
	"github.com/abhisek/timetick/internal/ui/theme"
)

// maxNameLen bounds the username input.
const maxNameLen = 32

// LoggedInMsg announces the chosen username to the app.
type LoggedInMsg struct {
	Username string
}

// LoginScreen collects a username and then replaces itself with the
// screen built by next.
type LoginScreen struct {
	input components.TextInput
	next  func(username string) screen.Screen
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen.
func New(next func(username string) screen.Screen) *LoginScreen {
	return &LoginScreen{
		input: components.NewTextInput("your name", maxNameLen),
		next:  next,
	}
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.input.Init()
}

func (l *LoginScreen) Title() string {
	return "Sign in"
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		name := l.input.Value()
		if name == "" {
			l.input.Err = "Please enter a username."
			return l, nil
		}
		return l, tea.Batch(
			func() tea.Msg { return LoggedInMsg{Username: name} },
			router.Replace(l.next(name)),
		)
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

func (l *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	title := theme.Title.Width(cw).Render("Welcome to TimeTick")
	sub := theme.Subtitle.Width(cw).Render("A Magic Library Adventure")
	prompt := lipgloss.NewStyle().Foreground(theme.Text).Render("Enter your username, recruit")

	card := components.Card(strings.Join([]string{prompt, "", l.input.View()}, "\n"), cw)
	return components.CabinetFrame(strings.Join([]string{title, sub, "", card}, "\n"), width, height)
}
