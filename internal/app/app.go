// Package app is the root Bubble Tea model of the TUI front end.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/timetick/internal/router"
	"github.com/abhisek/timetick/internal/screen"
	"github.com/abhisek/timetick/internal/screens/home"
	"github.com/abhisek/timetick/internal/screens/login"
	"github.com/abhisek/timetick/internal/screens/welcome"
	"github.com/abhisek/timetick/internal/ui/layout"
)

// Options configures the TUI. Home.Username, when set, skips the login
// screen.
type Options struct {
	Home home.Options

	// SkipSplash starts directly at login or home.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	opts     Options
	username string
	width    int
	height   int
}

// newAppModel builds the screen stack: splash, then login unless a user
// is preset, then home.
func newAppModel(opts Options) AppModel {
	m := AppModel{opts: opts, username: opts.Home.Username}

	homeFor := func(username string) screen.Screen {
		ho := opts.Home
		ho.Username = username
		return home.New(ho)
	}

	first := func() screen.Screen {
		if m.username != "" {
			return homeFor(m.username)
		}
		return login.New(homeFor)
	}

	if opts.SkipSplash {
		m.router = router.New(first())
	} else {
		m.router = router.New(welcome.New(first))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case login.LoggedInMsg:
		m.username = msg.Username
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.router.CloseAll()
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()

	var score int
	if m.username != "" && m.opts.Home.Service != nil {
		score, _ = m.opts.Home.Service.Profiles.Score(m.username)
	}
	header := layout.RenderHeader(active.Title(), m.username, score, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else {
		footerHints = []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
