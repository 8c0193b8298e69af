package app

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/timetick/internal/config"
	"github.com/abhisek/timetick/internal/profile"
	"github.com/abhisek/timetick/internal/screens/home"
	"github.com/abhisek/timetick/internal/screens/login"
	"github.com/abhisek/timetick/internal/screens/welcome"
	"github.com/abhisek/timetick/internal/session"
	"github.com/abhisek/timetick/internal/trivia"
)

type noQuestions struct{}

func (noQuestions) Fetch(context.Context, trivia.Params) ([]trivia.Question, error) {
	return nil, trivia.ErrNoResults
}

func testOptions(t *testing.T, username string) Options {
	t.Helper()
	profiles, err := profile.Load(filepath.Join(t.TempDir(), "profiles.json"))
	require.NoError(t, err)
	require.NoError(t, profiles.SetScore("ann", 7))
	return Options{
		Home: home.Options{
			Service:  &session.Service{Provider: noQuestions{}, Profiles: profiles},
			Defaults: config.DefaultQuizSettings(),
			Username: username,
		},
		SkipSplash: true,
	}
}

func sized(m AppModel) AppModel {
	out, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return out.(AppModel)
}

func TestStartScreen(t *testing.T) {
	m := newAppModel(testOptions(t, ""))
	assert.IsType(t, &login.LoginScreen{}, m.router.Active())

	m = newAppModel(testOptions(t, "ann"))
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())

	opts := testOptions(t, "ann")
	opts.SkipSplash = false
	m = newAppModel(opts)
	assert.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())
}

func TestLoginSetsHeaderUser(t *testing.T) {
	m := sized(newAppModel(testOptions(t, "")))

	out, _ := m.Update(login.LoggedInMsg{Username: "ann"})
	m = out.(AppModel)
	assert.Equal(t, "ann", m.username)

	view := ansi.Strip(m.render())
	assert.Contains(t, view, "ann")
	assert.Contains(t, view, "★ 7")
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(testOptions(t, "ann"))
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTooSmall(t *testing.T) {
	m := newAppModel(testOptions(t, "ann"))
	out, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	view := out.(AppModel).render()
	assert.Contains(t, view, "does not fit")
}
