package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/timetick/internal/trivia"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TIMETICK_CONFIG", "TIMETICK_USER", "TIMETICK_PROFILES", "TIMETICK_DB",
		"TIMETICK_LOG", "TIMETICK_API_URL", "TIMETICK_SOURCE", "TIMETICK_TIME_LIMIT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
user: ann
trivia:
  timeout: 3s
quiz:
  amount: 10
  difficulty: hard
  interlude: 250ms
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ann", cfg.User)
	assert.Equal(t, 3*time.Second, cfg.Trivia.Timeout)
	assert.Equal(t, trivia.DefaultBaseURL, cfg.Trivia.BaseURL)
	assert.Equal(t, 10, cfg.Quiz.Amount)
	assert.Equal(t, trivia.DifficultyHard, cfg.Quiz.Difficulty)
	assert.Equal(t, 15, cfg.Quiz.TimeLimit)
	assert.Equal(t, 250*time.Millisecond, cfg.Quiz.Interlude)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("user: ann\ndb: /tmp/a.db\n"), 0o644))

	t.Setenv("TIMETICK_USER", "bob")
	t.Setenv("TIMETICK_API_URL", "http://localhost:1234/")
	t.Setenv("TIMETICK_TIME_LIMIT", "20")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bob", cfg.User)
	assert.Equal(t, "/tmp/a.db", cfg.DBPath)
	assert.Equal(t, "http://localhost:1234/", cfg.Trivia.BaseURL)
	assert.Equal(t, 20, cfg.Quiz.TimeLimit)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quiz: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)

	t.Setenv("TIMETICK_TIME_LIMIT", "soon")
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EmptyFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestDefaultPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "timetick", "config.yaml"), p)

	t.Setenv("TIMETICK_CONFIG", "/etc/tt.yaml")
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/tt.yaml", p)
}

func TestResolve(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	cfg := Default()
	cfg.DBPath = "/custom.db"
	require.NoError(t, cfg.Resolve())
	assert.Equal(t, filepath.Join("/data", "timetick", "profiles.json"), cfg.ProfilesPath)
	assert.Equal(t, "/custom.db", cfg.DBPath)
}

func TestQuizSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*QuizSettings)
		wantErr bool
	}{
		{"defaults", func(*QuizSettings) {}, false},
		{"max amount", func(q *QuizSettings) { q.Amount = 20 }, false},
		{"zero amount", func(q *QuizSettings) { q.Amount = 0 }, true},
		{"too many", func(q *QuizSettings) { q.Amount = 21 }, true},
		{"limit low", func(q *QuizSettings) { q.TimeLimit = 9 }, true},
		{"limit high", func(q *QuizSettings) { q.TimeLimit = 31 }, true},
		{"limit edge", func(q *QuizSettings) { q.TimeLimit = 30 }, false},
		{"bad difficulty", func(q *QuizSettings) { q.Difficulty = "insane" }, true},
		{"bad type", func(q *QuizSettings) { q.Type = "essay" }, true},
		{"boolean", func(q *QuizSettings) { q.Type = trivia.TypeBoolean }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := DefaultQuizSettings()
			tt.mutate(&q)
			err := q.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_Source(t *testing.T) {
	cfg := Default()
	cfg.Trivia.Source = "carrier-pigeon"
	assert.Error(t, cfg.Validate())

	cfg.Trivia.Source = SourceLLM
	assert.NoError(t, cfg.Validate())
}

func TestParams(t *testing.T) {
	p := DefaultQuizSettings().Params()
	assert.Equal(t, trivia.Params{Amount: 5, Category: 9, Difficulty: trivia.DifficultyMedium, Type: trivia.TypeMultiple}, p)
	assert.NoError(t, p.Validate())
}
