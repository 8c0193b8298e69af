// Package config loads timetick settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/timetick/internal/store"
	"github.com/abhisek/timetick/internal/trivia"
)

// Quiz setting bounds.
const (
	MinTimeLimit = 10
	MaxTimeLimit = 30
)

// Question sources.
const (
	SourceOpenTDB = "opentdb"
	SourceLLM     = "llm"
)

// Config is the full application configuration.
type Config struct {
	// User preselects the player name; empty asks for it.
	User string `yaml:"user"`

	// ProfilesPath is the JSON profile file. Default:
	// $XDG_DATA_HOME/timetick/profiles.json.
	ProfilesPath string `yaml:"profiles"`

	// DBPath is the SQLite history database. Default:
	// $XDG_DATA_HOME/timetick/timetick.db.
	DBPath string `yaml:"db"`

	// LogPath enables debug logging to a file when set.
	LogPath string `yaml:"log"`

	Trivia TriviaConfig `yaml:"trivia"`
	Quiz   QuizSettings `yaml:"quiz"`
}

// TriviaConfig selects and configures the question source.
type TriviaConfig struct {
	// Source is "opentdb" or "llm".
	Source  string        `yaml:"source"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// QuizSettings are the defaults offered when a session is set up.
type QuizSettings struct {
	Amount     int                 `yaml:"amount"`
	TimeLimit  int                 `yaml:"time_limit"`
	Category   int                 `yaml:"category"`
	Difficulty trivia.Difficulty   `yaml:"difficulty"`
	Type       trivia.QuestionType `yaml:"type"`

	// Interlude is the pause after each answer in the TUI.
	Interlude time.Duration `yaml:"interlude"`
}

// Default returns the built-in configuration. Paths are left empty and
// resolved by Resolve.
func Default() Config {
	return Config{
		Trivia: TriviaConfig{
			Source:  SourceOpenTDB,
			BaseURL: trivia.DefaultBaseURL,
			Timeout: 10 * time.Second,
		},
		Quiz: DefaultQuizSettings(),
	}
}

// DefaultQuizSettings returns 5 medium multiple-choice General Knowledge
// questions with 15 seconds each.
func DefaultQuizSettings() QuizSettings {
	return QuizSettings{
		Amount:     5,
		TimeLimit:  15,
		Category:   trivia.DefaultCategory.ID,
		Difficulty: trivia.DifficultyMedium,
		Type:       trivia.TypeMultiple,
		Interlude:  1500 * time.Millisecond,
	}
}

// DefaultPath resolves the config file location in priority order:
// 1. TIMETICK_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/timetick/config.yaml
// 3. ~/.config/timetick/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("TIMETICK_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "timetick", "config.yaml"), nil
}

// Load reads path over the defaults and then applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("open config: %w", err)
	default:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overrides fields from TIMETICK_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("TIMETICK_USER"); v != "" {
		c.User = v
	}
	if v := os.Getenv("TIMETICK_PROFILES"); v != "" {
		c.ProfilesPath = v
	}
	if v := os.Getenv("TIMETICK_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TIMETICK_LOG"); v != "" {
		c.LogPath = v
	}
	if v := os.Getenv("TIMETICK_API_URL"); v != "" {
		c.Trivia.BaseURL = v
	}
	if v := os.Getenv("TIMETICK_SOURCE"); v != "" {
		c.Trivia.Source = v
	}
	if v := os.Getenv("TIMETICK_TIME_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TIMETICK_TIME_LIMIT: %w", err)
		}
		c.Quiz.TimeLimit = n
	}
	return nil
}

// Resolve fills in default data paths.
func (c *Config) Resolve() error {
	if c.ProfilesPath != "" && c.DBPath != "" {
		return nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return err
	}
	if c.ProfilesPath == "" {
		c.ProfilesPath = filepath.Join(dir, "profiles.json")
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dir, "timetick.db")
	}
	return nil
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	switch c.Trivia.Source {
	case SourceOpenTDB, SourceLLM:
	default:
		return fmt.Errorf("unknown question source %q (want %s or %s)", c.Trivia.Source, SourceOpenTDB, SourceLLM)
	}
	if c.Trivia.Timeout < 0 {
		return errors.New("trivia timeout must not be negative")
	}
	return c.Quiz.Validate()
}

// Validate checks amount, time limit and the enum fields.
func (q QuizSettings) Validate() error {
	if q.Amount < trivia.MinAmount || q.Amount > trivia.MaxAmount {
		return fmt.Errorf("amount must be between %d and %d, got %d", trivia.MinAmount, trivia.MaxAmount, q.Amount)
	}
	if q.TimeLimit < MinTimeLimit || q.TimeLimit > MaxTimeLimit {
		return fmt.Errorf("time limit must be between %d and %d seconds, got %d", MinTimeLimit, MaxTimeLimit, q.TimeLimit)
	}
	if !trivia.ValidDifficulty(string(q.Difficulty)) {
		return fmt.Errorf("unknown difficulty %q", q.Difficulty)
	}
	if !trivia.ValidQuestionType(string(q.Type)) {
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	if q.Interlude < 0 {
		return errors.New("interlude must not be negative")
	}
	return nil
}

// Params converts the settings into a trivia request.
func (q QuizSettings) Params() trivia.Params {
	return trivia.Params{
		Amount:     q.Amount,
		Category:   q.Category,
		Difficulty: q.Difficulty,
		Type:       q.Type,
	}
}
