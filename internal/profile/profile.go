// Package profile persists per-user cumulative scores in a JSON file.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrEmptyUsername is returned when a profile is requested without a name.
var ErrEmptyUsername = errors.New("username must not be empty")

// LoadError reports a profile file that exists but could not be used.
// The store is still returned, empty.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load profiles from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// record is the on-disk shape of one profile.
type record struct {
	Score int `json:"score"`
}

// Profile is one player's cumulative state. Mutate it through AddScore and
// persist with Store.Save.
type Profile struct {
	Username string
	Score    int
}

// AddScore adds points to the profile's cumulative score.
func (p *Profile) AddScore(points int) {
	p.Score += points
}

// Entry is one leaderboard row.
type Entry struct {
	Username string
	Score    int
}

// Store is the in-memory view of the profile file. It is safe for
// concurrent use.
type Store struct {
	path string

	mu      sync.Mutex
	records map[string]record
}

// Load reads the profile file at path. A missing file is created empty.
// A file that cannot be read or parsed yields an empty store together
// with a *LoadError; the store is usable in every case.
func Load(path string) (*Store, error) {
	s := &Store{path: path, records: make(map[string]record)}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := s.flush(s.records); err != nil {
			slog.Warn("create profile file", "path", path, "error", err)
		}
		return s, nil
	case err != nil:
		return s, &LoadError{Path: path, Err: err}
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return s, nil
	}

	var records map[string]record
	if err := json.Unmarshal(data, &records); err != nil {
		return s, &LoadError{Path: path, Err: err}
	}
	if records != nil {
		s.records = records
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Profile returns the profile for username. isNew is true when no record
// existed yet; the new profile has a zero score and is not persisted until
// Save.
func (s *Store) Profile(username string) (p *Profile, isNew bool, err error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, false, ErrEmptyUsername
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[username]
	return &Profile{Username: username, Score: rec.Score}, !ok, nil
}

// Score returns the stored score for username and whether it exists.
func (s *Store) Score(username string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[username]
	return rec.Score, ok
}

// SetScore overwrites the in-memory score for username without saving.
func (s *Store) SetScore(username string, score int) error {
	if strings.TrimSpace(username) == "" {
		return ErrEmptyUsername
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[username] = record{Score: score}
	return nil
}

// Save records p in memory and writes the full mapping to disk. The
// in-memory update stays even when the write fails.
func (s *Store) Save(p *Profile) error {
	if p == nil || strings.TrimSpace(p.Username) == "" {
		return ErrEmptyUsername
	}

	s.mu.Lock()
	s.records[p.Username] = record{Score: p.Score}
	snapshot := make(map[string]record, len(s.records))
	for k, v := range s.records {
		snapshot[k] = v
	}
	s.mu.Unlock()

	if err := s.flush(snapshot); err != nil {
		return fmt.Errorf("save profile %q: %w", p.Username, err)
	}
	return nil
}

// Leaderboard returns all profiles by descending score, ties by name.
func (s *Store) Leaderboard() []Entry {
	s.mu.Lock()
	entries := make([]Entry, 0, len(s.records))
	for name, rec := range s.records {
		entries = append(entries, Entry{Username: name, Score: rec.Score})
	}
	s.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Username < entries[j].Username
	})
	return entries
}

// flush writes records to a temp file in the same directory and renames it
// over the profile file.
func (s *Store) flush(records map[string]record) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".profiles-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace profile file: %w", err)
	}
	return nil
}
