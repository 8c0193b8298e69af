package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	// A file per test keeps shared-cache memory databases from leaking
	// rows between tests.
	s, err := Open(filepath.Join(t.TempDir(), "timetick.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenMemory(t *testing.T) {
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	defer s.Close()
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"sessions", "answers", "llm_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx, nil)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func sampleSession(user string, score int) *SessionRecord {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &SessionRecord{
		Username:     user,
		Source:       "opentdb",
		Category:     "General Knowledge",
		Difficulty:   "medium",
		QuestionType: "multiple",
		TimeLimit:    15,
		Score:        score,
		Total:        2,
		StartedAt:    start,
		FinishedAt:   start.Add(30 * time.Second),
		Answers: []AnswerRecord{
			{Number: 1, Prompt: "2+2?", CorrectAnswer: "4", Selected: "4", Outcome: "answered", Correct: true, ElapsedMs: 1200},
			{Number: 2, Prompt: "Sky?", CorrectAnswer: "Blue", Outcome: "timed_out", ElapsedMs: 15000},
		},
	}
}

func TestRecordAndQuerySessions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := sampleSession("ann", 1)
	if err := s.RecordSession(ctx, first); err != nil {
		t.Fatalf("record: %v", err)
	}
	if first.ID == "" || first.Sequence == 0 {
		t.Fatalf("id/sequence not assigned: %+v", first)
	}
	if err := s.RecordSession(ctx, sampleSession("bob", 2)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.RecordSession(ctx, sampleSession("ann", 2)); err != nil {
		t.Fatalf("record: %v", err)
	}

	all, err := s.RecentSessions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].Sequence < all[1].Sequence {
		t.Errorf("sessions not newest first: %d, %d", all[0].Sequence, all[1].Sequence)
	}

	anns, err := s.RecentSessions(ctx, QueryOpts{Username: "ann", Limit: 1})
	if err != nil {
		t.Fatalf("recent ann: %v", err)
	}
	if len(anns) != 1 || anns[0].Score != 2 {
		t.Fatalf("ann latest = %+v", anns)
	}
	if !anns[0].StartedAt.Equal(first.StartedAt) {
		t.Errorf("started_at = %v, want %v", anns[0].StartedAt, first.StartedAt)
	}

	answers, err := s.SessionAnswers(ctx, first.ID)
	if err != nil {
		t.Fatalf("answers: %v", err)
	}
	if len(answers) != 2 || !answers[0].Correct || answers[1].Correct || answers[1].Outcome != "timed_out" {
		t.Errorf("answers = %+v", answers)
	}
}

func TestUserStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	empty, err := s.UserStats(ctx, "nobody")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if empty.Sessions != 0 || empty.Accuracy() != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	for _, score := range []int{1, 2} {
		if err := s.RecordSession(ctx, sampleSession("ann", score)); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	st, err := s.UserStats(ctx, "ann")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Sessions != 2 || st.Questions != 4 || st.Correct != 3 || st.BestScore != 2 {
		t.Errorf("stats = %+v", st)
	}
	if got := st.Accuracy(); got != 0.75 {
		t.Errorf("accuracy = %v, want 0.75", got)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude", Purpose: "trivia", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
		{Provider: "anthropic", Model: "claude", Purpose: "trivia", InputTokens: 80, OutputTokens: 0, LatencyMs: 100, ErrorMessage: "boom"},
		{Provider: "openai", Model: "gpt", Purpose: "trivia", InputTokens: 10, OutputTokens: 5, LatencyMs: 50, Success: true},
	}
	for _, e := range events {
		if err := s.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := s.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 || got[0].Provider != "openai" || got[1].ErrorMessage != "boom" {
		t.Errorf("events = %+v", got)
	}

	after, err := s.QueryLLMEvents(ctx, QueryOpts{After: got[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 {
		t.Errorf("after = %d events, want 1", len(after))
	}

	usage, err := s.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("usage rows = %d, want 2", len(usage))
	}
	u := usage[0]
	if u.Provider != "anthropic" || u.Calls != 2 || u.Failures != 1 || u.InputTokens != 180 || u.AvgLatencyMs != 150 {
		t.Errorf("usage[0] = %+v", u)
	}
}
