package store

import (
	"context"
	"time"
)

// QueryOpts configures history queries with filtering and pagination.
type QueryOpts struct {
	Username string    // exact match, empty = all users
	Limit    int       // max results (0 = unlimited)
	After    int64     // sequence > After
	Before   int64     // sequence < Before
	From     time.Time // timestamp >= From
	To       time.Time // timestamp <= To
}

// SessionRecord is one finished quiz session.
type SessionRecord struct {
	ID           string // assigned by RecordSession when empty
	Sequence     int64  // assigned by RecordSession
	Username     string
	Source       string // question provider, e.g. "opentdb" or "llm"
	Category     string
	Difficulty   string
	QuestionType string
	TimeLimit    int
	Score        int
	Total        int
	StartedAt    time.Time
	FinishedAt   time.Time
	Answers      []AnswerRecord
}

// AnswerRecord is one resolved question within a session.
type AnswerRecord struct {
	Number        int
	Prompt        string
	CorrectAnswer string
	Selected      string
	Outcome       string
	Correct       bool
	ElapsedMs     int64
}

// UserStats aggregates a user's play history.
type UserStats struct {
	Username   string
	Sessions   int
	Questions  int
	Correct    int
	BestScore  int
	LastPlayed time.Time
}

// Accuracy returns the share of correctly answered questions in [0,1].
func (u UserStats) Accuracy() float64 {
	if u.Questions == 0 {
		return 0
	}
	return float64(u.Correct) / float64(u.Questions)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	LLMRequestEventData
	ID        int64
	Sequence  int64
	Timestamp time.Time
}

// ModelUsage aggregates LLM calls per provider and model.
type ModelUsage struct {
	Provider     string
	Model        string
	Calls        int
	Failures     int
	InputTokens  int64
	OutputTokens int64
	AvgLatencyMs float64
}

// HistoryRepo records and queries play sessions.
type HistoryRepo interface {
	RecordSession(ctx context.Context, rec *SessionRecord) error
	RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error)
	UserStats(ctx context.Context, username string) (UserStats, error)
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

var (
	_ HistoryRepo = (*Store)(nil)
	_ EventRepo   = (*Store)(nil)
)

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
