package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var sessionColumns = []string{
	"id", "sequence", "username", "source", "category", "difficulty",
	"question_type", "time_limit", "score", "total", "started_at", "finished_at",
}

// RecordSession stores a finished session and its answers in one
// transaction. rec.ID and rec.Sequence are filled in.
func (s *Store) RecordSession(ctx context.Context, rec *SessionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.FinishedAt.IsZero() {
		rec.FinishedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session tx: %w", err)
	}
	defer tx.Rollback()

	seq, err := s.seq.Next(ctx, tx)
	if err != nil {
		return err
	}
	rec.Sequence = seq

	query, args := builder().Insert("sessions").
		Columns(sessionColumns...).
		Values(rec.ID, rec.Sequence, rec.Username, rec.Source, rec.Category, rec.Difficulty,
			rec.QuestionType, rec.TimeLimit, rec.Score, rec.Total,
			toMillis(rec.StartedAt), toMillis(rec.FinishedAt)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if len(rec.Answers) > 0 {
		ins := builder().Insert("answers").
			Columns("session_id", "number", "prompt", "correct_answer", "selected", "outcome", "correct", "elapsed_ms")
		for _, a := range rec.Answers {
			ins.Values(rec.ID, a.Number, a.Prompt, a.CorrectAnswer, a.Selected, a.Outcome, boolInt(a.Correct), a.ElapsedMs)
		}
		query, args := ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save answers: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

// RecentSessions returns sessions newest first, without answers.
func (s *Store) RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error) {
	t := builder().Table("sessions")
	sel := builder().Select(sessionColumns...).From(t).OrderBy(entsql.Desc("sequence"))
	applyOpts(sel, "finished_at", opts)

	query, args := sel.Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			r                 SessionRecord
			started, finished int64
		)
		if err := rows.Scan(&r.ID, &r.Sequence, &r.Username, &r.Source, &r.Category, &r.Difficulty,
			&r.QuestionType, &r.TimeLimit, &r.Score, &r.Total, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		r.StartedAt = fromMillis(started)
		r.FinishedAt = fromMillis(finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// SessionAnswers returns the answers of one session in question order.
func (s *Store) SessionAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	query, args := builder().
		Select("number", "prompt", "correct_answer", "selected", "outcome", "correct", "elapsed_ms").
		From(builder().Table("answers")).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("number").
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerRecord
	for rows.Next() {
		var (
			a       AnswerRecord
			correct int
		)
		if err := rows.Scan(&a.Number, &a.Prompt, &a.CorrectAnswer, &a.Selected, &a.Outcome, &correct, &a.ElapsedMs); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		a.Correct = correct != 0
		out = append(out, a)
	}
	return out, rows.Err()
}

// UserStats aggregates every recorded session of username. A user with no
// history gets zero stats.
func (s *Store) UserStats(ctx context.Context, username string) (UserStats, error) {
	query, args := builder().
		Select(
			entsql.Count("*"),
			"COALESCE("+entsql.Sum("total")+", 0)",
			"COALESCE("+entsql.Sum("score")+", 0)",
			"COALESCE("+entsql.Max("score")+", 0)",
			"COALESCE("+entsql.Max("finished_at")+", 0)",
		).
		From(builder().Table("sessions")).
		Where(entsql.EQ("username", username)).
		Query()

	st := UserStats{Username: username}
	var last int64
	err := s.db.QueryRowContext(ctx, query, args...).
		Scan(&st.Sessions, &st.Questions, &st.Correct, &st.BestScore, &last)
	if err != nil && err != sql.ErrNoRows {
		return UserStats{}, fmt.Errorf("query user stats: %w", err)
	}
	st.LastPlayed = fromMillis(last)
	return st, nil
}

// applyOpts adds the QueryOpts filters to sel. tsCol is the table's
// timestamp column.
func applyOpts(sel *entsql.Selector, tsCol string, opts QueryOpts) {
	if opts.Username != "" {
		sel.Where(entsql.EQ("username", opts.Username))
	}
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(tsCol, toMillis(opts.From)))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(tsCol, toMillis(opts.To)))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
