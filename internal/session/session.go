// Package session ties a question source, the quiz driver, the profile
// file and the history database into one playable session. Both front
// ends go through Service.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/timetick/internal/config"
	"github.com/abhisek/timetick/internal/profile"
	"github.com/abhisek/timetick/internal/quiz"
	"github.com/abhisek/timetick/internal/store"
	"github.com/abhisek/timetick/internal/trivia"
)

// ErrStart is returned when no question set could be obtained.
var ErrStart = errors.New("could not start the quiz")

// StartFailedMessage is what front ends show for ErrStart.
const StartFailedMessage = "Could not start the quiz. Please try different settings."

// Service runs sessions. Provider and Profiles are required; History is
// optional.
type Service struct {
	Provider trivia.Provider
	Profiles *profile.Store
	History  store.HistoryRepo

	// Source names the provider in history records.
	Source string
}

// Settings is one session's configuration.
type Settings struct {
	config.QuizSettings

	// CategoryName is shown in summaries and history.
	CategoryName string
}

// Prepare fetches the questions for s. Any provider failure is reported
// as ErrStart wrapping the cause.
func (svc *Service) Prepare(ctx context.Context, s Settings) ([]trivia.Question, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	questions, err := svc.Provider.Fetch(ctx, s.Params())
	if err != nil {
		slog.Warn("fetch questions failed", "error", err, "amount", s.Amount, "category", s.Category)
		return nil, fmt.Errorf("%w: %w", ErrStart, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrStart, trivia.ErrNoResults)
	}
	return questions, nil
}

// Run plays questions for username and persists the outcome. Profile and
// history write failures land in the Summary instead of failing the call;
// the session itself already happened.
func (svc *Service) Run(ctx context.Context, username string, s Settings, questions []trivia.Question,
	in quiz.Input, opts ...quiz.DriverOption) (*Summary, error) {

	p, _, err := svc.Profiles.Profile(username)
	if err != nil {
		return nil, err
	}
	before := p.Score

	d, err := quiz.NewDriver(quiz.Config{
		TimeLimit: s.TimeLimit,
		Interlude: s.Interlude,
	}, in, opts...)
	if err != nil {
		return nil, err
	}

	res, err := d.Run(ctx, questions, p)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		Username:      p.Username,
		Settings:      s,
		Result:        res,
		PreviousTotal: before,
		NewTotal:      p.Score,
	}

	if err := svc.Profiles.Save(p); err != nil {
		slog.Error("save profile", "user", p.Username, "error", err)
		sum.SaveErr = err
	}

	if svc.History != nil {
		rec := historyRecord(p.Username, svc.Source, s, res)
		if err := svc.History.RecordSession(ctx, rec); err != nil {
			slog.Warn("record session history", "user", p.Username, "error", err)
			sum.HistoryErr = err
		} else {
			sum.SessionID = rec.ID
		}
	}

	return sum, nil
}

// Play is Prepare followed by Run.
func (svc *Service) Play(ctx context.Context, username string, s Settings, in quiz.Input,
	opts ...quiz.DriverOption) (*Summary, error) {

	questions, err := svc.Prepare(ctx, s)
	if err != nil {
		return nil, err
	}
	return svc.Run(ctx, username, s, questions, in, opts...)
}

func historyRecord(username, source string, s Settings, res *quiz.Result) *store.SessionRecord {
	rec := &store.SessionRecord{
		Username:     username,
		Source:       source,
		Category:     s.CategoryName,
		Difficulty:   string(s.Difficulty),
		QuestionType: string(s.Type),
		TimeLimit:    s.TimeLimit,
		Score:        res.Score,
		Total:        res.Total,
		StartedAt:    res.StartedAt,
		FinishedAt:   res.FinishedAt,
		Answers:      make([]store.AnswerRecord, 0, len(res.Answers)),
	}
	for _, a := range res.Answers {
		rec.Answers = append(rec.Answers, store.AnswerRecord{
			Number:        a.Number,
			Prompt:        a.Prompt,
			CorrectAnswer: a.CorrectAnswer,
			Selected:      a.Selected,
			Outcome:       a.Outcome.String(),
			Correct:       a.Correct,
			ElapsedMs:     a.Elapsed.Milliseconds(),
		})
	}
	return rec
}

// Summary is what the player sees after a session.
type Summary struct {
	Username      string
	SessionID     string
	Settings      Settings
	Result        *quiz.Result
	PreviousTotal int
	NewTotal      int

	SaveErr    error
	HistoryErr error
}

// Accuracy is the share of correct answers in [0,1].
func (s *Summary) Accuracy() float64 {
	if s.Result == nil || s.Result.Total == 0 {
		return 0
	}
	return float64(s.Result.Score) / float64(s.Result.Total)
}

// Duration is the wall time from the first question to the last verdict.
func (s *Summary) Duration() time.Duration {
	if s.Result == nil {
		return 0
	}
	return s.Result.FinishedAt.Sub(s.Result.StartedAt)
}
