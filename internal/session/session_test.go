package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/timetick/internal/config"
	"github.com/abhisek/timetick/internal/profile"
	"github.com/abhisek/timetick/internal/quiz"
	"github.com/abhisek/timetick/internal/store"
	"github.com/abhisek/timetick/internal/trivia"
)

type fakeProvider struct {
	questions []trivia.Question
	err       error
	calls     int
}

func (f *fakeProvider) Fetch(context.Context, trivia.Params) ([]trivia.Question, error) {
	f.calls++
	return f.questions, f.err
}

func questions() []trivia.Question {
	return []trivia.Question{
		{Prompt: "2+2?", CorrectAnswer: "4", Distractors: []string{"3", "5", "6"}, Type: trivia.TypeMultiple},
		{Prompt: "Sky?", CorrectAnswer: "Blue", Distractors: []string{"Red", "Green", "Pink"}, Type: trivia.TypeMultiple},
	}
}

// answerCorrectly picks the last token, which is the correct answer
// when options are not shuffled.
func answerCorrectly() quiz.Input {
	return quiz.InputFunc(func(_ context.Context, p quiz.Prompt) (string, bool) {
		return p.Tokens[len(p.Tokens)-1], true
	})
}

func settings() Settings {
	qs := config.DefaultQuizSettings()
	qs.Amount = 2
	qs.TimeLimit = 10
	qs.Interlude = 0
	return Settings{QuizSettings: qs, CategoryName: "General Knowledge"}
}

func noShuffle(int, func(i, j int)) {}

func newService(t *testing.T, p trivia.Provider) (*Service, *store.Store) {
	t.Helper()
	dir := t.TempDir()

	profiles, err := profile.Load(filepath.Join(dir, "profiles.json"))
	require.NoError(t, err)

	hist, err := store.Open(filepath.Join(dir, "timetick.db"))
	require.NoError(t, err)
	t.Cleanup(func() { hist.Close() })

	return &Service{Provider: p, Profiles: profiles, History: hist, Source: "test"}, hist
}

func TestPlay_PersistsProfileAndHistory(t *testing.T) {
	prov := &fakeProvider{questions: questions()}
	svc, hist := newService(t, prov)
	require.NoError(t, svc.Profiles.SetScore("ann", 5))

	sum, err := svc.Play(context.Background(), "ann", settings(), answerCorrectly(), quiz.WithShuffler(noShuffle))
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Result.Score)
	assert.Equal(t, 5, sum.PreviousTotal)
	assert.Equal(t, 7, sum.NewTotal)
	assert.NoError(t, sum.SaveErr)
	assert.NoError(t, sum.HistoryErr)
	assert.NotEmpty(t, sum.SessionID)
	assert.Equal(t, 1.0, sum.Accuracy())

	reloaded, err := profile.Load(svc.Profiles.Path())
	require.NoError(t, err)
	score, _ := reloaded.Score("ann")
	assert.Equal(t, 7, score)

	sessions, err := hist.RecentSessions(context.Background(), store.QueryOpts{Username: "ann"})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "test", sessions[0].Source)
	assert.Equal(t, "General Knowledge", sessions[0].Category)

	answers, err := hist.SessionAnswers(context.Background(), sessions[0].ID)
	require.NoError(t, err)
	assert.Len(t, answers, 2)
	assert.Equal(t, "answered", answers[0].Outcome)
	assert.True(t, answers[0].Correct)
}

func TestPrepare_FetchFailure(t *testing.T) {
	prov := &fakeProvider{err: trivia.ErrNoResults}
	svc, _ := newService(t, prov)

	_, err := svc.Prepare(context.Background(), settings())
	assert.ErrorIs(t, err, ErrStart)
	assert.ErrorIs(t, err, trivia.ErrNoResults)

	prov.err = nil
	_, err = svc.Prepare(context.Background(), settings())
	assert.ErrorIs(t, err, ErrStart)
}

func TestPrepare_InvalidSettings(t *testing.T) {
	prov := &fakeProvider{questions: questions()}
	svc, _ := newService(t, prov)

	s := settings()
	s.TimeLimit = 3
	_, err := svc.Prepare(context.Background(), s)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrStart)
	assert.Zero(t, prov.calls)
}

func TestRun_CancelledLeavesProfile(t *testing.T) {
	svc, _ := newService(t, &fakeProvider{})
	require.NoError(t, svc.Profiles.SetScore("bob", 3))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	blocking := quiz.InputFunc(func(ctx context.Context, _ quiz.Prompt) (string, bool) {
		<-ctx.Done()
		return "", false
	})
	_, err := svc.Run(ctx, "bob", settings(), questions(), blocking)
	assert.ErrorIs(t, err, context.Canceled)

	score, _ := svc.Profiles.Score("bob")
	assert.Equal(t, 3, score)
}

func TestRun_HistoryFailureIsReported(t *testing.T) {
	prov := &fakeProvider{questions: questions()}
	svc, _ := newService(t, prov)
	svc.History = failingHistory{}

	sum, err := svc.Run(context.Background(), "cat", settings(), prov.questions, answerCorrectly(), quiz.WithShuffler(noShuffle))
	require.NoError(t, err)
	assert.Error(t, sum.HistoryErr)
	assert.Equal(t, 2, sum.NewTotal)
}

func TestRun_EmptyUsername(t *testing.T) {
	svc, _ := newService(t, &fakeProvider{})
	_, err := svc.Run(context.Background(), "  ", settings(), questions(), answerCorrectly())
	assert.ErrorIs(t, err, profile.ErrEmptyUsername)
}

type failingHistory struct{}

func (failingHistory) RecordSession(context.Context, *store.SessionRecord) error {
	return errors.New("database is locked")
}

func (failingHistory) RecentSessions(context.Context, store.QueryOpts) ([]store.SessionRecord, error) {
	return nil, nil
}

func (failingHistory) UserStats(context.Context, string) (store.UserStats, error) {
	return store.UserStats{}, nil
}
