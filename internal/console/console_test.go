package console

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/timetick/internal/config"
	"github.com/abhisek/timetick/internal/profile"
	"github.com/abhisek/timetick/internal/quiz"
	"github.com/abhisek/timetick/internal/session"
	"github.com/abhisek/timetick/internal/trivia"
)

// syncBuffer lets the test read output while the console writes it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// feed writes lines to w with a pause before each so every line arrives
// after the console is waiting for it.
func feed(w *io.PipeWriter, gap time.Duration, lines ...string) {
	go func() {
		for _, l := range lines {
			time.Sleep(gap)
			if _, err := io.WriteString(w, l+"\n"); err != nil {
				return
			}
		}
		_ = w.Close()
	}()
}

func TestAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("default on empty line", func(t *testing.T) {
		c := New(strings.NewReader("\n"), io.Discard)
		got, err := c.Ask(ctx, "Name", "guest")
		require.NoError(t, err)
		assert.Equal(t, "guest", got)
	})

	t.Run("repeats without default", func(t *testing.T) {
		c := New(strings.NewReader("\n  \nann\n"), io.Discard)
		got, err := c.Ask(ctx, "Name", "")
		require.NoError(t, err)
		assert.Equal(t, "ann", got)
	})

	t.Run("eof", func(t *testing.T) {
		c := New(strings.NewReader(""), io.Discard)
		_, err := c.Ask(ctx, "Name", "")
		assert.ErrorIs(t, err, io.EOF)
	})
}

func TestAskInt(t *testing.T) {
	out := &syncBuffer{}
	c := New(strings.NewReader("abc\n50\n7\n"), out)

	got, err := c.AskInt(context.Background(), "How many", 5, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, 2, strings.Count(out.String(), "Please enter a number between 1 and 20"))
}

func TestChoose(t *testing.T) {
	c := New(strings.NewReader("expert\nHARD\n"), io.Discard)
	got, err := c.Choose(context.Background(), "Difficulty", []string{"easy", "medium", "hard"}, "medium")
	require.NoError(t, err)
	assert.Equal(t, "hard", got)
}

func TestInput_DiscardsStaleAndReprompts(t *testing.T) {
	r, w := io.Pipe()
	out := &syncBuffer{}
	c := New(r, out)

	// Lines typed before the question starts are stale.
	go func() { _, _ = io.WriteString(w, "1\n1\n1\n") }()
	time.Sleep(50 * time.Millisecond)

	done := make(chan string, 1)
	go func() {
		tok, ok := c.Input().Await(context.Background(), quiz.Prompt{Number: 1, Tokens: []string{"1", "2"}})
		if !ok {
			tok = "<none>"
		}
		done <- tok
	}()

	feed(w, 30*time.Millisecond, "9", "2")

	select {
	case tok := <-done:
		assert.Equal(t, "2", tok)
	case <-time.After(2 * time.Second):
		t.Fatal("input did not resolve")
	}
	assert.Contains(t, out.String(), "Please select one of the available options")
}

func TestInput_CancelAndEOF(t *testing.T) {
	r, w := io.Pipe()
	c := New(r, io.Discard)
	p := quiz.Prompt{Number: 1, Tokens: []string{"1", "2"}}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, ok := c.Input().Await(ctx, p)
	assert.False(t, ok)

	require.NoError(t, w.Close())
	_, ok = c.Input().Await(context.Background(), p)
	assert.False(t, ok)
}

type staticProvider struct {
	questions []trivia.Question
	err       error
}

func (s staticProvider) Fetch(context.Context, trivia.Params) ([]trivia.Question, error) {
	return s.questions, s.err
}

type staticCategories []trivia.Category

func (s staticCategories) Categories(context.Context) ([]trivia.Category, error) {
	return s, nil
}

func newGame(t *testing.T, in io.Reader, out io.Writer, p trivia.Provider) *Game {
	t.Helper()
	profiles, err := profile.Load(filepath.Join(t.TempDir(), "profiles.json"))
	require.NoError(t, err)

	return &Game{
		Console:    New(in, out),
		Service:    &session.Service{Provider: p, Profiles: profiles, Source: "test"},
		Defaults:   config.DefaultQuizSettings(),
		Categories: staticCategories{{ID: 9, Name: "General Knowledge"}, {ID: 22, Name: "Geography"}},
		DriverOptions: []quiz.DriverOption{
			quiz.WithShuffler(func(int, func(i, j int)) {}),
		},
	}
}

func TestGame_FullRound(t *testing.T) {
	qs := []trivia.Question{
		{Prompt: "Capital of Peru?", CorrectAnswer: "Lima", Distractors: []string{"Quito", "Bogota", "La Paz"}, Type: trivia.TypeMultiple},
		{Prompt: "Longest river?", CorrectAnswer: "Nile", Distractors: []string{"Amazon", "Yangtze", "Volga"}, Type: trivia.TypeMultiple},
	}

	r, w := io.Pipe()
	out := &syncBuffer{}
	g := newGame(t, r, out, staticProvider{questions: qs})

	// username, amount, time limit, category, difficulty, type,
	// answers (correct is last with no shuffle), play again.
	feed(w, 30*time.Millisecond, "ann", "2", "10", "22", "", "", "4", "1", "no")

	require.NoError(t, g.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Welcome to TimeTick")
	assert.Contains(t, text, "22: Geography")
	assert.Contains(t, text, "Capital of Peru?")
	assert.Contains(t, text, "Correct! You earned a point.")
	assert.Contains(t, text, "The correct answer was: Nile")
	assert.Contains(t, text, "You scored 1/2")
	assert.Contains(t, text, "Your total score is now 1")
	assert.Contains(t, text, "Thanks for playing")

	score, ok := g.Service.Profiles.Score("ann")
	assert.True(t, ok)
	assert.Equal(t, 1, score)
}

func TestGame_FetchFailureOffersRetry(t *testing.T) {
	r, w := io.Pipe()
	out := &syncBuffer{}
	g := newGame(t, r, out, staticProvider{err: trivia.ErrNoResults})
	g.Username = "bob"
	g.Categories = nil

	feed(w, 20*time.Millisecond, "", "", "", "", "", "no")

	require.NoError(t, g.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Could not fetch categories. Using defaults.")
	assert.Contains(t, text, session.StartFailedMessage)
	assert.NotContains(t, text, "Enter your username")
	_, ok := g.Service.Profiles.Score("bob")
	assert.False(t, ok)
}

func TestGame_EndOfInputIsNotAnError(t *testing.T) {
	g := newGame(t, strings.NewReader("ann\n"), io.Discard, staticProvider{})
	assert.NoError(t, g.Run(context.Background()))
}
