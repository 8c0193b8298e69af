package quiz

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/abhisek/timetick/internal/trivia"
)

// ErrNoQuestions is returned when a session is started without questions.
var ErrNoQuestions = errors.New("no questions: cannot run a session")

// ErrSessionRunning is returned when Run is called on a Driver that is
// already running a session.
var ErrSessionRunning = errors.New("session already running")

// Phase is the lifecycle state of a Driver.
type Phase int32

const (
	PhaseIdle     Phase = iota // No session started yet
	PhaseRunning               // Serving questions
	PhaseFinished              // Last session completed or aborted
)

// Accumulator receives the session score once a session finishes.
type Accumulator interface {
	AddScore(points int)
}

// QuestionView is what a Presenter shows when a question starts.
type QuestionView struct {
	Number    int
	Total     int
	Prompt    string
	Category  string
	Choices   []string
	TimeLimit int
}

// Verdict is what a Presenter shows once a question resolves.
type Verdict struct {
	Number        int
	Outcome       Outcome
	Selected      string // option text, empty on timeout
	CorrectAnswer string
	Correct       bool
	Score         int // running score after this question
}

// Presenter receives session progress. Calls arrive from the goroutine
// running Run, except Tick which arrives from the countdown goroutine.
type Presenter interface {
	QuestionStarted(v QuestionView)
	Tick(number, remaining int)
	QuestionResolved(v Verdict)
}

// AnswerRecord is the per-question entry of a Result.
type AnswerRecord struct {
	Number        int
	Prompt        string
	CorrectAnswer string
	Token         string
	Selected      string
	Outcome       OutcomeKind
	Correct       bool
	Elapsed       time.Duration
}

// Result is the tally of one finished session.
type Result struct {
	Score      int
	Total      int
	Answers    []AnswerRecord
	StartedAt  time.Time
	FinishedAt time.Time
}

// Config controls session timing.
type Config struct {
	// TimeLimit is the per-question limit in seconds (>= 1).
	TimeLimit int

	// Tick is the countdown granularity. Zero means DefaultTick.
	Tick time.Duration

	// Interlude is an optional pause after each verdict except the last,
	// giving front ends time to show feedback.
	Interlude time.Duration
}

// Driver runs sessions. A Driver may run many sessions, one at a time.
type Driver struct {
	cfg       Config
	input     Input
	presenter Presenter
	shuffle   Shuffler
	now       func() time.Time
	phase     atomic.Int32
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithShuffler sets the option shuffler, for deterministic tests.
func WithShuffler(s Shuffler) DriverOption {
	return func(d *Driver) { d.shuffle = s }
}

// WithPresenter sets the progress receiver.
func WithPresenter(p Presenter) DriverOption {
	return func(d *Driver) {
		if p != nil {
			d.presenter = p
		}
	}
}

// WithClock overrides the wall clock used for timestamps.
func WithClock(now func() time.Time) DriverOption {
	return func(d *Driver) { d.now = now }
}

// NewDriver validates cfg and returns a Driver reading answers from in.
func NewDriver(cfg Config, in Input, opts ...DriverOption) (*Driver, error) {
	if cfg.TimeLimit < 1 {
		return nil, errors.New("time limit must be at least one second")
	}
	if in == nil {
		return nil, errors.New("input is required")
	}
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	d := &Driver{
		cfg:       cfg,
		input:     in,
		presenter: nopPresenter{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Phase returns the driver's current lifecycle state.
func (d *Driver) Phase() Phase {
	return Phase(d.phase.Load())
}

// Run asks every question in order and returns the tally. On success the
// score is added to acc exactly once. If ctx is cancelled the session is
// abandoned: ctx.Err() is returned and acc is left untouched.
func (d *Driver) Run(ctx context.Context, questions []trivia.Question, acc Accumulator) (*Result, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	if Phase(d.phase.Swap(int32(PhaseRunning))) == PhaseRunning {
		return nil, ErrSessionRunning
	}
	defer d.phase.Store(int32(PhaseFinished))

	res := &Result{
		Total:     len(questions),
		Answers:   make([]AnswerRecord, 0, len(questions)),
		StartedAt: d.now(),
	}

	for i, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec := d.ask(ctx, i+1, len(questions), q)
		if err := ctx.Err(); err != nil {
			// The race resolved because the session was torn down, not
			// because the player ran out of time.
			return nil, err
		}
		if rec.Correct {
			res.Score++
		}
		res.Answers = append(res.Answers, rec)

		d.presenter.QuestionResolved(Verdict{
			Number:        rec.Number,
			Outcome:       Outcome{Kind: rec.Outcome, Token: rec.Token},
			Selected:      rec.Selected,
			CorrectAnswer: q.CorrectAnswer,
			Correct:       rec.Correct,
			Score:         res.Score,
		})

		if i < len(questions)-1 && d.cfg.Interlude > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(d.cfg.Interlude):
			}
		}
	}

	res.FinishedAt = d.now()
	if acc != nil {
		acc.AddScore(res.Score)
	}
	slog.Info("session finished", "score", res.Score, "total", res.Total)
	return res, nil
}

// ask presents one question and resolves it through a fresh Race.
func (d *Driver) ask(ctx context.Context, number, total int, q trivia.Question) AnswerRecord {
	opts := BuildOptions(q, d.shuffle)

	race := newRace(d.cfg.TimeLimit,
		WithTick(d.cfg.Tick),
		WithTickHook(func(remaining int) { d.presenter.Tick(number, remaining) }),
	)

	d.presenter.QuestionStarted(QuestionView{
		Number:    number,
		Total:     total,
		Prompt:    q.Prompt,
		Category:  q.Category,
		Choices:   opts.Choices,
		TimeLimit: d.cfg.TimeLimit,
	})

	start := d.now()
	out := race.Run(ctx, Prompt{Number: number, Tokens: opts.Tokens()}, d.input)

	rec := AnswerRecord{
		Number:        number,
		Prompt:        q.Prompt,
		CorrectAnswer: q.CorrectAnswer,
		Outcome:       out.Kind,
		Elapsed:       d.now().Sub(start),
	}
	if out.Kind == Answered {
		// A token outside the option range counts as a wrong answer.
		rec.Token = out.Token
		rec.Selected, _ = opts.Lookup(out.Token)
		rec.Correct = rec.Selected == q.CorrectAnswer
	}
	slog.Debug("question resolved", "number", number, "outcome", out.String(), "correct", rec.Correct)
	return rec
}

type nopPresenter struct{}

func (nopPresenter) QuestionStarted(QuestionView) {}
func (nopPresenter) Tick(int, int)                {}
func (nopPresenter) QuestionResolved(Verdict)     {}
