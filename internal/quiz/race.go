package quiz

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTick is the countdown granularity.
const DefaultTick = time.Second

// Prompt describes the question an Input is collecting a token for.
type Prompt struct {
	// Number is the 1-based position of the question in the session.
	Number int

	// Tokens are the valid answer tokens, "1".."k".
	Tokens []string
}

// Valid reports whether token is one of the prompt's tokens.
func (p Prompt) Valid(token string) bool {
	for _, t := range p.Tokens {
		if t == token {
			return true
		}
	}
	return false
}

// Input supplies one answer token per question.
type Input interface {
	// Await blocks until the player submits a valid token for p or ctx is
	// done. It returns ok=false when no token was produced.
	Await(ctx context.Context, p Prompt) (token string, ok bool)
}

// InputFunc adapts a function to Input.
type InputFunc func(ctx context.Context, p Prompt) (string, bool)

func (f InputFunc) Await(ctx context.Context, p Prompt) (string, bool) { return f(ctx, p) }

// Race runs a countdown of Limit ticks against an Input.
// The zero value is not usable; build one with NewRace.
type Race struct {
	limit int
	tick  time.Duration

	// onTick, when set, is called with the remaining tick count each time
	// the countdown advances, starting with the full limit. It is only
	// ever called from the countdown goroutine while it is running.
	onTick func(remaining int)
}

// RaceOption configures a Race.
type RaceOption func(*Race)

// WithTick overrides the countdown granularity.
func WithTick(d time.Duration) RaceOption {
	return func(r *Race) {
		if d > 0 {
			r.tick = d
		}
	}
}

// WithTickHook registers a callback for countdown progress.
func WithTickHook(fn func(remaining int)) RaceOption {
	return func(r *Race) { r.onTick = fn }
}

// NewRace creates a Race that expires after limitSeconds ticks.
func NewRace(limitSeconds int, opts ...RaceOption) (*Race, error) {
	if limitSeconds < 1 {
		return nil, errors.New("time limit must be at least one second")
	}
	return newRace(limitSeconds, opts...), nil
}

// newRace skips the limit check for callers that validated it already.
func newRace(limitSeconds int, opts ...RaceOption) *Race {
	r := &Race{limit: limitSeconds, tick: DefaultTick}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Limit returns the countdown length in ticks.
func (r *Race) Limit() int { return r.limit }

// errTimeUp and errSettled are the two ways a race goroutine can claim the
// outcome. errgroup keeps only the first error and cancels the shared
// context, which is the first-writer-wins signal.
var (
	errTimeUp  = errors.New("time up")
	errSettled = errors.New("input settled")
)

// Run races the countdown against in and returns the winner. Both
// goroutines have exited when Run returns. Run never fails: a cancelled
// ctx or an input that yields no token resolves to TimedOut.
func (r *Race) Run(ctx context.Context, p Prompt, in Input) Outcome {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.countdown(gctx)
	})

	// token and answered are written only by the input goroutine and read
	// after Wait.
	var (
		token    string
		answered bool
	)
	g.Go(func() error {
		token, answered = in.Await(gctx, p)
		// Answered or abandoned, the input side is done either way and the
		// countdown must stop.
		return errSettled
	})

	if err := g.Wait(); errors.Is(err, errSettled) && answered {
		return AnsweredWith(token)
	}
	return Timeout()
}

// countdown returns errTimeUp after limit ticks, or nil as soon as ctx is
// cancelled by the other side.
func (r *Race) countdown(ctx context.Context) error {
	t := time.NewTicker(r.tick)
	defer t.Stop()

	remaining := r.limit
	r.report(remaining)
	for remaining > 0 {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			remaining--
			r.report(remaining)
		}
	}

	// A cancellation that landed on the final tick still belongs to the
	// other side.
	if ctx.Err() != nil {
		return nil
	}
	return errTimeUp
}

func (r *Race) report(remaining int) {
	if r.onTick != nil {
		r.onTick(remaining)
	}
}
