package llm

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with capped exponential
// backoff. A reply that fails validation gets exactly one more try.
type RetryProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps p. Fewer than one attempt is treated as one.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	return &RetryProvider{inner: p, cfg: cfg}
}

func (r *RetryProvider) Name() string    { return r.inner.Name() }
func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		err          error
		invalidTries int
	)
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			wait := r.backoff(attempt-1, err)
			slog.Debug("llm retry", "provider", r.inner.Name(), "attempt", attempt+1, "wait", wait, "error", err)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		var resp *Response
		if resp, err = r.inner.Generate(ctx, req); err == nil {
			return resp, nil
		}
		switch classify(err) {
		case kindFatal:
			return nil, err
		case kindInvalid:
			if invalidTries++; invalidTries > 1 {
				return nil, err
			}
		}
	}
	return nil, err
}

// backoff is the wait after failed attempt n (zero-based). A server
// Retry-After hint overrides the schedule. Jitter is +-10%.
func (r *RetryProvider) backoff(n int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	d := time.Duration(float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(n)))
	if d > r.cfg.MaxWait || d < 0 {
		d = r.cfg.MaxWait
	}
	if d <= 0 {
		return 0
	}
	return d - d/10 + time.Duration(rand.Int64N(int64(d/5)+1))
}
