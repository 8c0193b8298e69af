package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/timetick/internal/store"
)

// FactoryOption adjusts NewProvider.
type FactoryOption func(*factory)

type factory struct {
	mock *MockProvider
}

// WithMock supplies the provider used when cfg.Provider is "mock".
func WithMock(m *MockProvider) FactoryOption {
	return func(f *factory) { f.mock = m }
}

// NewProvider creates a Provider from configuration, wrapped as
// caller -> timeout -> retry -> logging -> base. eventRepo may be nil.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, opts ...FactoryOption) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var f factory
	for _, opt := range opts {
		opt(&f)
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		if f.mock == nil {
			f.mock = NewMockProvider()
		}
		base = f.mock
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	var p Provider = WithLogging(base, eventRepo)
	p = WithRetry(p, cfg.Retry)
	if cfg.Timeout > 0 {
		p = &timeoutProvider{inner: p, timeout: cfg.Timeout}
	}
	return p, nil
}

// timeoutProvider bounds each Generate call, retries included.
type timeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *timeoutProvider) Name() string    { return t.inner.Name() }
func (t *timeoutProvider) ModelID() string { return t.inner.ModelID() }
