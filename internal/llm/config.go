package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible APIs
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from TIMETICK_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setString(&cfg.Provider, "TIMETICK_LLM_PROVIDER")

	setString(&cfg.Anthropic.APIKey, "TIMETICK_ANTHROPIC_API_KEY")
	setString(&cfg.Anthropic.Model, "TIMETICK_ANTHROPIC_MODEL")

	setString(&cfg.OpenAI.APIKey, "TIMETICK_OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "TIMETICK_OPENAI_MODEL")
	setString(&cfg.OpenAI.BaseURL, "TIMETICK_OPENAI_BASE_URL")

	setString(&cfg.Gemini.APIKey, "TIMETICK_GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "TIMETICK_GEMINI_MODEL")

	setString(&cfg.OpenRouter.APIKey, "TIMETICK_OPENROUTER_API_KEY")
	setString(&cfg.OpenRouter.Model, "TIMETICK_OPENROUTER_MODEL")
	setString(&cfg.OpenRouter.BaseURL, "TIMETICK_OPENROUTER_BASE_URL")

	if v := os.Getenv("TIMETICK_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("TIMETICK_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retry.MaxAttempts = n
		}
	}

	return cfg
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes the vendors' standard API key variables
// (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config for the
// first one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Resolve returns the TIMETICK_* configuration when its provider has a
// key, else whatever DiscoverConfig finds, else the env config unchanged
// so Validate can explain what is missing.
func Resolve() Config {
	cfg := ConfigFromEnv()
	if cfg.Validate() == nil {
		return cfg
	}
	if found, ok := DiscoverConfig(); ok && os.Getenv("TIMETICK_LLM_PROVIDER") == "" {
		return found
	}
	return cfg
}

// ProviderInfo describes one provider for listings.
type ProviderInfo struct {
	Name       string
	Model      string
	Configured bool
	Selected   bool
}

// Providers lists every provider with its model and whether a key is set.
func (c Config) Providers() []ProviderInfo {
	infos := []ProviderInfo{
		{Name: ProviderAnthropic, Model: resolveModel(c.Anthropic.Model, anthropicModels), Configured: c.Anthropic.APIKey != ""},
		{Name: ProviderOpenAI, Model: resolveModel(c.OpenAI.Model, openaiModels), Configured: c.OpenAI.APIKey != ""},
		{Name: ProviderGemini, Model: resolveModel(c.Gemini.Model, geminiModels), Configured: c.Gemini.APIKey != ""},
		{Name: ProviderOpenRouter, Model: c.OpenRouter.Model, Configured: c.OpenRouter.APIKey != ""},
		{Name: ProviderMock, Model: "mock", Configured: true},
	}
	for i := range infos {
		infos[i].Selected = infos[i].Name == c.Provider
	}
	return infos
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "TIMETICK_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "TIMETICK_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "TIMETICK_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "TIMETICK_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
