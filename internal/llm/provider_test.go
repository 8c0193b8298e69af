package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`), StopReason: "max_tokens"},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.StopReason != "max_tokens" {
		t.Fatalf("expected stop reason 'max_tokens', got %q", resp2.StopReason)
	}
}

func TestMockProvider_EmptyQueue(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}

	mock.Fallback = func(Request) MockResponse {
		return MockResponse{Content: json.RawMessage(`{"fallback":true}`)}
	}
	resp, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"fallback":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})

	_, _ = mock.Generate(context.Background(), Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})

	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
	if mock.Name() != "mock" || mock.ModelID() != "mock" {
		t.Fatalf("unexpected identity %q/%q", mock.Name(), mock.ModelID())
	}
}

func TestGenerateJSON(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"n":7}`)},
		MockResponse{Content: json.RawMessage(`{"n":`), StopReason: "max_tokens"},
		MockResponse{Content: json.RawMessage(`[1,2]`)},
	)

	var out struct{ N int }
	if _, err := GenerateJSON(context.Background(), mock, Request{}, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.N != 7 {
		t.Fatalf("N = %d, want 7", out.N)
	}

	_, err := GenerateJSON(context.Background(), mock, Request{}, &out)
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T", err)
	}

	_, err = GenerateJSON(context.Background(), mock, Request{}, &out)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unspecified" {
		t.Fatalf("expected 'unspecified', got %q", p)
	}

	ctx = WithPurpose(ctx, "trivia-gen")
	if p := PurposeFrom(ctx); p != "trivia-gen" {
		t.Fatalf("expected 'trivia-gen', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TIMETICK_LLM_PROVIDER", "TIMETICK_ANTHROPIC_API_KEY", "TIMETICK_OPENAI_API_KEY",
		"TIMETICK_GEMINI_API_KEY", "TIMETICK_OPENROUTER_API_KEY", "TIMETICK_LLM_TIMEOUT",
		"TIMETICK_LLM_MAX_ATTEMPTS", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
		"OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("TIMETICK_LLM_PROVIDER", "openai")
	t.Setenv("TIMETICK_OPENAI_API_KEY", "sk-env")
	t.Setenv("TIMETICK_LLM_TIMEOUT", "5s")
	t.Setenv("TIMETICK_LLM_MAX_ATTEMPTS", "5")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-env" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Timeout.String() != "5s" || cfg.Retry.MaxAttempts != 5 {
		t.Fatalf("timeout/attempts not applied: %v %d", cfg.Timeout, cfg.Retry.MaxAttempts)
	}
}

func TestResolve_FallsBackToDiscovery(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-vendor")

	cfg := Resolve()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-vendor" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	// An explicit provider choice is never overridden.
	t.Setenv("TIMETICK_LLM_PROVIDER", "gemini")
	cfg = Resolve()
	if cfg.Provider != "gemini" {
		t.Fatalf("provider = %q, want gemini", cfg.Provider)
	}
}

func TestConfig_Providers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Anthropic.APIKey = "k"

	infos := cfg.Providers()
	if len(infos) != 5 {
		t.Fatalf("expected 5 providers, got %d", len(infos))
	}
	if !infos[0].Selected || !infos[0].Configured || infos[0].Model != "claude-haiku-4-5" {
		t.Errorf("anthropic info = %+v", infos[0])
	}
	if infos[1].Configured {
		t.Errorf("openai should not be configured")
	}
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```\n[1]\n```  ", `[1]`},
		{"```{\"a\":1}```", "```{\"a\":1}```"},
	}
	for _, tt := range tests {
		if got := stripFence(tt.in); got != tt.want {
			t.Errorf("stripFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompletionResponse(t *testing.T) {
	schema := &Schema{Name: "completion-n", Definition: map[string]any{"type": "object", "required": []any{"n"}}}

	resp, err := completion{text: "```json\n{\"n\":1}\n```", stop: StopEnd, model: "m"}.response(Request{Schema: schema})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"n":1}` || resp.Model != "m" {
		t.Fatalf("unexpected response %+v", resp)
	}

	// Without a schema the text is passed through untouched.
	resp, err = completion{text: "```x```", stop: StopEnd}.response(Request{})
	if err != nil || string(resp.Content) != "```x```" {
		t.Fatalf("got %q, %v", resp.Content, err)
	}

	if _, err := (completion{text: `{}`, stop: StopEnd}).response(Request{Schema: schema}); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := (completion{text: `{`, stop: StopMaxTokens}).response(Request{Schema: schema}); err != nil {
		t.Fatalf("truncated reply should not be validated: %v", err)
	}
}
