package llm

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantName string
		wantErr  bool
	}{
		{"anthropic", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "k", Model: "claude-haiku"}}, "anthropic", false},
		{"openai", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini"}}, "openai", false},
		{"openrouter", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "k", Model: "x/y"}}, "openrouter", false},
		{"mock", Config{Provider: "mock"}, "mock", false},
		{"missing key", Config{Provider: "openai"}, "", true},
		{"unknown", Config{Provider: "carrier-pigeon"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(context.Background(), tt.cfg, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}

func TestNewProvider_WithMockAndTimeout(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"ok":true}`)})
	cfg := Config{Provider: "mock", Timeout: time.Second, Retry: RetryConfig{MaxAttempts: 2}}

	p, err := NewProvider(context.Background(), cfg, nil, WithMock(mock))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*timeoutProvider); !ok {
		t.Fatalf("expected timeout wrapper, got %T", p)
	}

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` || mock.CallCount() != 1 {
		t.Fatalf("mock not used: %s, %d calls", resp.Content, mock.CallCount())
	}
}

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		model  string
		in     int64
		out    int64
		want   float64
		wantOK bool
	}{
		{"claude-haiku-4-5", 1_000_000, 1_000_000, 6, true},
		{"gpt-4o-mini", 2_000_000, 0, 0.3, true},
		{"google/gemini-2.0-flash-001", 1_000_000, 0, 0.1, true},
		{"mock", 100, 100, 0, false},
	}
	for _, tt := range tests {
		got, ok := EstimateCost(tt.model, tt.in, tt.out)
		if ok != tt.wantOK {
			t.Errorf("EstimateCost(%q) ok = %v, want %v", tt.model, ok, tt.wantOK)
			continue
		}
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("EstimateCost(%q) = %v, want %v", tt.model, got, tt.want)
		}
	}
}
