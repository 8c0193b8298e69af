// Package llm is a small provider-neutral client for structured JSON
// generation, used to author trivia questions when no HTTP question bank
// is wanted.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// When req.Schema is set the provider uses its native structured output
	// mechanism and Content is JSON validated against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider name, e.g. "anthropic".
	Name() string

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation history. Question generation is single
	// turn, so this is normally one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. When nil the
	// response Content is raw text.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0. Zero leaves the provider
	// default in place.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema. It doubles as the OpenAI schema name and
	// the validation cache key, so it must be unique per definition.
	Name string

	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the actual model that served the request.
	Model string

	StopReason StopReason
}

// StopReason says why the model stopped writing.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// GenerateJSON runs req against p and decodes the response into v.
// A response cut off at the token limit is reported as
// *ErrMaxTokensExceeded.
func GenerateJSON(ctx context.Context, p Provider, req Request, v any) (*Response, error) {
	resp, err := p.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StopReason == StopMaxTokens {
		return resp, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	if err := json.Unmarshal(resp.Content, v); err != nil {
		return resp, &ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("decode: %w", err)}
	}
	return resp, nil
}

// completion is one vendor reply reduced to what Generate returns.
type completion struct {
	text  string
	stop  StopReason
	usage Usage
	model string
}

// response builds the Response for req. Structured replies are unwrapped
// from a markdown code fence when the model added one, and validated
// against req.Schema unless generation was cut off.
func (c completion) response(req Request) (*Response, error) {
	content := json.RawMessage(c.text)
	if req.Schema != nil {
		content = json.RawMessage(stripFence(c.text))
		if c.stop != StopMaxTokens {
			if err := validateResponse(req.Schema, content); err != nil {
				return nil, err
			}
		}
	}
	return &Response{
		Content:    content,
		Usage:      c.usage,
		Model:      c.model,
		StopReason: c.stop,
	}, nil
}

// stripFence returns the body of a ```-fenced block, or s unchanged.
func stripFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return s
	}
	nl := strings.IndexByte(t, '\n')
	if nl < 0 {
		return s
	}
	body := strings.TrimSpace(t[nl+1:])
	return strings.TrimSpace(strings.TrimSuffix(body, "```"))
}
