package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicModels maps short names to Anthropic model IDs. Question
// writing is cheap work, so haiku is the default.
var anthropicModels = map[string]string{
	"claude-sonnet": "claude-sonnet-4-5",
	"claude-haiku":  "claude-haiku-4-5",
}

// AnthropicProvider writes questions with Claude models.
type AnthropicProvider struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicProvider returns a provider for cfg.
func NewAnthropicProvider(cfg AnthropicConfig) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	return newAnthropicProvider(cfg.Model, option.WithAPIKey(cfg.APIKey)), nil
}

func newAnthropicProvider(model string, opts ...option.RequestOption) *AnthropicProvider {
	c := anthropic.NewClient(opts...)
	return &AnthropicProvider{client: &c, model: resolveModel(model, anthropicModels)}
}

func (p *AnthropicProvider) Name() string    { return ProviderAnthropic }
func (p *AnthropicProvider) ModelID() string { return p.model }

func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	c, err := p.complete(ctx, req)
	if err != nil {
		return nil, err
	}
	return c.response(req)
}

func (p *AnthropicProvider) complete(ctx context.Context, req Request) (completion, error) {
	turns := make([]anthropic.MessageParam, 0, len(req.Messages))
	for _, m := range req.Messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == RoleAssistant {
			turns = append(turns, anthropic.NewAssistantMessage(block))
		} else {
			turns = append(turns, anthropic.NewUserMessage(block))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(req.MaxTokens),
		Messages:  turns,
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.Schema != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{Schema: req.Schema.Definition},
		}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			if apiErr.Response != nil {
				return completion{}, statusError(apiErr.StatusCode, apiErr.Response.Header, err)
			}
			return completion{}, statusError(apiErr.StatusCode, nil, err)
		}
		return completion{}, &ErrProviderUnavailable{Err: err}
	}

	c := completion{
		stop:  StopEnd,
		model: string(msg.Model),
		usage: usage(int(msg.Usage.InputTokens), int(msg.Usage.OutputTokens)),
	}
	if msg.StopReason == anthropic.StopReasonMaxTokens {
		c.stop = StopMaxTokens
	}
	for _, block := range msg.Content {
		if block.Type == "text" {
			c.text = block.Text
			return c, nil
		}
	}
	return completion{}, &ErrInvalidResponse{Err: errors.New("anthropic reply has no text block")}
}

// resolveModel maps a short model name to a vendor ID. Unknown names are
// taken as full IDs.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
