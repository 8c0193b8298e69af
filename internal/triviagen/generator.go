// Package triviagen writes trivia questions with an LLM. Generator
// satisfies trivia.Provider, so sessions can run on generated questions
// exactly as on Open Trivia DB ones.
package triviagen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/timetick/internal/llm"
	"github.com/abhisek/timetick/internal/trivia"
)

// Purpose labels generation calls in the LLM event log.
const Purpose = "trivia-gen"

const (
	defaultMaxTokens   = 4096
	defaultTemperature = 0.7
)

// Generator produces question batches from an LLM provider.
type Generator struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
	categories  []trivia.Category
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxTokens overrides the response token budget.
func WithMaxTokens(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxTokens = n
		}
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float64) Option {
	return func(g *Generator) { g.temperature = t }
}

// New returns a Generator backed by p.
func New(p llm.Provider, opts ...Option) *Generator {
	g := &Generator{
		provider:    p,
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
		categories:  Categories(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var (
	_ trivia.Provider       = (*Generator)(nil)
	_ trivia.CategoryLister = (*Generator)(nil)
)

// Categories returns the topics the generator offers.
func (g *Generator) Categories(context.Context) ([]trivia.Category, error) {
	out := make([]trivia.Category, len(g.categories))
	copy(out, g.categories)
	return out, nil
}

// Fetch generates p.Amount questions. Every question passes the same
// validation as questions from the HTTP API; one bad question fails the
// whole batch with trivia.ErrMalformedResponse.
func (g *Generator) Fetch(ctx context.Context, p trivia.Params) ([]trivia.Question, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	typ := p.Type
	if typ == "" {
		typ = trivia.TypeMultiple
	}
	category := g.categoryName(p.Category)

	req := llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userPrompt(p.Amount, category, p.Difficulty, typ)}},
		Schema:      batchSchema(typ),
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	}

	var out batch
	if _, err := llm.GenerateJSON(llm.WithPurpose(ctx, Purpose), g.provider, req, &out); err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	if len(out.Questions) < p.Amount {
		return nil, fmt.Errorf("%w: asked for %d questions, got %d", trivia.ErrMalformedResponse, p.Amount, len(out.Questions))
	}
	out.Questions = out.Questions[:p.Amount]

	questions := make([]trivia.Question, 0, p.Amount)
	seen := make(map[string]bool, p.Amount)
	for i, gq := range out.Questions {
		q, err := trivia.NewQuestion(gq.Question, gq.CorrectAnswer, gq.IncorrectAnswers, category, p.Difficulty, typ)
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %w", trivia.ErrMalformedResponse, i+1, err)
		}
		if typ == trivia.TypeBoolean {
			if err := checkBoolean(q); err != nil {
				return nil, fmt.Errorf("%w: question %d: %w", trivia.ErrMalformedResponse, i+1, err)
			}
		}
		key := strings.ToLower(q.Prompt)
		if seen[key] {
			return nil, fmt.Errorf("%w: question %d repeats an earlier one", trivia.ErrMalformedResponse, i+1)
		}
		seen[key] = true
		questions = append(questions, q)
	}

	slog.Debug("generated questions", "count", len(questions), "category", category, "model", g.provider.ModelID())
	return questions, nil
}

func (g *Generator) categoryName(id int) string {
	if id == 0 {
		return "Any"
	}
	for _, c := range g.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return trivia.DefaultCategory.Name
}

// checkBoolean requires the answer pair to be exactly True and False.
func checkBoolean(q trivia.Question) error {
	pair := map[string]bool{q.CorrectAnswer: true, q.Distractors[0]: true}
	if !pair["True"] || !pair["False"] {
		return errors.New("boolean question must have True and False as its options")
	}
	return nil
}
