package triviagen

import (
	"fmt"

	"github.com/abhisek/timetick/internal/llm"
	"github.com/abhisek/timetick/internal/trivia"
)

// batch is the structured output requested from the model.
type batch struct {
	Questions []generated `json:"questions"`
}

type generated struct {
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// batchSchema returns the output schema for one question type. The
// question count is checked after decoding so one schema per type can be
// cached.
func batchSchema(typ trivia.QuestionType) *llm.Schema {
	distractors := 3
	answer := map[string]any{"type": "string", "minLength": 1}
	if typ == trivia.TypeBoolean {
		distractors = 1
		answer = map[string]any{"type": "string", "enum": []any{"True", "False"}}
	}

	return &llm.Schema{
		Name:        fmt.Sprintf("trivia-batch-%s", typ),
		Description: "A batch of trivia questions with one correct answer each",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"minItems": 1,
					"maxItems": trivia.MaxAmount,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question":       map[string]any{"type": "string", "minLength": 1},
							"correct_answer": answer,
							"incorrect_answers": map[string]any{
								"type":     "array",
								"items":    map[string]any{"type": "string", "minLength": 1},
								"minItems": distractors,
								"maxItems": distractors,
							},
						},
						"required":             []any{"question", "correct_answer", "incorrect_answers"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"questions"},
			"additionalProperties": false,
		},
	}
}
