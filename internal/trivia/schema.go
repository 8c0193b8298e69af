package trivia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// questionsSchema describes the api.php payload. Only the shape of the
// fields the client reads is constrained; content is checked per entry
// by NewQuestion.
var questionsSchema = map[string]any{
	"type":     "object",
	"required": []any{"response_code"},
	"properties": map[string]any{
		"response_code": map[string]any{"type": "integer", "minimum": 0},
		"results": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"question", "correct_answer", "incorrect_answers"},
				"properties": map[string]any{
					"type":              map[string]any{"enum": []any{"multiple", "boolean"}},
					"difficulty":        map[string]any{"enum": []any{"easy", "medium", "hard"}},
					"category":          map[string]any{"type": "string"},
					"question":          map[string]any{"type": "string"},
					"correct_answer":    map[string]any{"type": "string"},
					"incorrect_answers": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
		},
	},
}

// categoriesSchema describes the api_category.php payload.
var categoriesSchema = map[string]any{
	"type":     "object",
	"required": []any{"trivia_categories"},
	"properties": map[string]any{
		"trivia_categories": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "name"},
				"properties": map[string]any{
					"id":   map[string]any{"type": "integer"},
					"name": map[string]any{"type": "string"},
				},
			},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

func compileSchemas() {
	c := jsonschema.NewCompiler()
	defs := map[string]map[string]any{
		"questions":  questionsSchema,
		"categories": categoriesSchema,
	}
	compiled = make(map[string]*jsonschema.Schema, len(defs))
	for name, def := range defs {
		// Round-trip through JSON so numbers reach the compiler as json.Number.
		b, err := json.Marshal(def)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema %s: %w", name, err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
		if err != nil {
			compileErr = fmt.Errorf("parse schema %s: %w", name, err)
			return
		}
		url := fmt.Sprintf("schema://opentdb/%s.json", name)
		if err := c.AddResource(url, doc); err != nil {
			compileErr = fmt.Errorf("add schema %s: %w", name, err)
			return
		}
		sch, err := c.Compile(url)
		if err != nil {
			compileErr = fmt.Errorf("compile schema %s: %w", name, err)
			return
		}
		compiled[name] = sch
	}
}

// validatePayload checks raw JSON against the named schema.
func validatePayload(name string, raw []byte) error {
	compileOnce.Do(compileSchemas)
	if compileErr != nil {
		return compileErr
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := compiled[name].Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
