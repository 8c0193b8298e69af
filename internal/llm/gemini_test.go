package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	// Decoded from JSON so counts arrive as float64.
	var def map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"type": "object",
		"description": "a batch",
		"required": ["questions"],
		"properties": {
			"questions": {
				"type": "array",
				"minItems": 1,
				"maxItems": 20,
				"items": {
					"type": "object",
					"properties": {
						"difficulty": {"type": "string", "enum": ["easy", "medium", "hard"]},
						"points": {"type": "integer"},
						"odd": {"type": "null"}
					}
				}
			}
		}
	}`), &def))

	s := geminiSchema(def)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, "a batch", s.Description)
	assert.Equal(t, []string{"questions"}, s.Required)

	qs := s.Properties["questions"]
	require.NotNil(t, qs)
	assert.Equal(t, genai.TypeArray, qs.Type)
	require.NotNil(t, qs.MinItems)
	require.NotNil(t, qs.MaxItems)
	assert.EqualValues(t, 1, *qs.MinItems)
	assert.EqualValues(t, 20, *qs.MaxItems)

	item := qs.Items
	require.NotNil(t, item)
	assert.Equal(t, []string{"easy", "medium", "hard"}, item.Properties["difficulty"].Enum)
	assert.Equal(t, genai.TypeInteger, item.Properties["points"].Type)
	assert.Equal(t, genai.TypeString, item.Properties["odd"].Type)
}

func TestGeminiSchemaGoLiterals(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type":     "array",
		"minItems": 2,
		"required": []string{"a"},
	})
	require.NotNil(t, s.MinItems)
	assert.EqualValues(t, 2, *s.MinItems)
	assert.Nil(t, s.MaxItems)
	assert.Equal(t, []string{"a"}, s.Required)
}

func TestGeminiIdentity(t *testing.T) {
	p := &GeminiProvider{model: resolveModel("gemini-flash", geminiModels)}
	assert.Equal(t, "gemini", p.Name())
	assert.Equal(t, "gemini-2.5-flash", p.ModelID())
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-2.0-flash", geminiModels))
}
