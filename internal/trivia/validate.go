package trivia

import (
	"errors"
	"fmt"
	"html"
	"strings"
)

// ValidationError describes a question rejected at the provider boundary.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %d: %s", e.Index+1, e.Reason)
}

// NewQuestion decodes HTML entities in all text fields and validates the
// result. Sources that already return plain text can still call it; plain
// text passes through unescaping unchanged.
func NewQuestion(prompt, correct string, distractors []string, category string, difficulty Difficulty, typ QuestionType) (Question, error) {
	q := Question{
		Prompt:        clean(prompt),
		CorrectAnswer: clean(correct),
		Distractors:   make([]string, 0, len(distractors)),
		Category:      clean(category),
		Difficulty:    difficulty,
		Type:          typ,
	}
	for _, d := range distractors {
		q.Distractors = append(q.Distractors, clean(d))
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// Validate checks the structural rules every served question must meet.
func (q Question) Validate() error {
	if q.Prompt == "" {
		return errors.New("empty prompt")
	}
	if q.CorrectAnswer == "" {
		return errors.New("empty correct answer")
	}
	if len(q.Distractors) == 0 {
		return errors.New("no distractors")
	}
	seen := map[string]bool{q.CorrectAnswer: true}
	for _, d := range q.Distractors {
		if d == "" {
			return errors.New("empty distractor")
		}
		if seen[d] {
			return fmt.Errorf("duplicate option %q", d)
		}
		seen[d] = true
	}
	if q.Type == TypeBoolean && len(q.Distractors) != 1 {
		return fmt.Errorf("boolean question has %d distractors, want 1", len(q.Distractors))
	}
	return nil
}

// OptionCount returns the number of answer options the question presents.
func (q Question) OptionCount() int {
	return len(q.Distractors) + 1
}

func clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}
