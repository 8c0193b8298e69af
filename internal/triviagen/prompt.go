package triviagen

import (
	"fmt"
	"strings"

	"github.com/abhisek/timetick/internal/trivia"
)

const systemPrompt = `You write questions for a timed pub-quiz game.

Rules:
- Every question has exactly one unambiguous correct answer.
- Wrong answers are plausible but clearly wrong to someone who knows the topic.
- Options are short (at most six words) and never repeat each other.
- Do not reveal the answer in the question text.
- Use plain text only: no HTML, no markdown, no numbering.
- Facts must be stable; avoid anything that changes from year to year.`

func userPrompt(amount int, category string, difficulty trivia.Difficulty, typ trivia.QuestionType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write %d distinct trivia questions.\n", amount)
	if category == "Any" {
		b.WriteString("Topic: mix several general knowledge topics.\n")
	} else {
		fmt.Fprintf(&b, "Topic: %s.\n", category)
	}
	if difficulty != "" {
		fmt.Fprintf(&b, "Difficulty: %s.\n", difficulty)
	}
	switch typ {
	case trivia.TypeBoolean:
		b.WriteString("Format: true/false statements. correct_answer is \"True\" or \"False\" and incorrect_answers holds the other one.\n")
	default:
		b.WriteString("Format: multiple choice with one correct_answer and exactly three incorrect_answers.\n")
	}
	return b.String()
}
