package quiz

import (
	"math/rand/v2"
	"strconv"

	"github.com/abhisek/timetick/internal/trivia"
)

// Options is the shuffled answer list for one question. Token "1" maps to
// Choices[0], and so on.
type Options struct {
	Choices []string
}

// Shuffler permutes n elements via swap, matching rand.Shuffle.
type Shuffler func(n int, swap func(i, j int))

// BuildOptions combines the distractors and the correct answer and
// shuffles them. A nil shuffle uses math/rand/v2's global source.
func BuildOptions(q trivia.Question, shuffle Shuffler) Options {
	choices := make([]string, 0, q.OptionCount())
	choices = append(choices, q.Distractors...)
	choices = append(choices, q.CorrectAnswer)

	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return Options{Choices: choices}
}

// Tokens returns the valid answer tokens, "1".."k".
func (o Options) Tokens() []string {
	tokens := make([]string, len(o.Choices))
	for i := range o.Choices {
		tokens[i] = strconv.Itoa(i + 1)
	}
	return tokens
}

// Lookup returns the option text for a token.
func (o Options) Lookup(token string) (string, bool) {
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 || n > len(o.Choices) {
		return "", false
	}
	return o.Choices[n-1], true
}

// TokenFor returns the token presenting text, or "" if text is not an option.
func (o Options) TokenFor(text string) string {
	for i, c := range o.Choices {
		if c == text {
			return strconv.Itoa(i + 1)
		}
	}
	return ""
}
