package console

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/abhisek/timetick/internal/quiz"
)

// Input returns a quiz.Input that reads answer tokens from the console.
// Lines that are not one of the prompt's tokens are re-prompted within
// the same countdown. Closed input resolves as no answer.
func (c *Console) Input() quiz.Input {
	return quiz.InputFunc(c.await)
}

func (c *Console) await(ctx context.Context, p quiz.Prompt) (string, bool) {
	if n := c.drain(); n > 0 {
		slog.Debug("discarded stale input", "question", p.Number, "lines", n)
	}

	for {
		c.Printf("%s ", styles.prompt.Render(fmt.Sprintf("Your answer (1-%d):", len(p.Tokens))))
		line, err := c.ReadLine(ctx)
		if err != nil {
			return "", false
		}
		if slices.Contains(p.Tokens, line) {
			return line, true
		}
		c.Println(styles.err.Render("Please select one of the available options"))
	}
}
