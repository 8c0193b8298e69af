package console

import (
	"fmt"
	"strings"

	"github.com/abhisek/timetick/internal/quiz"
)

// warnAt is the remaining-seconds mark that gets a one-line reminder.
const warnAt = 5

type presenter struct {
	c *Console
}

// Presenter returns a quiz.Presenter that prints to the console.
func (c *Console) Presenter() quiz.Presenter {
	return presenter{c: c}
}

func (p presenter) QuestionStarted(v quiz.QuestionView) {
	var b strings.Builder
	for i, choice := range v.Choices {
		fmt.Fprintf(&b, "  %s. %s\n", styles.token.Render(fmt.Sprint(i+1)), choice)
	}

	p.c.Println()
	p.c.Println(styles.dim.Render(fmt.Sprintf("Question %d/%d  (%ds)", v.Number, v.Total, v.TimeLimit)))
	p.c.Println(styles.question.Render(v.Prompt))
	p.c.Println(strings.TrimRight(b.String(), "\n"))
}

func (p presenter) Tick(_, remaining int) {
	if remaining == warnAt {
		p.c.Println()
		p.c.Println(styles.warn.Render(fmt.Sprintf("%d seconds left!", remaining)))
	}
}

func (p presenter) QuestionResolved(v quiz.Verdict) {
	if v.Outcome.Kind == quiz.TimedOut {
		p.c.Println()
		p.c.Println(styles.wrong.Render("Time's up!"))
	}
	if v.Correct {
		p.c.Println(styles.correct.Render("Correct! You earned a point."))
		return
	}
	p.c.Println(styles.wrong.Render("Sorry, that's incorrect.") + " The correct answer was: " + styles.correct.Render(v.CorrectAnswer))
}
