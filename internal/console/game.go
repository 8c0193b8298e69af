package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/abhisek/timetick/internal/config"
	"github.com/abhisek/timetick/internal/quiz"
	"github.com/abhisek/timetick/internal/session"
	"github.com/abhisek/timetick/internal/trivia"
)

// Game is the interactive console loop: username, settings, quiz, repeat.
type Game struct {
	Console  *Console
	Service  *session.Service
	Defaults config.QuizSettings

	// Categories lists selectable categories. Nil or failing falls back
	// to trivia.DefaultCategories.
	Categories trivia.CategoryLister

	// Username skips the username prompt when set.
	Username string

	// DriverOptions are passed to every session, for tests.
	DriverOptions []quiz.DriverOption
}

// Run plays until the player declines another round, input ends or ctx
// is cancelled. The last two are not errors.
func (g *Game) Run(ctx context.Context) error {
	err := g.run(ctx)
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		g.Console.Println()
		g.Console.Println(styles.heading.Render("Goodbye!"))
		return nil
	}
	return err
}

func (g *Game) run(ctx context.Context) error {
	c := g.Console
	c.Println(styles.banner.Render("Welcome to TimeTick - A Magic Library Adventure!"))

	username := g.Username
	for username == "" {
		var err error
		if username, err = c.Ask(ctx, "Enter your username, recruit", ""); err != nil {
			return err
		}
	}

	prev := g.Defaults
	for {
		s, err := g.setup(ctx, prev)
		if err != nil {
			return err
		}
		prev = s.QuizSettings

		c.Println()
		c.Println(styles.correct.Render("Fetching questions from the magic book..."))
		questions, err := g.Service.Prepare(ctx, s)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("console session could not start", "error", err)
			c.Println(styles.err.Render(session.StartFailedMessage))
		} else if err := g.play(ctx, username, s, questions); err != nil {
			return err
		}

		c.Println()
		again, err := c.Choose(ctx, "Play again?", []string{"yes", "no"}, "yes")
		if err != nil {
			return err
		}
		if again == "no" {
			c.Println(styles.heading.Render("Thanks for playing at the TimeTick Library! Come back soon!"))
			return nil
		}
	}
}

func (g *Game) play(ctx context.Context, username string, s session.Settings, questions []trivia.Question) error {
	c := g.Console
	opts := append([]quiz.DriverOption{quiz.WithPresenter(c.Presenter())}, g.DriverOptions...)

	sum, err := g.Service.Run(ctx, username, s, questions, c.Input(), opts...)
	if err != nil {
		return err
	}

	c.Println()
	c.Println("Quiz finished! You scored " + styles.score.Render(fmt.Sprintf("%d/%d", sum.Result.Score, sum.Result.Total)) + " in this session.")
	c.Println("Your total score is now " + styles.score.Render(strconv.Itoa(sum.NewTotal)) + ". Well done!")
	if sum.SaveErr != nil {
		c.Println(styles.warn.Render("Your score could not be saved: " + sum.SaveErr.Error()))
	}
	return nil
}

// setup asks for every session setting, offering def as defaults.
func (g *Game) setup(ctx context.Context, def config.QuizSettings) (session.Settings, error) {
	c := g.Console
	s := session.Settings{QuizSettings: def}

	c.Println()
	c.Println(styles.heading.Render("Let's set up your quiz!"))

	var err error
	if s.Amount, err = c.AskInt(ctx, fmt.Sprintf("How many questions (%d-%d)?", trivia.MinAmount, trivia.MaxAmount),
		def.Amount, trivia.MinAmount, trivia.MaxAmount); err != nil {
		return s, err
	}
	if s.TimeLimit, err = c.AskInt(ctx, fmt.Sprintf("How much time per question in seconds (%d-%d)?", config.MinTimeLimit, config.MaxTimeLimit),
		def.TimeLimit, config.MinTimeLimit, config.MaxTimeLimit); err != nil {
		return s, err
	}

	cat, err := g.chooseCategory(ctx, def.Category)
	if err != nil {
		return s, err
	}
	s.Category, s.CategoryName = cat.ID, cat.Name

	diff, err := c.Choose(ctx, "Difficulty", enumStrings(trivia.Difficulties), string(def.Difficulty))
	if err != nil {
		return s, err
	}
	s.Difficulty = trivia.Difficulty(diff)

	typ, err := c.Choose(ctx, "Question type", enumStrings(trivia.QuestionTypes), string(def.Type))
	if err != nil {
		return s, err
	}
	s.Type = trivia.QuestionType(typ)

	// The console prints verdicts inline; no pause is needed.
	s.Interlude = 0
	return s, nil
}

func (g *Game) chooseCategory(ctx context.Context, def int) (trivia.Category, error) {
	c := g.Console
	cats := g.loadCategories(ctx)

	c.Println()
	c.Println(styles.heading.Render("Choose a category:"))
	ids := make([]string, 0, len(cats))
	byID := make(map[string]trivia.Category, len(cats))
	for _, cat := range cats {
		id := strconv.Itoa(cat.ID)
		ids = append(ids, id)
		byID[id] = cat
		c.Println(fmt.Sprintf("  %s: %s", styles.token.Render(id), cat.Name))
	}

	defID := strconv.Itoa(def)
	if _, ok := byID[defID]; !ok {
		defID = ids[0]
	}
	for {
		id, err := c.Ask(ctx, "Category ID", defID)
		if err != nil {
			return trivia.Category{}, err
		}
		if cat, ok := byID[id]; ok {
			return cat, nil
		}
		c.Println(styles.err.Render("Please select one of the available options"))
	}
}

func (g *Game) loadCategories(ctx context.Context) []trivia.Category {
	if g.Categories != nil {
		cats, err := g.Categories.Categories(ctx)
		if err == nil && len(cats) > 0 {
			return cats
		}
		slog.Warn("fetch categories failed", "error", err)
	}
	g.Console.Println(styles.err.Render("Could not fetch categories. Using defaults."))
	return trivia.DefaultCategories()
}

func enumStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
