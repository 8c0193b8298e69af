// Package console is the line-based front end used by `timetick play`.
//
// Standard input is read by one goroutine for the lifetime of the
// Console. Prompts and the quiz input both consume from the same line
// channel, so a line typed after a question timed out can be told apart
// from an answer to the next one.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
)

// lineBuffer is how many typed lines the reader holds ahead of the
// consumer. Stale lines wait in the buffer until drain discards them.
const lineBuffer = 64

// Console reads lines from an input stream and writes styled output.
// Output methods are safe for concurrent use.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	lines chan string
}

// New starts reading r line by line. The reader goroutine exits at EOF.
func New(r io.Reader, w io.Writer) *Console {
	c := &Console{out: w, lines: make(chan string, lineBuffer)}
	go c.read(r)
	return c
}

func (c *Console) read(r io.Reader) {
	defer close(c.lines)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		c.lines <- sc.Text()
	}
}

// Println writes a line, downsampling colors for the output.
func (c *Console) Println(a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = lipgloss.Fprintln(c.out, a...)
}

// Printf writes formatted text without a trailing newline.
func (c *Console) Printf(format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = lipgloss.Fprint(c.out, fmt.Sprintf(format, a...))
}

// ReadLine waits for the next line. It returns io.EOF once input is
// exhausted and ctx.Err() when ctx is cancelled first.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// drain discards lines already typed but not yet read.
func (c *Console) drain() int {
	n := 0
	for {
		select {
		case _, ok := <-c.lines:
			if !ok {
				return n
			}
			n++
		default:
			return n
		}
	}
}

// Ask prompts for free text. An empty line yields def; when def is empty
// too the question is repeated.
func (c *Console) Ask(ctx context.Context, prompt, def string) (string, error) {
	for {
		c.Printf("%s ", promptLabel(prompt, def))
		line, err := c.ReadLine(ctx)
		if err != nil {
			return "", err
		}
		if line == "" {
			line = def
		}
		if line != "" {
			return line, nil
		}
	}
}

// AskInt prompts for an integer in [lo, hi] and repeats until one is given.
func (c *Console) AskInt(ctx context.Context, prompt string, def, lo, hi int) (int, error) {
	for {
		s, err := c.Ask(ctx, prompt, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < lo || n > hi {
			c.Println(styles.err.Render(fmt.Sprintf("Please enter a number between %d and %d", lo, hi)))
			continue
		}
		return n, nil
	}
}

// Choose prompts until the answer is one of choices.
func (c *Console) Choose(ctx context.Context, prompt string, choices []string, def string) (string, error) {
	label := fmt.Sprintf("%s [%s]", prompt, strings.Join(choices, "/"))
	for {
		s, err := c.Ask(ctx, label, def)
		if err != nil {
			return "", err
		}
		s = strings.ToLower(s)
		if slices.Contains(choices, s) {
			return s, nil
		}
		c.Println(styles.err.Render("Please select one of the available options"))
	}
}

func promptLabel(prompt, def string) string {
	if def == "" {
		return styles.prompt.Render(prompt + ":")
	}
	return styles.prompt.Render(prompt) + " " + styles.dim.Render("("+def+")") + styles.prompt.Render(":")
}
