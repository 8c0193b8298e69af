package play

import (
	"context"
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/timetick/internal/quiz"
	"github.com/abhisek/timetick/internal/session"
)

type questionStartedMsg struct{ view quiz.QuestionView }

type tickMsg struct{ number, remaining int }

type resolvedMsg struct{ verdict quiz.Verdict }

type finishedMsg struct {
	summary *session.Summary
	err     error
}

// answer is a key press tagged with the question it was made for.
type answer struct {
	number int
	token  string
}

// bridge connects the driver goroutine to the Bubble Tea loop. Driver
// callbacks become messages on events; key presses arrive on answers.
// The final result travels on its own one-slot channel.
type bridge struct {
	ctx     context.Context
	events  chan tea.Msg
	done    chan tea.Msg
	answers chan answer
}

func newBridge(ctx context.Context) *bridge {
	return &bridge{
		ctx:     ctx,
		events:  make(chan tea.Msg, 16),
		done:    make(chan tea.Msg, 1),
		answers: make(chan answer, 1),
	}
}

// wait returns a command delivering the next driver event. Pending
// events are delivered before the final result.
func (b *bridge) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.events:
			return msg
		default:
		}
		select {
		case msg := <-b.events:
			return msg
		case fin := <-b.done:
			select {
			case msg := <-b.events:
				b.done <- fin
				return msg
			default:
				return fin
			}
		}
	}
}

// finish hands over the session result. It never blocks.
func (b *bridge) finish(sum *session.Summary, err error) {
	b.done <- finishedMsg{summary: sum, err: err}
}

func (b *bridge) send(msg tea.Msg) {
	select {
	case b.events <- msg:
	case <-b.ctx.Done():
	}
}

// offer hands an answer to the driver, replacing any unread one.
func (b *bridge) offer(a answer) {
	for {
		select {
		case b.answers <- a:
			return
		default:
		}
		select {
		case <-b.answers:
		default:
		}
	}
}

func (b *bridge) QuestionStarted(v quiz.QuestionView) { b.send(questionStartedMsg{view: v}) }

// Tick drops the update rather than stall the countdown.
func (b *bridge) Tick(number, remaining int) {
	select {
	case b.events <- tickMsg{number: number, remaining: remaining}:
	default:
	}
}

func (b *bridge) QuestionResolved(v quiz.Verdict) { b.send(resolvedMsg{verdict: v}) }

// Await implements quiz.Input. Answers for other questions are stale and
// dropped.
func (b *bridge) Await(ctx context.Context, p quiz.Prompt) (string, bool) {
	for {
		select {
		case <-ctx.Done():
			return "", false
		case a := <-b.answers:
			if a.number == p.Number && slices.Contains(p.Tokens, a.token) {
				return a.token, true
			}
		}
	}
}
