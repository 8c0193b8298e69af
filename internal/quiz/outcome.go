// Package quiz runs timed trivia sessions.
//
// The central primitive is Race: for one question it runs a countdown
// alongside a blocking wait for the player's answer and resolves to
// whichever finishes first. Driver sequences a list of questions through
// Race, scores them and reports the session total to an Accumulator.
//
// Front ends plug in through two interfaces: Input supplies answer tokens
// and Presenter receives progress notifications. Both the console and the
// TUI front ends implement them.
package quiz

import "fmt"

// OutcomeKind discriminates the two ways a question can resolve.
type OutcomeKind int

const (
	// TimedOut means no answer arrived before the countdown reached zero,
	// or the input was abandoned without a token.
	TimedOut OutcomeKind = iota

	// Answered means the player submitted a token in time.
	Answered
)

func (k OutcomeKind) String() string {
	switch k {
	case Answered:
		return "answered"
	case TimedOut:
		return "timed_out"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Outcome is the resolved result of one question. Token is set only
// when Kind is Answered.
type Outcome struct {
	Kind  OutcomeKind
	Token string
}

// AnsweredWith returns an Answered outcome for token.
func AnsweredWith(token string) Outcome {
	return Outcome{Kind: Answered, Token: token}
}

// Timeout returns a TimedOut outcome.
func Timeout() Outcome {
	return Outcome{Kind: TimedOut}
}

func (o Outcome) String() string {
	if o.Kind == Answered {
		return fmt.Sprintf("answered(%s)", o.Token)
	}
	return o.Kind.String()
}
