// Package router keeps the stack of screens and applies navigation
// messages to it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/timetick/internal/screen"
)

// PushScreenMsg puts Screen on top of the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg drops the top screen. The root screen is never dropped.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen for Screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// PopToRootMsg drops every screen above the root.
type PopToRootMsg struct{}

// Push returns a command that navigates forward to s.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// Pop returns a command that goes back one screen.
func Pop() tea.Msg { return PopScreenMsg{} }

// Replace returns a command that swaps the current screen for s.
func Replace(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

// PopToRoot returns to the root screen.
func PopToRoot() tea.Msg { return PopToRootMsg{} }

// Router owns the screen stack. Screens leaving the stack are closed
// when they implement screen.Closer.
type Router struct {
	stack []screen.Screen
}

// New returns a Router rooted at root.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Active is the screen on top of the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth is the number of stacked screens.
func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and forwards everything else to
// the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		r.stack = append(r.stack, msg.Screen)
		return msg.Screen.Init()

	case PopScreenMsg:
		if len(r.stack) > 1 {
			r.truncate(len(r.stack) - 1)
		}
		return nil

	case ReplaceScreenMsg:
		top := len(r.stack) - 1
		closeScreen(r.stack[top])
		r.stack[top] = msg.Screen
		return msg.Screen.Init()

	case PopToRootMsg:
		r.truncate(1)
		return nil
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	next, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

// View draws the active screen.
func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}

// CloseAll closes every stacked screen, top first. The stack is left as is.
func (r *Router) CloseAll() {
	for i := len(r.stack) - 1; i >= 0; i-- {
		closeScreen(r.stack[i])
	}
}

// truncate closes and drops the screens at index n and above.
func (r *Router) truncate(n int) {
	for i := len(r.stack) - 1; i >= n; i-- {
		closeScreen(r.stack[i])
		r.stack[i] = nil
	}
	r.stack = r.stack[:n]
}

func closeScreen(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}
