// Package router keeps the stack of open screens. Screens navigate by
// returning the commands built by Open, Back and Swap.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/belajar/internal/screen"
)

type PushScreenMsg struct {
	Screen screen.Screen
}

type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen without growing the stack.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Open pushes sc above the current screen.
func Open(sc screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: sc} }
}

// Back returns to the screen below.
func Back() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}

// Swap replaces the current screen with sc.
func Swap(sc screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: sc} }
}

// Router owns the screen stack. The bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) push(sc screen.Screen) tea.Cmd {
	r.stack = append(r.stack, sc)
	return sc.Init()
}

// pop drops the top screen and resumes the one it covered.
func (r *Router) pop() tea.Cmd {
	if len(r.stack) < 2 {
		return nil
	}
	r.stack[len(r.stack)-1] = nil
	r.stack = r.stack[:len(r.stack)-1]
	if res, ok := r.Active().(screen.Resumer); ok {
		return res.Resume()
	}
	return nil
}

func (r *Router) replace(sc screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.push(sc)
	}
	r.stack[len(r.stack)-1] = sc
	return sc.Init()
}

// Active is the screen on top, or nil for an empty stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Trail lists the titles of the open screens from the bottom up, skipping
// untitled ones such as the welcome splash.
func (r *Router) Trail() []string {
	trail := make([]string, 0, len(r.stack))
	for _, sc := range r.stack {
		if t := sc.Title(); t != "" {
			trail = append(trail, t)
		}
	}
	return trail
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.push(msg.Screen)
	case PopScreenMsg:
		return r.pop()
	case ReplaceScreenMsg:
		return r.replace(msg.Screen)
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	next, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}
