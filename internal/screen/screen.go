// Package screen defines what the router stacks. Besides Screen itself a
// screen may implement any of the small optional interfaces below; the
// app checks for them with type assertions.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/belajar/internal/ui/layout"
)

type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View draws the body only. The app adds header and footer around it,
	// so width and height are what is left for the screen.
	View(width, height int) string

	// Title is the screen's crumb in the header trail. Untitled screens
	// take the whole terminal.
	Title() string
}

// KeyHintProvider replaces the default "Esc Back" footer.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider fills the right side of the header, e.g. with the open
// module's progress.
type StatusProvider interface {
	Status(width int) string
}

// Resumer is told when the screen above it was closed.
type Resumer interface {
	Resume() tea.Cmd
}

// InputCapturer reports a focused text field. Global single-key shortcuts
// are off while it returns true.
type InputCapturer interface {
	CapturingInput() bool
}
