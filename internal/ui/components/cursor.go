package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/belajar/internal/ui/theme"
)

// Cursor tracks the highlighted row of a list whose rows are drawn by the
// owning screen.
type Cursor struct {
	Index int
	count int
}

// SetCount sets the number of rows and keeps Index inside them.
func (c *Cursor) SetCount(n int) {
	c.count = max(n, 0)
	c.Index = min(c.Index, c.count-1)
	c.Index = max(c.Index, 0)
}

func (c Cursor) Count() int {
	return c.count
}

// Valid reports whether Index points at a row.
func (c Cursor) Valid() bool {
	return c.Index >= 0 && c.Index < c.count
}

// Update moves the cursor on up/down, home/end and page keys. The bool
// is false for keys the cursor ignores.
func (c Cursor) Update(msg tea.Msg) (Cursor, bool) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || c.count == 0 {
		return c, false
	}

	switch kmsg.String() {
	case "up", "k":
		c.Index = max(c.Index-1, 0)
	case "down", "j":
		c.Index = min(c.Index+1, c.count-1)
	case "home", "g":
		c.Index = 0
	case "end", "G":
		c.Index = c.count - 1
	case "pgup":
		c.Index = max(c.Index-pageSize, 0)
	case "pgdown":
		c.Index = min(c.Index+pageSize, c.count-1)
	default:
		return c, false
	}
	return c, true
}

const pageSize = 10

// Window returns the half-open range of rows to draw when only rows fit,
// scrolled so the cursor stays visible.
func (c Cursor) Window(rows int) (first, last int) {
	rows = max(rows, 1)
	if c.Index >= rows {
		first = c.Index - rows + 1
	}
	return first, min(first+rows, c.count)
}

// Row renders label as row i padded to width, highlighted and marked
// when the cursor is on it. A zero width leaves the label unpadded.
func (c Cursor) Row(i int, label string, width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Text).Width(width)
	if i != c.Index {
		return style.Render("   " + label)
	}
	return style.Foreground(theme.Primary).Bold(true).Render(" ▸ " + label)
}
