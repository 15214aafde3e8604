package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/belajar/internal/ui/theme"
)

// Tabs is a horizontal tab strip.
type Tabs struct {
	Labels []string
	Active int
}

// NewTabs creates a tab strip with the first tab active.
func NewTabs(labels ...string) Tabs {
	return Tabs{Labels: labels}
}

// Next activates the following tab, wrapping at the end.
func (t *Tabs) Next() {
	if len(t.Labels) == 0 {
		return
	}
	t.Active = (t.Active + 1) % len(t.Labels)
}

// Prev activates the preceding tab, wrapping at the start.
func (t *Tabs) Prev() {
	if len(t.Labels) == 0 {
		return
	}
	t.Active = (t.Active - 1 + len(t.Labels)) % len(t.Labels)
}

// Select activates tab i when it exists.
func (t *Tabs) Select(i int) {
	if i >= 0 && i < len(t.Labels) {
		t.Active = i
	}
}

// View renders the strip with a rule underneath.
func (t Tabs) View(width int) string {
	parts := make([]string, 0, len(t.Labels))
	for i, l := range t.Labels {
		if i == t.Active {
			parts = append(parts, theme.TabActive.Render(l))
		} else {
			parts = append(parts, theme.TabInactive.Render(l))
		}
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0)))
	return strip + "\n" + rule
}
