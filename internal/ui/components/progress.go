package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/belajar/internal/ui/theme"
)

const (
	minTrack     = 4
	percentCells = 6 // "  100%"
)

// ProgressBar draws module completion as a fixed-width track. Percent is
// clamped to 0..100.
type ProgressBar struct {
	Label       string
	Percent     int
	ShowPercent bool
	Width       int
}

func NewProgressBar(label string, percent int, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) View() string {
	pct := min(max(p.Percent, 0), 100)

	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	track := p.Width - lipgloss.Width(b.String())
	if p.ShowPercent {
		track -= percentCells
	}
	track = max(track, minTrack)

	done := track * pct / 100
	fill := lipgloss.NewStyle().Foreground(theme.Secondary)
	if pct == 100 {
		fill = fill.Foreground(theme.Success)
	}
	b.WriteString(fill.Render(strings.Repeat("█", done)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", track-done)))

	if p.ShowPercent {
		b.WriteString(theme.ProgressStyle(pct).Render(fmt.Sprintf("  %3d%%", pct)))
	}
	return b.String()
}
