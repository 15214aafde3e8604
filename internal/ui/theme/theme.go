// Package theme holds the palette and shared styles of the trainer.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette. Muted tones that stay readable through a long lesson.
var (
	Primary   = lipgloss.Color("#6366F1")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Border    = lipgloss.Color("#334155")
	Ink       = lipgloss.Color("#0F172A")
)

// levelColors tints the school levels of the seed catalog. Custom levels
// fall back to TextDim.
var levelColors = map[string]color.Color{
	"SMP": lipgloss.Color("#38BDF8"),
	"SMA": lipgloss.Color("#A78BFA"),
	"SMK": lipgloss.Color("#FB923C"),
}

var (
	Subtitle  = lipgloss.NewStyle().Foreground(TextDim)
	Hint      = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	ErrorText = lipgloss.NewStyle().Foreground(Error)

	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)

	TabActive   = lipgloss.NewStyle().Foreground(Text).Background(Primary).Bold(true).Padding(0, 2)
	TabInactive = lipgloss.NewStyle().Foreground(TextDim).Padding(0, 2)

	// Badge marks short states such as "new" or "✎ note".
	Badge = lipgloss.NewStyle().Foreground(Ink).Background(Secondary).Padding(0, 1)
)

// LevelStyle colours a level tag.
func LevelStyle(level string) lipgloss.Style {
	c, ok := levelColors[level]
	if !ok {
		c = TextDim
	}
	return lipgloss.NewStyle().Foreground(c)
}

// ProgressStyle colours a completion percentage: done, started or
// untouched.
func ProgressStyle(percent int) lipgloss.Style {
	switch {
	case percent >= 100:
		return lipgloss.NewStyle().Foreground(Success).Bold(true)
	case percent > 0:
		return lipgloss.NewStyle().Foreground(Accent)
	default:
		return lipgloss.NewStyle().Foreground(TextDim)
	}
}
