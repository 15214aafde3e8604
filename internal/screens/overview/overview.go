// Package overview shows progress across the whole catalog.
package overview

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/belajar/internal/router"
	"github.com/abhisek/belajar/internal/screen"
	"github.com/abhisek/belajar/internal/screens/deps"
	"github.com/abhisek/belajar/internal/ui/components"
	"github.com/abhisek/belajar/internal/ui/layout"
	"github.com/abhisek/belajar/internal/ui/theme"
)

// Stats summarises progress over the catalog.
type Stats struct {
	Modules   int
	Started   int
	Completed int
	Average   int
	Notes     int
}

// Compute derives Stats from the tracker for every catalog module.
func Compute(d *deps.Deps) Stats {
	var st Stats
	total := 0
	for _, m := range d.Catalog.All() {
		st.Modules++
		p := d.Tracker.Progress(m.ID)
		total += p
		if p > 0 {
			st.Started++
		}
		if p >= 100 {
			st.Completed++
		}
		if strings.TrimSpace(d.Tracker.Note(m.ID)) != "" {
			st.Notes++
		}
	}
	if st.Modules > 0 {
		st.Average = total / st.Modules
	}
	return st
}

// OverviewScreen displays per-module progress.
type OverviewScreen struct {
	d *deps.Deps
}

var _ screen.Screen = (*OverviewScreen)(nil)
var _ screen.KeyHintProvider = (*OverviewScreen)(nil)

// New creates a new OverviewScreen.
func New(d *deps.Deps) *OverviewScreen {
	return &OverviewScreen{d: d}
}

func (s *OverviewScreen) Init() tea.Cmd {
	return nil
}

func (s *OverviewScreen) Title() string {
	return "Progress"
}

func (s *OverviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter/Esc", Description: "Back"},
	}
}

func (s *OverviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.Back()
		}
	}
	return s, nil
}

func (s *OverviewScreen) View(width, height int) string {
	st := Compute(s.d)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Your progress"))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Modules: %d        Started: %d        Completed: %d        Average: %d%%",
		st.Modules, st.Started, st.Completed, st.Average)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	barWidth := min(max(width/3, 16), 36)
	for _, m := range s.d.Catalog.All() {
		noteMark := " "
		if strings.TrimSpace(s.d.Tracker.Note(m.ID)) != "" {
			noteMark = "✎"
		}
		label := fmt.Sprintf("%s %-4s %s", noteMark, m.Level, m.Title)
		bar := components.NewProgressBar("", s.d.Tracker.Progress(m.ID), true, barWidth).View()

		style := lipgloss.NewStyle().Foreground(theme.Text).Width(max(width-barWidth-8, 20))
		if s.d.Tracker.Progress(m.ID) >= 100 {
			style = style.Foreground(theme.Success)
		}
		b.WriteString("  " + style.Render(label) + bar + "\n")
	}

	return b.String()
}
