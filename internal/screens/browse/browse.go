// Package browse is the catalog screen: search, level filter and the
// module list with progress.
package browse

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/belajar/internal/catalog"
	"github.com/abhisek/belajar/internal/editor"
	"github.com/abhisek/belajar/internal/router"
	"github.com/abhisek/belajar/internal/screen"
	"github.com/abhisek/belajar/internal/screens/deps"
	"github.com/abhisek/belajar/internal/screens/edit"
	"github.com/abhisek/belajar/internal/screens/history"
	modulescreen "github.com/abhisek/belajar/internal/screens/module"
	"github.com/abhisek/belajar/internal/screens/overview"
	"github.com/abhisek/belajar/internal/ui/components"
	"github.com/abhisek/belajar/internal/ui/layout"
	"github.com/abhisek/belajar/internal/ui/theme"
)

// BrowseScreen lists the catalog.
type BrowseScreen struct {
	d       *deps.Deps
	search  components.TextInput
	levels  []string
	level   int
	results []catalog.Module
	cursor  components.Cursor
}

var _ screen.Screen = (*BrowseScreen)(nil)
var _ screen.KeyHintProvider = (*BrowseScreen)(nil)
var _ screen.Resumer = (*BrowseScreen)(nil)
var _ screen.InputCapturer = (*BrowseScreen)(nil)

// New creates the catalog screen.
func New(d *deps.Deps) *BrowseScreen {
	s := &BrowseScreen{
		d:      d,
		search: components.NewTextInput("Search", "title or description", "", 32),
	}
	s.refresh()
	return s
}

func (s *BrowseScreen) Init() tea.Cmd {
	return nil
}

func (s *BrowseScreen) Title() string {
	return "Modules"
}

// Resume reloads the list, picking up edits made on other screens.
func (s *BrowseScreen) Resume() tea.Cmd {
	s.refresh()
	return nil
}

func (s *BrowseScreen) CapturingInput() bool {
	return s.search.Focused()
}

func (s *BrowseScreen) KeyHints() []layout.KeyHint {
	if s.search.Focused() {
		return []layout.KeyHint{
			{Key: "Enter/Esc", Description: "Done"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "/", Description: "Search"},
		{Key: "←→", Description: "Level"},
		{Key: "Enter", Description: "Open"},
		{Key: "p", Description: "Progress"},
		{Key: "h", Description: "History"},
		{Key: "f", Description: "Focus"},
		{Key: "t", Description: "Teacher"},
	}
	if s.d.Teacher {
		hints = append(hints,
			layout.KeyHint{Key: "e", Description: "Edit"},
			layout.KeyHint{Key: "n", Description: "New"},
		)
	}
	return append(hints, layout.KeyHint{Key: "q", Description: "Quit"})
}

// Level returns the active level filter.
func (s *BrowseScreen) Level() string {
	return s.levels[s.level]
}

// Results returns the modules currently listed.
func (s *BrowseScreen) Results() []catalog.Module {
	return s.results
}

// Selected returns the highlighted module.
func (s *BrowseScreen) Selected() (catalog.Module, bool) {
	if !s.cursor.Valid() {
		return catalog.Module{}, false
	}
	return s.results[s.cursor.Index], true
}

func (s *BrowseScreen) refresh() {
	current := ""
	if len(s.levels) > 0 {
		current = s.levels[s.level]
	}
	s.levels = append([]string{catalog.LevelAll}, s.d.Catalog.Levels()...)
	s.level = 0
	for i, l := range s.levels {
		if l == current {
			s.level = i
		}
	}

	s.results = s.d.Catalog.Search(s.search.Value(), s.levels[s.level])
	s.cursor.SetCount(len(s.results))
}

func (s *BrowseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		return s, cmd
	}

	if s.search.Focused() {
		switch kmsg.String() {
		case "enter", "esc":
			s.search.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.refresh()
		return s, cmd
	}

	if c, moved := s.cursor.Update(kmsg); moved {
		s.cursor = c
		return s, nil
	}

	switch kmsg.String() {
	case "/":
		return s, s.search.Focus()
	case "right", "l":
		s.level = (s.level + 1) % len(s.levels)
		s.refresh()
	case "left":
		s.level = (s.level - 1 + len(s.levels)) % len(s.levels)
		s.refresh()
	case "enter":
		if m, ok := s.Selected(); ok {
			return s, router.Open(modulescreen.New(s.d, m.ID))
		}
	case "p":
		return s, router.Open(overview.New(s.d))
	case "h":
		return s, router.Open(history.New(s.d))
	case "t":
		s.d.Teacher = !s.d.Teacher
		s.d.Logger().Info("teacher mode toggled", "on", s.d.Teacher)
	case "e":
		if !s.d.Teacher {
			return s, nil
		}
		if m, ok := s.Selected(); ok {
			draft, err := editor.NewDraft(m)
			if err != nil {
				s.d.Logger().Error("open editor failed", "module", m.ID, "error", err)
				return s, nil
			}
			return s, router.Open(edit.New(s.d, draft))
		}
	case "n":
		if s.d.Teacher {
			return s, router.Open(edit.New(s.d, editor.NewModuleDraft(s.Level())))
		}
	case "q":
		return s, tea.Quit
	}
	return s, nil
}

func (s *BrowseScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(" " + s.search.View())
	b.WriteString("\n\n ")
	b.WriteString(s.levelSelector())
	b.WriteString("\n\n")

	if len(s.results) == 0 {
		b.WriteString(theme.Hint.Render("  No modules match."))
		return b.String()
	}

	barWidth := min(max(width/4, 12), 30)
	titleWidth := max(width-barWidth-16, 12)

	first, last := s.cursor.Window(height - 6)
	for i := first; i < last; i++ {
		m := s.results[i]
		name := s.cursor.Row(i, truncate(m.Title, titleWidth-4), titleWidth)
		level := theme.LevelStyle(m.Level).Render(fmt.Sprintf("%-4s", m.Level))
		bar := components.NewProgressBar("", s.d.Tracker.Progress(m.ID), true, barWidth).View()
		b.WriteString(name + level + " " + bar + "\n")
	}

	if m, ok := s.Selected(); ok && m.Description != "" && !layout.IsCompactWidth(width) {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("   " + truncate(m.Description, width-6)))
	}

	return b.String()
}

func (s *BrowseScreen) levelSelector() string {
	parts := make([]string, 0, len(s.levels))
	for i, l := range s.levels {
		label := l
		if l == catalog.LevelAll {
			label = "All"
		}
		if i == s.level {
			parts = append(parts, theme.TabActive.Render(label))
		} else {
			parts = append(parts, theme.TabInactive.Render(label))
		}
	}
	mode := lipgloss.NewStyle().Foreground(theme.TextDim).Render("   teacher: off")
	if s.d.Teacher {
		mode = lipgloss.NewStyle().Foreground(theme.Accent).Render("   teacher: on")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...) + mode
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
