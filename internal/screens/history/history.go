// Package history lists graded quiz attempts from the event log.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"github.com/abhisek/belajar/internal/router"
	"github.com/abhisek/belajar/internal/screen"
	"github.com/abhisek/belajar/internal/screens/deps"
	"github.com/abhisek/belajar/internal/store"
	"github.com/abhisek/belajar/internal/ui/components"
	"github.com/abhisek/belajar/internal/ui/layout"
	"github.com/abhisek/belajar/internal/ui/theme"
)

// Limit caps the attempts loaded per refresh.
const Limit = 50

type loadedMsg struct {
	attempts []store.Attempt
	err      error
}

type HistoryScreen struct {
	d        *deps.Deps
	attempts []store.Attempt
	cursor   components.Cursor
	open     map[string]bool // attempt ids showing their detail line
	loading  bool
	err      error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(d *deps.Deps) *HistoryScreen {
	return &HistoryScreen{d: d, open: map[string]bool{}, loading: true}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) Init() tea.Cmd {
	return load(s.d.Events)
}

// load queries the log off the update loop. A nil repo means the database
// is unavailable, which shows as an empty history.
func load(events store.EventRepo) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return loadedMsg{}
		}
		attempts, err := events.QueryAttempts(context.Background(), store.QueryOpts{Limit: Limit})
		return loadedMsg{attempts: attempts, err: err}
	}
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "r", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loading = false
		s.err = msg.err
		if msg.err != nil {
			s.d.Logger().Warn("load quiz history", "error", msg.err)
			return s, nil
		}
		s.attempts = msg.attempts
		s.cursor.SetCount(len(s.attempts))

	case tea.KeyPressMsg:
		if c, moved := s.cursor.Update(msg); moved {
			s.cursor = c
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, router.Back()
		case "enter":
			if s.cursor.Valid() {
				id := s.attempts[s.cursor.Index].ID
				s.open[id] = !s.open[id]
			}
		case "r":
			s.loading = true
			return s, load(s.d.Events)
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.err != nil:
		return notice(width, theme.ErrorText, "Error: "+s.err.Error())
	case s.loading:
		return notice(width, theme.Subtitle, "Loading history...")
	case len(s.attempts) == 0:
		return notice(width, theme.Hint, "No quizzes graded yet.")
	}

	lines := []string{"", centre(width, theme.Subtitle.Render(s.summary())), ""}
	first, last := s.cursor.Window(height - len(lines))
	for i := first; i < last; i++ {
		a := s.attempts[i]
		lines = append(lines, centre(width, s.cursor.Row(i, s.row(a), 0)))
		if s.open[a.ID] {
			detail := fmt.Sprintf("module %s, progress after %d%%, #%d", a.ModuleID, a.ProgressAfter, a.Sequence)
			lines = append(lines, centre(width, theme.Hint.Render(detail)))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *HistoryScreen) row(a store.Attempt) string {
	title := a.ModuleID
	if m, ok := s.d.Catalog.Get(a.ModuleID); ok {
		title = m.Title
	}
	score := theme.ProgressStyle(a.Percent).Render(fmt.Sprintf("%3d%%", a.Percent))
	return fmt.Sprintf("%s  %-28s  %d/%d  %s",
		a.Timestamp.Local().Format("Jan 02 15:04"), title, a.Correct, a.Total, score)
}

// summary is the line above the list: attempt count, modules and the
// best score.
func (s *HistoryScreen) summary() string {
	modules := lo.Uniq(lo.Map(s.attempts, func(a store.Attempt, _ int) string { return a.ModuleID }))
	best := lo.MaxBy(s.attempts, func(a, b store.Attempt) bool { return a.Percent > b.Percent })
	return fmt.Sprintf("%d attempts across %d modules, best %d%%", len(s.attempts), len(modules), best.Percent)
}

func notice(width int, style lipgloss.Style, text string) string {
	return "\n\n" + centre(width, style.Render(text))
}

func centre(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
