// Package module is the module screen: lesson, quiz, flashcards, video
// and notes for one catalog module.
package module

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/belajar/internal/catalog"
	"github.com/abhisek/belajar/internal/editor"
	"github.com/abhisek/belajar/internal/flashcards"
	"github.com/abhisek/belajar/internal/markdown"
	"github.com/abhisek/belajar/internal/router"
	"github.com/abhisek/belajar/internal/screen"
	"github.com/abhisek/belajar/internal/screens/deps"
	"github.com/abhisek/belajar/internal/screens/edit"
	"github.com/abhisek/belajar/internal/ui/components"
	"github.com/abhisek/belajar/internal/ui/layout"
)

// Tab indexes.
const (
	TabLesson = iota
	TabQuiz
	TabCards
	TabVideo
	TabNotes
)

// Placeholders shown for missing content.
const (
	NoCards = "No cards."
	NoVideo = "No video yet."
	NoQuiz  = "No questions yet."
)

// ModuleScreen shows one module.
type ModuleScreen struct {
	d      *deps.Deps
	id     string
	mod    catalog.Module
	found  bool
	tabs   components.Tabs
	md     *markdown.Renderer
	lesson lessonView
	quiz   quizTab
	deck   *flashcards.Deck
	notes  components.TextArea
}

var _ screen.Screen = (*ModuleScreen)(nil)
var _ screen.KeyHintProvider = (*ModuleScreen)(nil)
var _ screen.StatusProvider = (*ModuleScreen)(nil)
var _ screen.InputCapturer = (*ModuleScreen)(nil)
var _ screen.Resumer = (*ModuleScreen)(nil)

// New creates the module screen for the module with the given id.
func New(d *deps.Deps, id string) *ModuleScreen {
	s := &ModuleScreen{
		d:    d,
		id:   id,
		tabs: components.NewTabs("Lesson", "Quiz", "Cards", "Video", "Notes"),
		md:   markdown.New(),
	}
	s.load()
	return s
}

func (s *ModuleScreen) load() {
	s.mod, s.found = s.d.Catalog.Get(s.id)
	s.lesson = lessonView{}
	s.quiz = newQuizTab(s.mod.Quiz)
	s.deck = flashcards.NewDeck(s.mod.Flashcards, s.d.Seed)
	s.notes = components.NewTextArea("Notes (saved as you type)", s.d.Tracker.Note(s.id), 60, 8)
}

func (s *ModuleScreen) Init() tea.Cmd {
	return nil
}

// Resume reloads the module after an edit.
func (s *ModuleScreen) Resume() tea.Cmd {
	tab := s.tabs.Active
	s.load()
	s.tabs.Select(tab)
	return nil
}

func (s *ModuleScreen) Title() string {
	if !s.found {
		return "Module"
	}
	return s.mod.Title
}

func (s *ModuleScreen) Status(width int) string {
	w := min(max(width/4, 16), 30)
	return components.NewProgressBar("", s.d.Tracker.Progress(s.id), true, w).View()
}

func (s *ModuleScreen) CapturingInput() bool {
	return s.tabs.Active == TabNotes && s.notes.Focused()
}

// ActiveTab returns the index of the visible tab.
func (s *ModuleScreen) ActiveTab() int {
	return s.tabs.Active
}

func (s *ModuleScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next tab"}}
	switch s.tabs.Active {
	case TabLesson:
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Scroll"})
	case TabQuiz:
		if s.quiz.sess.Graded() {
			hints = append(hints, layout.KeyHint{Key: "r", Description: "Retake"})
		} else {
			hints = append(hints,
				layout.KeyHint{Key: "↑↓", Description: "Choice"},
				layout.KeyHint{Key: "Space", Description: "Pick"},
				layout.KeyHint{Key: "←→", Description: "Question"},
				layout.KeyHint{Key: "g", Description: "Grade"},
			)
		}
	case TabCards:
		hints = append(hints,
			layout.KeyHint{Key: "Space", Description: "Flip"},
			layout.KeyHint{Key: "→", Description: "Next"},
			layout.KeyHint{Key: "s", Description: "Shuffle"},
		)
	case TabNotes:
		if s.notes.Focused() {
			return []layout.KeyHint{{Key: "Tab", Description: "Next tab"}, {Key: "Esc", Description: "Stop typing"}}
		}
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Type"})
	}
	if s.d.Teacher {
		hints = append(hints, layout.KeyHint{Key: "e", Description: "Edit"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *ModuleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.notes.Focused() {
			var cmd tea.Cmd
			s.notes, cmd = s.notes.Update(msg)
			return s, cmd
		}
		return s, nil
	}
	if !s.found {
		return s, nil
	}

	switch kmsg.String() {
	case "tab":
		s.switchTab(func() { s.tabs.Next() })
		return s, s.focusNotes()
	case "shift+tab":
		s.switchTab(func() { s.tabs.Prev() })
		return s, s.focusNotes()
	}

	if s.CapturingInput() {
		if kmsg.String() == "esc" {
			s.notes.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.notes, cmd = s.notes.Update(msg)
		s.saveNote()
		return s, cmd
	}

	switch kmsg.String() {
	case "1", "2", "3", "4", "5":
		n := int(kmsg.String()[0] - '1')
		s.switchTab(func() { s.tabs.Select(n) })
		return s, s.focusNotes()
	case "e":
		if s.d.Teacher {
			draft, err := editor.NewDraft(s.mod)
			if err != nil {
				s.d.Logger().Error("open editor failed", "module", s.id, "error", err)
				return s, nil
			}
			return s, router.Open(edit.New(s.d, draft))
		}
	}

	switch s.tabs.Active {
	case TabLesson:
		s.lesson.update(kmsg)
	case TabQuiz:
		if s.quiz.update(kmsg) {
			s.quiz.progressAfter = s.d.RecordAttempt(context.Background(), s.id, s.quiz.result)
		}
	case TabCards:
		switch kmsg.String() {
		case "space", "enter":
			s.deck.Flip()
		case "right", "n", "l":
			s.deck.Next()
		case "s":
			s.deck.SetShuffle(!s.deck.Shuffled())
		}
	case TabNotes:
		if kmsg.String() == "enter" || kmsg.String() == "i" {
			return s, s.notes.Focus()
		}
	}
	return s, nil
}

func (s *ModuleScreen) switchTab(move func()) {
	s.notes.Blur()
	move()
}

// focusNotes starts typing as soon as the Notes tab is shown.
func (s *ModuleScreen) focusNotes() tea.Cmd {
	if s.tabs.Active != TabNotes {
		return nil
	}
	return s.notes.Focus()
}

func (s *ModuleScreen) saveNote() {
	text := s.notes.Value()
	if text != s.d.Tracker.Note(s.id) {
		s.d.Tracker.SetNote(context.Background(), s.id, text)
	}
}
