package module

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/belajar/internal/catalog"
	"github.com/abhisek/belajar/internal/flashcards"
	"github.com/abhisek/belajar/internal/router"
	"github.com/abhisek/belajar/internal/screens/edit"
	"github.com/abhisek/belajar/internal/screens/screentest"
)

func press(s *ModuleScreen, keys ...tea.KeyPressMsg) {
	for _, k := range keys {
		s.Update(k)
	}
}

var (
	down  = screentest.Special(tea.KeyDown)
	right = screentest.Special(tea.KeyRight)
	space = screentest.Special(tea.KeySpace)
)

func TestModule_TabsSwitch(t *testing.T) {
	d, _, _ := screentest.New(t)
	s := New(d, "termokimia")

	assert.Equal(t, TabLesson, s.ActiveTab())
	press(s, screentest.Special(tea.KeyTab))
	assert.Equal(t, TabQuiz, s.ActiveTab())
	press(s, screentest.Key('4'))
	assert.Equal(t, TabVideo, s.ActiveTab())
	press(s, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, TabCards, s.ActiveTab())
}

func TestModule_LessonRendersMarkdown(t *testing.T) {
	d, _, _ := screentest.New(t)
	s := New(d, "termokimia")

	view := ansi.Strip(s.View(100, 40))
	assert.Contains(t, view, "Ringkasan")
	assert.Contains(t, view, "Hukum Hess")
}

func TestModule_QuizGradingUpdatesProgress(t *testing.T) {
	d, adapter, events := screentest.New(t)
	s := New(d, "termokimia")

	press(s, screentest.Key('2'))
	// Question 1: correct choice is index 1.
	press(s, down, space, right)
	// Question 2: correct choice is index 2.
	press(s, down, down, space)
	press(s, screentest.Key('g'))

	assert.True(t, s.quiz.sess.Graded())
	assert.Equal(t, 2, s.quiz.result.Correct)
	assert.Equal(t, 100, d.Tracker.Progress("termokimia"))
	assert.GreaterOrEqual(t, adapter.Saves(), 1)

	require.Len(t, events.Attempts, 1)
	assert.Equal(t, "termokimia", events.Attempts[0].ModuleID)
	assert.Equal(t, 100, events.Attempts[0].ProgressAfter)

	view := ansi.Strip(s.View(100, 40))
	assert.Contains(t, view, "Score: 2 / 2 (100%)")
}

func TestModule_RetakeNeverLowersProgress(t *testing.T) {
	d, _, events := screentest.New(t)
	s := New(d, "termokimia")

	press(s, screentest.Key('2'))
	press(s, down, space) // first correct, second unanswered
	press(s, screentest.Key('g'))
	assert.Equal(t, 50, d.Tracker.Progress("termokimia"))

	press(s, screentest.Key('r'))
	assert.False(t, s.quiz.sess.Graded())
	assert.Equal(t, 0, s.quiz.sess.Answered(), "retake starts a fresh session")

	press(s, screentest.Key('g'))
	assert.Equal(t, 0, s.quiz.result.Percent)
	assert.Equal(t, 50, d.Tracker.Progress("termokimia"))
	require.Len(t, events.Attempts, 2)
	assert.Equal(t, 50, events.Attempts[1].ProgressAfter)
}

func TestModule_AnswerOverwrittenBeforeGrading(t *testing.T) {
	d, _, _ := screentest.New(t)
	s := New(d, "statistika")

	press(s, screentest.Key('2'))
	press(s, space)       // choice 0
	press(s, down, space) // overwrite with choice 1
	ans, ok := s.quiz.sess.Answer(0)
	require.True(t, ok)
	assert.Equal(t, 1, ans)

	press(s, screentest.Key('g'))
	press(s, screentest.Special(tea.KeyUp), space)
	ans, _ = s.quiz.sess.Answer(0)
	assert.Equal(t, 1, ans, "answers are frozen after grading")
}

func TestModule_EmptyQuizGradesZero(t *testing.T) {
	d, _, _ := screentest.New(t)
	require.NoError(t, d.Catalog.Add(catalog.Module{ID: "kosong", Title: "Kosong", Level: "SMK"}))
	s := New(d, "kosong")

	press(s, screentest.Key('2'))
	assert.Contains(t, s.View(100, 30), NoQuiz)
	press(s, screentest.Key('g'))

	assert.Equal(t, 0, s.quiz.result.Total)
	assert.Equal(t, 0, d.Tracker.Progress("kosong"))
	assert.Contains(t, ansi.Strip(s.View(100, 30)), "Score: 0 / 0 (0%)")
}

func TestModule_CardsWrapAndFlip(t *testing.T) {
	d, _, _ := screentest.New(t)
	s := New(d, "termokimia")
	press(s, screentest.Key('3'))

	pos, total := s.deck.Position()
	assert.Equal(t, 1, pos)
	assert.Equal(t, 4, total)

	press(s, space)
	assert.Equal(t, flashcards.Back, s.deck.Face())

	for range total {
		press(s, right)
	}
	pos, _ = s.deck.Position()
	assert.Equal(t, 1, pos, "next wraps to the first card")
	assert.Equal(t, flashcards.Front, s.deck.Face())
	assert.Contains(t, ansi.Strip(s.View(100, 30)), "1 / 4")
}

func TestModule_ShuffleKeepsPosition(t *testing.T) {
	d, _, _ := screentest.New(t)
	s := New(d, "termokimia")
	press(s, screentest.Key('3'), right, right)

	press(s, screentest.Key('s'))
	assert.True(t, s.deck.Shuffled())
	pos, _ := s.deck.Position()
	assert.Equal(t, 3, pos)
}

func TestModule_EmptyPlaceholders(t *testing.T) {
	d, _, _ := screentest.New(t)
	require.NoError(t, d.Catalog.Add(catalog.Module{ID: "kosong", Title: "Kosong", Level: "SMK"}))
	s := New(d, "kosong")

	press(s, screentest.Key('3'))
	assert.Contains(t, s.View(100, 30), NoCards)
	press(s, screentest.Key('4'))
	assert.Contains(t, s.View(100, 30), NoVideo)
	press(s, screentest.Key('1'))
	assert.Contains(t, ansi.Strip(s.View(100, 30)), "No material yet.")
}

func TestModule_VideoShowsURL(t *testing.T) {
	d, _, _ := screentest.New(t)
	s := New(d, "statistika")
	press(s, screentest.Key('4'))

	assert.Contains(t, ansi.Strip(s.View(100, 30)), "https://www.youtube.com/embed/O2w1fU2j4HY")
}

func TestModule_NotesSaveOnEveryChange(t *testing.T) {
	d, adapter, _ := screentest.New(t)
	s := New(d, "statistika")

	press(s, screentest.Key('5'))
	require.True(t, s.CapturingInput())

	before := adapter.Saves()
	screentest.Type(func(m tea.Msg) { s.Update(m) }, "mean")

	assert.Equal(t, "mean", d.Tracker.Note("statistika"))
	assert.Equal(t, before+4, adapter.Saves())

	// Keys that would switch tabs are typed while the notes have focus.
	press(s, screentest.Key('1'))
	assert.Equal(t, TabNotes, s.ActiveTab())
	assert.Equal(t, "mean1", d.Tracker.Note("statistika"))

	press(s, screentest.Special(tea.KeyEscape))
	assert.False(t, s.CapturingInput())
}

func TestModule_NotesRestored(t *testing.T) {
	d, _, _ := screentest.New(t)
	d.Tracker.SetNote(t.Context(), "termokimia", "ingat hukum Hess")

	s := New(d, "termokimia")
	press(s, screentest.Key('5'))
	assert.Contains(t, ansi.Strip(s.View(100, 30)), "ingat hukum Hess")
}

func TestModule_EditOnlyInTeacherMode(t *testing.T) {
	d, _, _ := screentest.New(t)
	s := New(d, "termokimia")

	_, cmd := s.Update(screentest.Key('e'))
	assert.Nil(t, cmd)

	d.Teacher = true
	_, cmd = s.Update(screentest.Key('e'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = msg.Screen.(*edit.EditorScreen)
	assert.True(t, ok)
}

func TestModule_UnknownID(t *testing.T) {
	d, _, _ := screentest.New(t)
	s := New(d, "nope")

	assert.Contains(t, s.View(80, 20), "not found")
	_, cmd := s.Update(screentest.Key('2'))
	assert.Nil(t, cmd)
}
