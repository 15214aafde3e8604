package module

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/belajar/internal/catalog"
	"github.com/abhisek/belajar/internal/quiz"
	"github.com/abhisek/belajar/internal/ui/components"
)

// quizTab drives one quiz.Session. Retaking replaces the session.
type quizTab struct {
	items         []catalog.QuizItem
	sess          *quiz.Session
	choices       []components.MultiChoice
	current       int
	result        quiz.Result
	progressAfter int
}

func newQuizTab(items []catalog.QuizItem) quizTab {
	t := quizTab{
		items:   items,
		sess:    quiz.NewSession(items),
		choices: make([]components.MultiChoice, len(items)),
	}
	for i, it := range items {
		t.choices[i] = components.NewMultiChoice(it.Question, it.Choices, it.CorrectIndex)
	}
	return t
}

// update handles a key on the quiz tab and reports whether it graded the
// session.
func (t *quizTab) update(msg tea.KeyPressMsg) bool {
	if t.sess.Len() == 0 {
		if msg.String() == "g" && !t.sess.Graded() {
			t.result = t.sess.Grade()
			return true
		}
		return false
	}

	if t.sess.Graded() {
		switch msg.String() {
		case "r":
			*t = newQuizTab(t.items)
		case "left", "h", "p":
			t.move(-1)
		case "right", "l", "n":
			t.move(1)
		}
		return false
	}

	switch msg.String() {
	case "left", "h", "p":
		t.move(-1)
		return false
	case "right", "l", "n":
		t.move(1)
		return false
	case "g":
		t.result = t.sess.Grade()
		for i := range t.choices {
			t.choices[i].Revealed = true
		}
		return true
	}

	mc, _ := t.choices[t.current].Update(msg)
	t.choices[t.current] = mc
	if mc.Chosen < 0 {
		return false
	}
	if ans, ok := t.sess.Answer(t.current); ok && ans == mc.Chosen {
		return false
	}
	if err := t.sess.Select(t.current, mc.Chosen); err != nil {
		t.choices[t.current].Chosen = -1
	}
	return false
}

func (t *quizTab) move(delta int) {
	n := len(t.choices)
	if n == 0 {
		return
	}
	t.current = min(max(t.current+delta, 0), n-1)
}
