package quiz

import (
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/belajar/internal/catalog"
)

var (
	// ErrGraded is returned when answering a quiz that was already graded.
	ErrGraded = errors.New("quiz already graded")

	// ErrOutOfRange is returned for a question or choice index that does not exist.
	ErrOutOfRange = errors.New("index out of range")
)

// Phase is the quiz session state.
type Phase int

const (
	PhaseAnswering Phase = iota
	PhaseGraded
)

func (p Phase) String() string {
	if p == PhaseGraded {
		return "graded"
	}
	return "answering"
}

// Result is the outcome of grading a quiz.
type Result struct {
	Correct int
	Total   int
	Percent int
}

// Session holds the answers for one attempt at a module's quiz.
// Transitions are one-way: a graded session never accepts answers again.
type Session struct {
	items   []catalog.QuizItem
	answers map[int]int
	phase   Phase
	result  Result
}

// NewSession starts a new attempt over the given items.
func NewSession(items []catalog.QuizItem) *Session {
	return &Session{
		items:   items,
		answers: make(map[int]int),
	}
}

// Len returns the number of questions.
func (s *Session) Len() int {
	return len(s.items)
}

// Item returns the i-th question.
func (s *Session) Item(i int) catalog.QuizItem {
	return s.items[i]
}

// Phase returns the current state.
func (s *Session) Phase() Phase {
	return s.phase
}

// Graded reports whether the session has been graded.
func (s *Session) Graded() bool {
	return s.phase == PhaseGraded
}

// Select records choice as the answer to question q, replacing any
// previous answer.
func (s *Session) Select(q, choice int) error {
	if s.phase == PhaseGraded {
		return ErrGraded
	}
	if q < 0 || q >= len(s.items) {
		return fmt.Errorf("question %d: %w", q, ErrOutOfRange)
	}
	if choice < 0 || choice >= len(s.items[q].Choices) {
		return fmt.Errorf("choice %d: %w", choice, ErrOutOfRange)
	}
	s.answers[q] = choice
	return nil
}

// Answer returns the selected choice for question q.
func (s *Session) Answer(q int) (int, bool) {
	c, ok := s.answers[q]
	return c, ok
}

// Answered returns how many questions have a selected choice.
func (s *Session) Answered() int {
	return len(s.answers)
}

// IsCorrect reports whether question q was answered correctly.
func (s *Session) IsCorrect(q int) bool {
	c, ok := s.answers[q]
	return ok && q >= 0 && q < len(s.items) && c == s.items[q].CorrectIndex
}

// Grade moves the session to the graded phase and returns the result.
// Unanswered questions count as incorrect. Grading again returns the
// same result.
func (s *Session) Grade() Result {
	if s.phase == PhaseGraded {
		return s.result
	}
	correct := 0
	for i := range s.items {
		if s.IsCorrect(i) {
			correct++
		}
	}
	s.result = Result{
		Correct: correct,
		Total:   len(s.items),
		Percent: Percent(correct, len(s.items)),
	}
	s.phase = PhaseGraded
	return s.result
}

// Result returns the graded result, or false while still answering.
func (s *Session) Result() (Result, bool) {
	return s.result, s.phase == PhaseGraded
}

// Percent returns round(100 * correct / total), rounding halves up.
// A quiz with no questions scores 0.
func Percent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(100*float64(correct)/float64(total) + 0.5))
}

// NextProgress applies the progress rule: progress never decreases.
func NextProgress(current int, r Result) int {
	return max(current, r.Percent)
}
