package progress

import (
	"context"

	"github.com/abhisek/belajar/internal/logger"
	"github.com/abhisek/belajar/internal/quiz"
)

// Tracker owns the in-session copy of the state and writes every change
// through to the adapter. Adapter failures are logged and otherwise
// ignored: a failed load starts from an empty state and a failed save
// keeps the in-memory change.
type Tracker struct {
	adapter Adapter
	log     *logger.Logger
	state   State
}

// NewTracker loads the state through adapter.
func NewTracker(ctx context.Context, adapter Adapter, log *logger.Logger) *Tracker {
	if log == nil {
		log = logger.Nop()
	}
	t := &Tracker{adapter: adapter, log: log, state: NewState()}

	s, err := adapter.Load(ctx)
	if err != nil {
		log.Warn("load state failed, starting empty", "error", err)
		return t
	}
	t.state = s.Normalize()
	return t
}

// Progress returns the best quiz percentage for a module.
func (t *Tracker) Progress(id string) int {
	return t.state.Progress[id]
}

// Note returns the note for a module.
func (t *Tracker) Note(id string) string {
	return t.state.Notes[id]
}

// RecordResult applies a graded quiz to the module's progress and returns
// the new value.
func (t *Tracker) RecordResult(ctx context.Context, id string, r quiz.Result) int {
	old := t.state.Progress[id]
	next := quiz.NextProgress(old, r)
	if next != old || !t.hasProgress(id) {
		t.state.Progress[id] = next
		t.persist(ctx)
	}
	return next
}

func (t *Tracker) hasProgress(id string) bool {
	_, ok := t.state.Progress[id]
	return ok
}

// SetNote replaces the note for a module.
func (t *Tracker) SetNote(ctx context.Context, id, text string) {
	if cur, ok := t.state.Notes[id]; ok && cur == text {
		return
	}
	t.state.Notes[id] = text
	t.persist(ctx)
}

// Merge folds an imported state into the current one.
func (t *Tracker) Merge(ctx context.Context, other State) {
	t.state = t.state.Merge(other)
	t.persist(ctx)
}

// Reset clears all progress and notes.
func (t *Tracker) Reset(ctx context.Context) {
	t.state = NewState()
	t.persist(ctx)
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() State {
	return t.state.Clone()
}

// Completed returns how many modules have reached 100%.
func (t *Tracker) Completed() int {
	n := 0
	for _, p := range t.state.Progress {
		if p >= 100 {
			n++
		}
	}
	return n
}

func (t *Tracker) persist(ctx context.Context) {
	if err := t.adapter.Save(ctx, t.state.Clone()); err != nil {
		t.log.Warn("save state failed", "error", err)
	}
}
