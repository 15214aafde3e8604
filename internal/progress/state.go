// Package progress holds the learner's persisted state and the tracker
// that keeps it in sync with a storage adapter.
package progress

import (
	"context"
	"maps"
)

// StorageKey is the fixed key under which key-value stores hold the state.
const StorageKey = "belajar-state-v1"

// State is the persisted learner state: best quiz percentage and free-form
// notes, both keyed by module id.
type State struct {
	Progress map[string]int    `json:"progress"`
	Notes    map[string]string `json:"notes"`
}

// NewState returns an empty state with both maps allocated.
func NewState() State {
	return State{
		Progress: make(map[string]int),
		Notes:    make(map[string]string),
	}
}

// Normalize allocates missing maps and clamps progress to 0..100.
func (s State) Normalize() State {
	if s.Progress == nil {
		s.Progress = make(map[string]int)
	}
	if s.Notes == nil {
		s.Notes = make(map[string]string)
	}
	for id, p := range s.Progress {
		s.Progress[id] = min(max(p, 0), 100)
	}
	return s
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := NewState()
	maps.Copy(out.Progress, s.Progress)
	maps.Copy(out.Notes, s.Notes)
	return out
}

// Merge folds other into s: progress keeps the higher value and notes
// from other overwrite. Empty notes in other are ignored.
func (s State) Merge(other State) State {
	out := s.Clone()
	for id, p := range other.Progress {
		out.Progress[id] = max(out.Progress[id], min(max(p, 0), 100))
	}
	for id, n := range other.Notes {
		if n != "" {
			out.Notes[id] = n
		}
	}
	return out
}

// Adapter loads and saves the state. Implementations report failures;
// the Tracker decides that they are never fatal.
type Adapter interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, s State) error
}

// MemoryAdapter keeps the state in memory. It backs tests and sessions
// where no store could be opened.
type MemoryAdapter struct {
	state State
	saves int
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{state: NewState()}
}

func (m *MemoryAdapter) Load(context.Context) (State, error) {
	return m.state.Clone(), nil
}

func (m *MemoryAdapter) Save(_ context.Context, s State) error {
	m.state = s.Clone()
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryAdapter) Saves() int { return m.saves }
