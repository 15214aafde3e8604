// Package screentest builds screen dependencies for tests.
package screentest

import (
	"context"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/belajar/internal/catalog"
	"github.com/abhisek/belajar/internal/progress"
	"github.com/abhisek/belajar/internal/screens/deps"
	"github.com/abhisek/belajar/internal/store"
)

// Events is an in-memory store.EventRepo.
type Events struct {
	mu       sync.Mutex
	Attempts []store.AttemptData
	LLM      []store.LLMRequestEventData
}

func (e *Events) AppendAttempt(_ context.Context, data store.AttemptData) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Attempts = append(e.Attempts, data)
	return nil
}

func (e *Events) QueryAttempts(_ context.Context, opts store.QueryOpts) ([]store.Attempt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []store.Attempt
	for i := len(e.Attempts) - 1; i >= 0; i-- {
		a := e.Attempts[i]
		if opts.ModuleID != "" && a.ModuleID != opts.ModuleID {
			continue
		}
		out = append(out, store.Attempt{Sequence: int64(i + 1), AttemptData: a})
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

func (e *Events) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.LLM = append(e.LLM, data)
	return nil
}

func (e *Events) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMRequestEvent, error) {
	return nil, nil
}

// New returns deps over the seed catalog, an in-memory state adapter and
// in-memory events.
func New(t *testing.T) (*deps.Deps, *progress.MemoryAdapter, *Events) {
	t.Helper()
	c, err := catalog.New(catalog.DefaultModules())
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	adapter := progress.NewMemoryAdapter()
	events := &Events{}
	d := &deps.Deps{
		Catalog: c,
		Tracker: progress.NewTracker(context.Background(), adapter, nil),
		Events:  events,
		Seed:    42,
	}
	return d, adapter, events
}

// Key builds a key press for a printable rune.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special builds a key press for a non-printable key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Type sends each rune of s as a key press.
func Type(update func(tea.Msg), s string) {
	for _, r := range s {
		update(Key(r))
	}
}
