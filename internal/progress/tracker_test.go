package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/belajar/internal/quiz"
)

type failingAdapter struct {
	saveCalls int
}

func (f *failingAdapter) Load(context.Context) (State, error) {
	return State{}, errors.New("storage unavailable")
}

func (f *failingAdapter) Save(context.Context, State) error {
	f.saveCalls++
	return errors.New("storage unavailable")
}

func TestNewTracker_EmptyAdapter(t *testing.T) {
	tr := NewTracker(context.Background(), NewMemoryAdapter(), nil)
	s := tr.Snapshot()
	require.NotNil(t, s.Progress)
	require.NotNil(t, s.Notes)
	assert.Empty(t, s.Progress)
	assert.Empty(t, s.Notes)
}

func TestTracker_FailingAdapterDegrades(t *testing.T) {
	ctx := context.Background()
	fa := &failingAdapter{}
	tr := NewTracker(ctx, fa, nil)

	assert.Equal(t, 0, tr.Progress("termokimia"))

	got := tr.RecordResult(ctx, "termokimia", quiz.Result{Correct: 2, Total: 2, Percent: 100})
	assert.Equal(t, 100, got)
	assert.Equal(t, 100, tr.Progress("termokimia"))

	tr.SetNote(ctx, "termokimia", "eksoterm melepas kalor")
	assert.Equal(t, "eksoterm melepas kalor", tr.Note("termokimia"))
	assert.Equal(t, 2, fa.saveCalls)
}

func TestTracker_RecordResultMonotonic(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryAdapter()
	tr := NewTracker(ctx, mem, nil)

	tr.RecordResult(ctx, "statistika", quiz.Result{Correct: 2, Total: 2, Percent: 100})
	got := tr.RecordResult(ctx, "statistika", quiz.Result{Correct: 1, Total: 2, Percent: 50})

	assert.Equal(t, 100, got)
	loaded, err := mem.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, loaded.Progress["statistika"])
}

func TestTracker_PersistsAcrossSessions(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryAdapter()

	first := NewTracker(ctx, mem, nil)
	first.SetNote(ctx, "a", "note")
	first.RecordResult(ctx, "a", quiz.Result{Correct: 1, Total: 3, Percent: 33})

	second := NewTracker(ctx, mem, nil)
	assert.Equal(t, "note", second.Note("a"))
	assert.Equal(t, 33, second.Progress("a"))
}

func TestTracker_ZeroQuestionRecordsZero(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryAdapter()
	tr := NewTracker(ctx, mem, nil)

	got := tr.RecordResult(ctx, "empty", quiz.NewSession(nil).Grade())
	assert.Equal(t, 0, got)
	_, ok := tr.Snapshot().Progress["empty"]
	assert.True(t, ok)
}

func TestTracker_Reset(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryAdapter()
	tr := NewTracker(ctx, mem, nil)
	tr.SetNote(ctx, "a", "x")
	tr.Reset(ctx)

	loaded, _ := mem.Load(ctx)
	assert.Empty(t, loaded.Notes)
	assert.Empty(t, tr.Snapshot().Notes)
}

func TestState_Merge(t *testing.T) {
	cur := State{
		Progress: map[string]int{"a": 80, "b": 10},
		Notes:    map[string]string{"a": "old"},
	}
	imp := State{
		Progress: map[string]int{"a": 50, "b": 60, "c": 140},
		Notes:    map[string]string{"a": "new", "b": ""},
	}
	got := cur.Merge(imp)

	assert.Equal(t, map[string]int{"a": 80, "b": 60, "c": 100}, got.Progress)
	assert.Equal(t, map[string]string{"a": "new"}, got.Notes)
	assert.Equal(t, 80, cur.Progress["a"])
}

func TestState_Normalize(t *testing.T) {
	s := State{Progress: map[string]int{"a": -5, "b": 120}}.Normalize()
	assert.Equal(t, 0, s.Progress["a"])
	assert.Equal(t, 100, s.Progress["b"])
	assert.NotNil(t, s.Notes)
}
