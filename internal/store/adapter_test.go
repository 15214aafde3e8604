package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/abhisek/belajar/internal/progress"
)

func TestFileAdapter_MissingFile(t *testing.T) {
	fa := NewFileAdapter(filepath.Join(t.TempDir(), "state.json"))
	s, err := fa.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, s.Progress)
	assert.NotNil(t, s.Notes)
}

func TestFileAdapter_PreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark","count":3}`), 0o644))

	fa := NewFileAdapter(path)
	ctx := context.Background()
	want := progress.State{
		Progress: map[string]int{"termokimia": 67},
		Notes:    map[string]string{"termokimia": "catatan"},
	}
	require.NoError(t, fa.Save(ctx, want))

	doc, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", gjson.GetBytes(doc, "theme").String())
	assert.Equal(t, int64(3), gjson.GetBytes(doc, "count").Int())

	got, err := fa.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileAdapter_StringEncodedValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	doc := `{"belajar-state-v1": "{\"progress\":{\"a\":20},\"notes\":{}}"}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	got, err := NewFileAdapter(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, got.Progress["a"])
}

func TestFileAdapter_CorruptValueDegrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"belajar-state-v1": "not json"}`), 0o644))

	ctx := context.Background()
	tr := progress.NewTracker(ctx, NewFileAdapter(path), nil)
	assert.Equal(t, 0, tr.Progress("a"))
	assert.Empty(t, tr.Snapshot().Notes)
}

func TestFileAdapter_NonObjectDocumentReplaced(t *testing.T) {
	for _, doc := range []string{`[]`, `[1,2]`, `"x"`, `42`, `null`} {
		t.Run(doc, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state.json")
			require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

			ctx := context.Background()
			tr := progress.NewTracker(ctx, NewFileAdapter(path), nil)
			tr.SetNote(ctx, "statistika", "median = nilai tengah")

			got, err := NewFileAdapter(path).Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, "median = nilai tengah", got.Notes["statistika"])
		})
	}
}

func TestRedisAdapter_InvalidURL(t *testing.T) {
	_, err := NewRedisAdapter("")
	assert.Error(t, err)

	_, err = NewRedisAdapter("not-a-url")
	assert.Error(t, err)
}

func TestRedisAdapter_UnreachableDegrades(t *testing.T) {
	if testing.Short() {
		t.Skip("dials a closed port")
	}
	ra, err := NewRedisAdapter("redis://localhost:59999/0")
	require.NoError(t, err)
	defer ra.Close()

	ctx := context.Background()
	_, err = ra.Load(ctx)
	assert.Error(t, err)

	tr := progress.NewTracker(ctx, ra, nil)
	tr.SetNote(ctx, "a", "kept in memory")
	assert.Equal(t, "kept in memory", tr.Note("a"))
}
