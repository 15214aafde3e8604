package browse

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/belajar/internal/progress"
	"github.com/abhisek/belajar/internal/router"
	"github.com/abhisek/belajar/internal/screens/edit"
	modulescreen "github.com/abhisek/belajar/internal/screens/module"
	"github.com/abhisek/belajar/internal/screens/screentest"
)

func update(s *BrowseScreen) func(tea.Msg) {
	return func(msg tea.Msg) { s.Update(msg) }
}

func pushed(t *testing.T, cmd tea.Cmd) router.PushScreenMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok, "expected PushScreenMsg")
	return msg
}

func TestBrowse_ListsAllModules(t *testing.T) {
	d, _, _ := screentest.New(t)
	s := New(d)

	assert.Len(t, s.Results(), 2)
	assert.Equal(t, "all", s.Level())
	assert.Contains(t, s.View(100, 30), "Termokimia Dasar")
}

func TestBrowse_SearchFilters(t *testing.T) {
	d, _, _ := screentest.New(t)
	s := New(d)

	s.Update(screentest.Key('/'))
	require.True(t, s.CapturingInput())
	screentest.Type(update(s), "STATIST")

	require.Len(t, s.Results(), 1)
	assert.Equal(t, "statistika", s.Results()[0].ID)

	s.Update(screentest.Special(tea.KeyEscape))
	assert.False(t, s.CapturingInput())
	assert.Len(t, s.Results(), 1, "closing the search keeps the query")
}

func TestBrowse_SearchNoMatch(t *testing.T) {
	d, _, _ := screentest.New(t)
	s := New(d)

	s.Update(screentest.Key('/'))
	screentest.Type(update(s), "zzz")

	assert.Empty(t, s.Results())
	assert.Contains(t, s.View(100, 30), "No modules match.")
}

func TestBrowse_LevelSelector(t *testing.T) {
	d, _, _ := screentest.New(t)
	s := New(d)

	s.Update(screentest.Special(tea.KeyRight))
	assert.Equal(t, "SMP", s.Level())
	require.Len(t, s.Results(), 1)
	assert.Equal(t, "statistika", s.Results()[0].ID)

	s.Update(screentest.Special(tea.KeyRight))
	assert.Equal(t, "SMA", s.Level())
	assert.Equal(t, "termokimia", s.Results()[0].ID)

	s.Update(screentest.Special(tea.KeyRight))
	assert.Equal(t, "SMK", s.Level())
	assert.Empty(t, s.Results())

	s.Update(screentest.Special(tea.KeyLeft))
	s.Update(screentest.Special(tea.KeyLeft))
	s.Update(screentest.Special(tea.KeyLeft))
	assert.Equal(t, "all", s.Level())
}

func TestBrowse_EnterOpensModule(t *testing.T) {
	d, _, _ := screentest.New(t)
	s := New(d)

	s.Update(screentest.Special(tea.KeyDown))
	_, cmd := s.Update(screentest.Special(tea.KeyEnter))

	msg := pushed(t, cmd)
	ms, ok := msg.Screen.(*modulescreen.ModuleScreen)
	require.True(t, ok)
	assert.Equal(t, "Statistika Ringkas", ms.Title())
}

func TestBrowse_EditRequiresTeacherMode(t *testing.T) {
	d, _, _ := screentest.New(t)
	s := New(d)

	_, cmd := s.Update(screentest.Key('e'))
	assert.Nil(t, cmd)

	s.Update(screentest.Key('t'))
	require.True(t, d.Teacher)

	_, cmd = s.Update(screentest.Key('e'))
	es, ok := pushed(t, cmd).Screen.(*edit.EditorScreen)
	require.True(t, ok)
	assert.Equal(t, "termokimia", es.Draft().ID)
	assert.False(t, es.Draft().New)
}

func TestBrowse_NewModuleUsesLevelFilter(t *testing.T) {
	d, _, _ := screentest.New(t)
	d.Teacher = true
	s := New(d)

	s.Update(screentest.Special(tea.KeyRight)) // SMP
	_, cmd := s.Update(screentest.Key('n'))

	es, ok := pushed(t, cmd).Screen.(*edit.EditorScreen)
	require.True(t, ok)
	assert.True(t, es.Draft().New)
	assert.Equal(t, "SMP", es.Draft().Level)
}

func TestBrowse_ResumePicksUpNewModules(t *testing.T) {
	d, _, _ := screentest.New(t)
	s := New(d)

	m, _ := d.Catalog.Get("statistika")
	m.ID = "peluang"
	m.Title = "Peluang"
	require.NoError(t, d.Catalog.Add(m))

	assert.Len(t, s.Results(), 2)
	s.Resume()
	assert.Len(t, s.Results(), 3)
}

func TestBrowse_ShowsProgress(t *testing.T) {
	d, _, _ := screentest.New(t)
	s := New(d)

	d.Tracker.Merge(context.Background(), progress.State{Progress: map[string]int{"termokimia": 50}})

	assert.Contains(t, s.View(100, 30), "50%")
}
