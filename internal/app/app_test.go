package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/belajar/internal/router"
	"github.com/abhisek/belajar/internal/screens/screentest"
)

func newTestApp(t *testing.T) AppModel {
	t.Helper()
	d, _, _ := screentest.New(t)
	m := newAppModel(Options{Deps: d, SkipWelcome: true})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(AppModel)
}

func send(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(AppModel)
	// Follow navigation commands so the router sees them.
	if cmd != nil {
		switch next := cmd().(type) {
		case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg:
			updated, _ = m.Update(next)
			m = updated.(AppModel)
		}
	}
	return m
}

func content(m AppModel) string {
	return ansi.Strip(m.render())
}

func TestApp_HeaderShowsBrandAndTitle(t *testing.T) {
	m := newTestApp(t)
	view := content(m)
	if !strings.Contains(view, "Belajar") || !strings.Contains(view, "Modules") {
		t.Errorf("header missing brand or title:\n%s", view)
	}
}

func TestApp_FocusModeHidesChrome(t *testing.T) {
	m := newTestApp(t)
	m = send(t, m, tea.KeyPressMsg{Code: 'f', Text: "f"})
	if !m.Focused() {
		t.Fatal("f should enable focus mode")
	}
	view := content(m)
	if strings.Contains(view, "Ctrl+C") {
		t.Error("footer should be hidden in focus mode")
	}
	if !strings.Contains(view, "Termokimia Dasar") {
		t.Error("content should remain visible in focus mode")
	}

	m = send(t, m, tea.KeyPressMsg{Code: 'f', Text: "f"})
	if m.Focused() {
		t.Error("second f should leave focus mode")
	}
}

func TestApp_FocusKeyTypedIntoSearch(t *testing.T) {
	m := newTestApp(t)
	m = send(t, m, tea.KeyPressMsg{Code: '/', Text: "/"})
	m = send(t, m, tea.KeyPressMsg{Code: 'f', Text: "f"})
	if m.Focused() {
		t.Error("f typed into the search field must not toggle focus mode")
	}
}

func TestApp_OpenModuleAndBack(t *testing.T) {
	m := newTestApp(t)
	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	if !strings.Contains(content(m), "Termokimia Dasar") {
		t.Error("module title should be in the header")
	}
	if !strings.Contains(content(m), "0%") {
		t.Error("module progress should be in the header")
	}

	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 {
		t.Errorf("depth after esc = %d, want 1", m.router.Depth())
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	m := newTestApp(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestApp_TooSmall(t *testing.T) {
	m := newTestApp(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(content(updated.(AppModel)), "Terminal too small") {
		t.Error("expected min size message")
	}
}
