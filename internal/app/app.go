package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/belajar/internal/router"
	"github.com/abhisek/belajar/internal/screen"
	"github.com/abhisek/belajar/internal/screens/browse"
	"github.com/abhisek/belajar/internal/screens/deps"
	"github.com/abhisek/belajar/internal/screens/welcome"
	"github.com/abhisek/belajar/internal/ui/layout"
)

// Options configures the application.
type Options struct {
	Deps *deps.Deps

	// SkipWelcome starts directly on the catalog screen.
	SkipWelcome bool

	// Focus starts in focus mode.
	Focus bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   *deps.Deps
	focus  bool
	width  int
	height int
}

// newAppModel creates the root model, starting on the welcome screen
// unless opts say otherwise.
func newAppModel(opts Options) AppModel {
	d := opts.Deps
	var first screen.Screen = browse.New(d)
	if !opts.SkipWelcome {
		first = welcome.New(func() screen.Screen { return browse.New(d) })
	}
	return AppModel{
		router: router.New(first),
		deps:   d,
		focus:  opts.Focus,
	}
}

func (m AppModel) Init() tea.Cmd {
	if a := m.router.Active(); a != nil {
		return a.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.capturing() {
			switch msg.String() {
			case "f":
				m.focus = !m.focus
				m.deps.Logger().Debug("focus mode toggled", "on", m.focus)
				return m, nil
			case "esc":
				if m.router.Depth() > 1 {
					return m, router.Back()
				}
				return m, nil
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

// Focused reports whether focus mode hides the header and footer.
func (m AppModel) Focused() bool {
	return m.focus
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	if active == nil {
		return ""
	}

	// Welcome owns the whole terminal, as does focus mode.
	if active.Title() == "" || m.focus {
		return layout.RenderFrame("", m.router.View(m.width, m.height), "", m.width, m.height)
	}

	status := ""
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status(m.width)
	}
	header := layout.RenderHeader(m.router.Trail(), status, m.width)

	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		opts.Deps.Logger().Error("program exited with error", "error", err)
		return err
	}
	return nil
}
