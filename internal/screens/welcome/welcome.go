// Package welcome is the splash shown once at startup. It plays a short
// animation and then swaps itself for the catalog.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/belajar/internal/router"
	"github.com/abhisek/belajar/internal/screen"
	"github.com/abhisek/belajar/internal/ui/theme"
)

const (
	frameRate = 100 * time.Millisecond

	// Frames at which each part appears.
	bannerFrame  = 3
	taglineFrame = 6
	lastFrame    = 20

	tagline = "Learn at your own pace."
)

const book = `   ______ ______
 _/      Y      \_
// ~~ ~~ | ~~ ~  \\
// ~ ~ ~~| ~~~ ~~ \\
//________.|.________\\
'----------'-'----------'`

const banner = `
 ██████╗ ███████╗██╗      █████╗      ██╗ █████╗ ██████╗
 ██╔══██╗██╔════╝██║     ██╔══██╗     ██║██╔══██╗██╔══██╗
 ██████╔╝█████╗  ██║     ███████║     ██║███████║██████╔╝
 ██╔══██╗██╔══╝  ██║     ██╔══██║██   ██║██╔══██║██╔══██╗
 ██████╔╝███████╗███████╗██║  ██║╚█████╔╝██║  ██║██║  ██║
 ╚═════╝ ╚══════╝╚══════╝╚═╝  ╚═╝ ╚════╝ ╚═╝  ╚═╝╚═╝  ╚═╝`

var sparkles = []string{"✦", "✧", "·", "✧"}

type frameMsg struct{}

type WelcomeScreen struct {
	next  func() screen.Screen
	frame int
	done  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New returns the splash. next builds the screen that replaces it.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

// Title is empty so the splash gets the whole terminal.
func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameRate, func(time.Time) tea.Msg { return frameMsg{} })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if w.done {
		return w, nil
	}
	switch msg.(type) {
	case frameMsg:
		w.frame++
		if w.frame >= lastFrame {
			return w, w.leave()
		}
		return w, nextFrame()
	case tea.KeyPressMsg:
		return w, w.leave()
	}
	return w, nil
}

func (w *WelcomeScreen) leave() tea.Cmd {
	w.done = true
	return router.Swap(w.next())
}

func (w *WelcomeScreen) View(width, height int) string {
	art := lipgloss.NewStyle().Foreground(theme.Secondary).Render(book)
	if w.frame > 0 {
		spark := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkles[w.frame%len(sparkles)])
		lines := strings.Split(art, "\n")
		lines[1] = spark + "  " + lines[1] + "  " + spark
		art = strings.Join(lines, "\n")
	}
	parts := []string{art}

	if w.frame >= bannerFrame {
		parts = append(parts, "", renderBanner(width))
	}
	if w.frame >= taglineFrame {
		// Typed out two letters per frame.
		shown := []rune(tagline)
		shown = shown[:min(len(shown), 2*(w.frame-taglineFrame+1))]
		parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(string(shown)))
		parts = append(parts, "", theme.Hint.Render("press any key"))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(parts, "\n"))
}

// renderBanner falls back to spaced letters when the block art is wider
// than the terminal.
func renderBanner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if lipgloss.Width(banner) > width {
		return style.Render("B E L A J A R")
	}
	return style.Render(banner)
}
