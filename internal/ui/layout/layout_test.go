package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	assert.False(t, IsTooSmall(80, 24))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
	assert.True(t, IsTooSmall(MinWidth-1, 24))
	assert.True(t, IsTooSmall(80, MinHeight-1))
}

func TestRenderHeaderShowsTrail(t *testing.T) {
	h := ansi.Strip(RenderHeader([]string{"Modules", "Termokimia Dasar"}, "40%", 100))

	assert.Contains(t, h, "Belajar › Modules › Termokimia Dasar")
	assert.Contains(t, h, "40%")
	for _, line := range strings.Split(h, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 100)
	}
}

func TestRenderHeaderElidesLeadingCrumbs(t *testing.T) {
	trail := []string{"Modules", "Statistika Ringkas", "Edit statistika"}
	h := ansi.Strip(RenderHeader(trail, "", 50))

	assert.Contains(t, h, "Edit statistika")
	assert.Contains(t, h, "…")
	assert.NotContains(t, h, "Modules")
}

func TestBreadcrumb(t *testing.T) {
	assert.Empty(t, breadcrumb(nil, 40))
	assert.Empty(t, breadcrumb([]string{"Modules"}, 0))
	assert.Equal(t, "Modules › History", ansi.Strip(breadcrumb([]string{"Modules", "History"}, 40)))
	assert.Equal(t, "… › History", ansi.Strip(breadcrumb([]string{"Modules", "History"}, 12)))
}

func TestRenderFooterTruncates(t *testing.T) {
	hints := []KeyHint{{"/", "Search"}, {"Enter", "Open"}, {"p", "Progress"}, {"h", "History"}, {"q", "Quit"}}

	wide := ansi.Strip(RenderFooter(hints, 120))
	assert.Contains(t, wide, "q Quit")

	narrow := ansi.Strip(RenderFooter(hints, 30))
	assert.Contains(t, narrow, "/ Search")
	assert.NotContains(t, narrow, "q Quit")
	assert.Contains(t, narrow, "…")
}

func TestRenderFrameHeight(t *testing.T) {
	focus := RenderFrame("", "body", "", 40, 10)
	assert.Equal(t, 10, lipgloss.Height(focus))
	assert.Contains(t, focus, "body")

	header := RenderHeader([]string{"Modules"}, "", 60)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 60)
	assert.Equal(t, 20, lipgloss.Height(RenderFrame(header, "body", footer, 60, 20)))
}

func TestRenderMinSizeMessage(t *testing.T) {
	msg := ansi.Strip(RenderMinSizeMessage(40, 10))
	assert.Contains(t, msg, "Terminal too small")
	assert.Contains(t, msg, "Now: 40 x 10")
}
