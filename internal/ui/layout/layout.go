// Package layout draws the frame around the active screen: a header with
// the navigation trail, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/belajar/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 18

	// CompactWidthThreshold is the width below which screens drop
	// secondary details such as module descriptions.
	CompactWidthThreshold = 100

	appName        = "Belajar"
	crumbSeparator = " › "
	hintSeparator  = "   "
)

// KeyHint is one "key  action" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

var bar = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border)

// inner is the text width left inside a bordered bar of width cells.
func inner(width int) int {
	return max(width-bar.GetHorizontalFrameSize()-2, 0)
}

// RenderMinSizeMessage asks for a bigger terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small!\n\nResize to at least %d x %d.\nNow: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

// RenderHeader draws the app name, the trail of open screens and status
// on the right. Leading crumbs are elided when the trail does not fit.
func RenderHeader(trail []string, status string, width int) string {
	room := inner(width)
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(appName)
	right := ansi.Truncate(status, max(room/2, 0), "")
	avail := room - lipgloss.Width(name) - lipgloss.Width(right) - 2

	crumbs := breadcrumb(trail, avail)
	left := name
	if crumbs != "" {
		left += lipgloss.NewStyle().Foreground(theme.TextDim).Render(crumbSeparator) + crumbs
	}

	gap := max(room-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := " " + left + strings.Repeat(" ", gap) + right
	return bar.Width(width).Render(line)
}

// breadcrumb joins trail within avail cells, the last crumb bold.
func breadcrumb(trail []string, avail int) string {
	if len(trail) == 0 || avail <= 0 {
		return ""
	}
	last := len(trail) - 1
	styled := func(from int) string {
		parts := make([]string, 0, len(trail)-from+1)
		if from > 0 {
			parts = append(parts, "…")
		}
		for i := from; i <= last; i++ {
			s := lipgloss.NewStyle().Foreground(theme.TextDim)
			if i == last {
				s = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
			}
			parts = append(parts, s.Render(trail[i]))
		}
		return strings.Join(parts, crumbSeparator)
	}
	for from := 0; from < last; from++ {
		if s := styled(from); lipgloss.Width(s) <= avail {
			return s
		}
	}
	return ansi.Truncate(styled(last), avail, "…")
}

// RenderFooter lists hints left to right, cutting off those that do not
// fit.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Description))
	}
	line := ansi.Truncate(strings.Join(parts, hintSeparator), inner(width), "…")
	return bar.Width(width).Render(" " + line)
}

// RenderFrame stacks header, content and footer into exactly height
// lines. Empty header or footer are left out, which is how focus mode
// hides the chrome.
func RenderFrame(header, content, footer string, width, height int) string {
	body := height - lipgloss.Height(header)*nonEmpty(header) - lipgloss.Height(footer)*nonEmpty(footer)
	body = max(body, 0)

	parts := make([]string, 0, 3)
	if header != "" {
		parts = append(parts, header)
	}
	parts = append(parts, lipgloss.NewStyle().Width(width).Height(body).MaxHeight(body).Render(content))
	if footer != "" {
		parts = append(parts, footer)
	}
	return strings.Join(parts, "\n")
}

func nonEmpty(s string) int {
	if s == "" {
		return 0
	}
	return 1
}
