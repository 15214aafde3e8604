package module

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// lessonView caches the rendered lesson per width and scrolls it.
type lessonView struct {
	width    int
	rendered []string
	offset   int
}

func (l *lessonView) update(msg tea.KeyPressMsg) {
	switch msg.String() {
	case "up", "k":
		l.offset--
	case "down", "j":
		l.offset++
	case "pgup":
		l.offset -= 10
	case "pgdown", "space":
		l.offset += 10
	case "home", "g":
		l.offset = 0
	}
	l.offset = max(l.offset, 0)
}

func (l *lessonView) view(render func(int) string, width, height int) string {
	if l.rendered == nil || l.width != width {
		l.width = width
		l.rendered = strings.Split(render(width), "\n")
	}
	maxOffset := max(len(l.rendered)-height, 0)
	l.offset = min(l.offset, maxOffset)
	end := min(l.offset+height, len(l.rendered))
	return strings.Join(l.rendered[l.offset:end], "\n")
}
