package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/belajar/internal/ui/theme"
)

// MultiChoice is one quiz question. Arrows move the cursor and enter or
// space picks; the option letter picks directly. After Revealed is set
// input is ignored and the view marks right and wrong.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Chosen       int // -1 until picked
	Revealed     bool

	cursor Cursor
}

func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	m := MultiChoice{Question: question, Options: options, CorrectIndex: correctIndex, Chosen: -1}
	m.cursor.SetCount(len(options))
	return m
}

func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || m.Revealed {
		return m, nil
	}
	if c, moved := m.cursor.Update(key); moved {
		m.cursor = c
		return m, nil
	}

	switch s := key.String(); {
	case s == "enter" || s == "space":
		if m.cursor.Valid() {
			m.Chosen = m.cursor.Index
		}
	case len(s) == 1:
		if i := strings.IndexByte(labels, s[0]|0x20); i >= 0 && i < len(m.Options) {
			m.Chosen = i
			m.cursor.Index = i
		}
	}
	return m, nil
}

func (m MultiChoice) IsCorrect() bool {
	return m.Chosen >= 0 && m.Chosen == m.CorrectIndex
}

func (m MultiChoice) View(focused bool) string {
	lines := []string{lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question)}
	for i, opt := range m.Options {
		lines = append(lines, m.optionStyle(i, focused).Render(m.option(i, opt, focused)))
	}
	return strings.Join(lines, "\n") + "\n"
}

const labels = "abcdefghijklmnopqrstuvwxyz"

func (m MultiChoice) option(i int, text string, focused bool) string {
	pointer, bullet := "  ", "○ "
	if focused && !m.Revealed && i == m.cursor.Index {
		pointer = "▸ "
	}
	if i == m.Chosen {
		bullet = "● "
	}
	label := "?"
	if i < len(labels) {
		label = strings.ToUpper(labels[i : i+1])
	}
	return pointer + bullet + label + ") " + text
}

func (m MultiChoice) optionStyle(i int, focused bool) lipgloss.Style {
	switch {
	case m.Revealed && i == m.CorrectIndex:
		return theme.Correct
	case m.Revealed && i == m.Chosen:
		return theme.Incorrect
	case m.Revealed:
		return lipgloss.NewStyle().Foreground(theme.TextDim)
	case focused && i == m.cursor.Index:
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(theme.Text)
	}
}
