package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/belajar/internal/ui/theme"
)

// TextArea wraps bubbles/textarea with a label and a focus border.
type TextArea struct {
	Label string
	Model textarea.Model
}

// NewTextArea creates a blurred multi-line input.
func NewTextArea(label, value string, width, height int) TextArea {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.SetValue(value)
	ta.Blur()
	return TextArea{Label: label, Model: ta}
}

// Focus gives the area keyboard focus.
func (t *TextArea) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextArea) Blur() {
	t.Model.Blur()
}

// Focused reports whether the area has keyboard focus.
func (t TextArea) Focused() bool {
	return t.Model.Focused()
}

// Resize sets the visible size.
func (t *TextArea) Resize(width, height int) {
	t.Model.SetWidth(width)
	t.Model.SetHeight(height)
}

// Update handles messages.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label above a bordered area.
func (t TextArea) View() string {
	border := theme.Border
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Focused() {
		border = theme.Primary
		label = label.Foreground(theme.Primary).Bold(true)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(t.Model.View())
	if t.Label == "" {
		return box
	}
	return label.Render(t.Label) + "\n" + box
}

// Value returns the current text.
func (t TextArea) Value() string {
	return t.Model.Value()
}

// SetValue replaces the text.
func (t *TextArea) SetValue(s string) {
	t.Model.SetValue(s)
}
