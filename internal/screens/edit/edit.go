// Package edit is the teacher-mode module editor screen.
package edit

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/belajar/internal/assist"
	"github.com/abhisek/belajar/internal/editor"
	"github.com/abhisek/belajar/internal/router"
	"github.com/abhisek/belajar/internal/screen"
	"github.com/abhisek/belajar/internal/screens/deps"
	"github.com/abhisek/belajar/internal/ui/components"
	"github.com/abhisek/belajar/internal/ui/layout"
	"github.com/abhisek/belajar/internal/ui/theme"
)

// Field order for focus cycling.
const (
	fieldID = iota
	fieldTitle
	fieldLevel
	fieldDescription
	fieldVideo
	fieldContent
	fieldFlashcards
	fieldQuiz
	fieldCount
)

type assistDoneMsg struct {
	kind assist.Kind
	text string
	err  error
}

// EditorScreen edits one module draft.
type EditorScreen struct {
	d       *deps.Deps
	isNew   bool
	inputs  [fieldVideo + 1]components.TextInput
	areas   [fieldCount - fieldContent]components.TextArea
	focus   int
	status  string
	failed  bool
	saved   bool
	pending bool
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)
var _ screen.InputCapturer = (*EditorScreen)(nil)

// New creates an editor for the draft.
func New(d *deps.Deps, draft editor.Draft) *EditorScreen {
	s := &EditorScreen{d: d, isNew: draft.New}
	s.inputs[fieldID] = components.NewTextInput("Id", "module id", draft.ID, 40)
	s.inputs[fieldTitle] = components.NewTextInput("Title", "", draft.Title, 60)
	s.inputs[fieldLevel] = components.NewTextInput("Level", "SMP, SMA, SMK", draft.Level, 12)
	s.inputs[fieldDescription] = components.NewTextInput("Description", "", draft.Description, 80)
	s.inputs[fieldVideo] = components.NewTextInput("Video URL", "optional", draft.VideoURL, 80)
	s.areas[fieldContent-fieldContent] = components.NewTextArea("Lesson (markdown)", draft.Content, 60, 6)
	s.areas[fieldFlashcards-fieldContent] = components.NewTextArea("Flashcards (JSON)", draft.Flashcards, 60, 6)
	s.areas[fieldQuiz-fieldContent] = components.NewTextArea("Quiz (JSON)", draft.Quiz, 60, 6)
	s.focus = fieldTitle
	if s.isNew {
		s.focus = fieldID
	}
	return s
}

func (s *EditorScreen) Init() tea.Cmd {
	return s.setFocus(s.focus)
}

func (s *EditorScreen) Title() string {
	if s.isNew {
		return "New module"
	}
	return "Edit " + s.inputs[fieldID].Value()
}

func (s *EditorScreen) CapturingInput() bool {
	return true
}

func (s *EditorScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Save"},
	}
	if s.d.Assist != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+G", Description: "Draft cards/quiz"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Close"})
}

// Draft returns the current field values.
func (s *EditorScreen) Draft() editor.Draft {
	return editor.Draft{
		ID:          s.inputs[fieldID].Value(),
		Title:       s.inputs[fieldTitle].Value(),
		Level:       s.inputs[fieldLevel].Value(),
		Description: s.inputs[fieldDescription].Value(),
		VideoURL:    s.inputs[fieldVideo].Value(),
		Content:     s.areas[fieldContent-fieldContent].Value(),
		Flashcards:  s.areas[fieldFlashcards-fieldContent].Value(),
		Quiz:        s.areas[fieldQuiz-fieldContent].Value(),
		New:         s.isNew,
	}
}

// StatusText returns the last save or assist message.
func (s *EditorScreen) StatusText() string {
	return s.status
}

func (s *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case assistDoneMsg:
		s.pending = false
		if msg.err != nil {
			s.setStatus("Draft failed: "+assistMessage(msg.err), true)
			return s, nil
		}
		field := fieldFlashcards
		if msg.kind == assist.KindQuiz {
			field = fieldQuiz
		}
		s.areas[field-fieldContent].SetValue(msg.text)
		s.setStatus("Drafted "+string(msg.kind)+" added. Review, then Ctrl+S to save.", false)
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, router.Back()
		case "tab":
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab":
			return s, s.setFocus((s.focus - 1 + fieldCount) % fieldCount)
		case "ctrl+s":
			s.save()
			return s, nil
		case "ctrl+g":
			return s, s.suggest()
		}
	}

	var cmd tea.Cmd
	if s.focus < fieldContent {
		if s.focus == fieldID && !s.isNew {
			return s, nil
		}
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	} else {
		i := s.focus - fieldContent
		s.areas[i], cmd = s.areas[i].Update(msg)
	}
	return s, cmd
}

func (s *EditorScreen) setFocus(f int) tea.Cmd {
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
	for i := range s.areas {
		s.areas[i].Blur()
	}
	s.focus = f
	if f < fieldContent {
		return s.inputs[f].Focus()
	}
	return s.areas[f-fieldContent].Focus()
}

func (s *EditorScreen) setStatus(text string, failed bool) {
	s.status = text
	s.failed = failed
}

func (s *EditorScreen) save() {
	log := s.d.Logger()
	m, err := editor.Save(s.d.Catalog, s.Draft())
	if err != nil {
		log.Warn("module edit rejected", "error", err)
		s.setStatus(editor.Message(err), true)
		return
	}

	s.saved = true
	s.isNew = false
	s.inputs[fieldID].SetValue(m.ID)
	log.Info("module saved", "module", m.ID)

	written, err := s.d.PersistCatalog()
	switch {
	case err != nil:
		s.setStatus("Saved for this session; catalog file not written: "+err.Error(), true)
	case written:
		s.setStatus("Saved.", false)
	default:
		s.setStatus("Saved for this session.", false)
	}
}

func (s *EditorScreen) suggest() tea.Cmd {
	if s.d.Assist == nil {
		s.setStatus("Content assist is off: no LLM provider configured.", true)
		return nil
	}
	if s.pending {
		return nil
	}

	// Draft from the text on screen, even when it is not saved yet.
	m, err := editor.Parse(s.Draft())
	if err != nil {
		s.setStatus(editor.Message(err), true)
		return nil
	}

	kind := assist.KindFlashcards
	if s.focus == fieldQuiz {
		kind = assist.KindQuiz
	}
	s.pending = true
	s.setStatus("Drafting "+string(kind)+" with "+s.d.Assist.ModelID()+"...", false)

	svc := s.d.Assist
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.AssistTimeout)
		defer cancel()
		text, err := svc.Suggest(ctx, m, kind)
		return assistDoneMsg{kind: kind, text: text, err: err}
	}
}

func assistMessage(err error) string {
	if errors.Is(err, assist.ErrNoContent) {
		return "write the lesson first"
	}
	return err.Error()
}

func (s *EditorScreen) View(width, height int) string {
	inner := max(width-4, 30)
	areaHeight := max((height-len(s.inputs)-12)/3, 3)

	var b strings.Builder
	for i := range s.inputs {
		b.WriteString(s.inputs[i].View())
		b.WriteString("\n")
	}
	for i := range s.areas {
		s.areas[i].Resize(inner-2, areaHeight)
		b.WriteString(s.areas[i].View())
		b.WriteString("\n")
	}
	if s.status != "" {
		style := lipgloss.NewStyle().Foreground(theme.Success)
		if s.failed {
			style = theme.ErrorText
		}
		b.WriteString(style.Width(inner).Render(s.status))
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(b.String())
}

// Saved reports whether the draft has been written to the catalog.
func (s *EditorScreen) Saved() bool {
	return s.saved
}
