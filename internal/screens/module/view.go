package module

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/belajar/internal/flashcards"
	"github.com/abhisek/belajar/internal/ui/theme"
)

func (s *ModuleScreen) View(width, height int) string {
	if !s.found {
		return theme.ErrorText.Render(fmt.Sprintf("\n  Module %q not found.", s.id))
	}

	inner := max(width-4, 20)
	strip := s.tabs.View(width)
	bodyHeight := max(height-lipgloss.Height(strip)-1, 1)

	var body string
	switch s.tabs.Active {
	case TabLesson:
		body = s.lesson.view(func(w int) string { return s.md.Render(s.mod.Content, w) }, inner, bodyHeight)
	case TabQuiz:
		body = s.quizView(inner)
	case TabCards:
		body = s.cardsView(inner)
	case TabVideo:
		body = s.videoView()
	case TabNotes:
		s.notes.Resize(min(inner, 100), max(bodyHeight-4, 3))
		body = s.notes.View()
	}

	return strip + "\n" + lipgloss.NewStyle().PaddingLeft(2).Render(body)
}

func (s *ModuleScreen) quizView(width int) string {
	t := &s.quiz
	if t.sess.Len() == 0 {
		if !t.sess.Graded() {
			return theme.Hint.Render(NoQuiz)
		}
		return theme.Hint.Render(NoQuiz) + "\n\n" + t.scoreLine()
	}

	var b strings.Builder
	header := fmt.Sprintf("Question %d / %d", t.current+1, t.sess.Len())
	if !t.sess.Graded() {
		header += fmt.Sprintf("   answered %d", t.sess.Answered())
	}
	b.WriteString(theme.Subtitle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(t.choices[t.current].View(!t.sess.Graded())))

	if !t.sess.Graded() {
		return b.String()
	}

	item := t.sess.Item(t.current)
	if item.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.TextDim).Render(item.Explanation))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(t.scoreLine())
	return b.String()
}

func (t *quizTab) scoreLine() string {
	r := t.result
	style := theme.Correct
	if r.Total == 0 || r.Correct < r.Total {
		style = theme.Incorrect
	}
	return style.Render(fmt.Sprintf("Score: %d / %d (%d%%)", r.Correct, r.Total, r.Percent)) +
		theme.Hint.Render(fmt.Sprintf("   progress %d%%", t.progressAfter))
}

func (s *ModuleScreen) cardsView(width int) string {
	if s.deck.Empty() {
		return theme.Hint.Render(NoCards)
	}

	pos, total := s.deck.Position()
	badge := theme.Badge.Render(fmt.Sprintf("%d / %d", pos, total))
	side := "front"
	border := theme.Border
	if s.deck.Face() == flashcards.Back {
		side = "back"
		border = theme.Secondary
	}
	mode := "in order"
	if s.deck.Shuffled() {
		mode = "shuffled"
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(min(width, 60)).
		Padding(2, 3).
		Align(lipgloss.Center).
		Bold(s.deck.Face() == flashcards.Front).
		Render(s.deck.Text())

	return badge + "  " + theme.Hint.Render(side+", "+mode) + "\n\n" + card
}

func (s *ModuleScreen) videoView() string {
	if !s.mod.HasVideo() {
		return theme.Hint.Render(NoVideo)
	}
	return theme.Subtitle.Render("Video") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Secondary).Underline(true).Render(s.mod.VideoURL)
}
