package assist

import (
	"fmt"
	"strings"

	"github.com/abhisek/belajar/internal/catalog"
)

const systemPrompt = `You are a teacher preparing study material for Indonesian secondary school students (SMP, SMA, SMK). Write in the same language as the lesson. Stay strictly within the lesson content.`

func buildUserMessage(m catalog.Module, kind Kind, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Module: %s\n", m.Title)
	fmt.Fprintf(&b, "Level: %s\n", m.Level)
	if m.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", m.Description)
	}

	content := m.Content
	if cfg.MaxContentChars > 0 && len(content) > cfg.MaxContentChars {
		content = content[:cfg.MaxContentChars]
	}
	b.WriteString("\nLesson (markdown):\n")
	b.WriteString(content)
	b.WriteString("\n")

	switch kind {
	case KindFlashcards:
		if len(m.Flashcards) > 0 {
			b.WriteString("\nExisting flashcards (do not repeat):\n")
			for _, c := range m.Flashcards {
				fmt.Fprintf(&b, "- %s\n", c.Front)
			}
		}
		fmt.Fprintf(&b, `
Instructions:
Write %d flashcards. The front is a key term or short prompt. The back answers it in one short sentence taken from the lesson.`, cfg.Count)

	case KindQuiz:
		if len(m.Quiz) > 0 {
			b.WriteString("\nExisting questions (do not repeat):\n")
			for _, q := range m.Quiz {
				fmt.Fprintf(&b, "- %s\n", q.Question)
			}
		}
		fmt.Fprintf(&b, `
Instructions:
Write %d multiple-choice questions.
1. Each question has exactly four choices and exactly one correct choice.
2. correctIndex is the zero-based position of the correct choice.
3. Vary the position of the correct choice across questions.
4. The explanation says why the correct choice is right.`, cfg.Count)
	}

	return b.String()
}
