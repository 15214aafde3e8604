package assist

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/abhisek/belajar/internal/catalog"
	"github.com/abhisek/belajar/internal/llm"
)

const (
	lessonMarker       = "\nLesson (markdown):\n"
	instructionsMarker = "\nInstructions:\n"
	existingMarker     = "(do not repeat):\n"
)

// OfflineDrafter answers assist requests without a model. It reads the
// "term: definition" list items of the lesson in the prompt and turns
// them into at most count flashcards or questions. It backs the mock
// provider so assist can be tried without an API key.
func OfflineDrafter(count int) func(llm.Request) (json.RawMessage, error) {
	return func(req llm.Request) (json.RawMessage, error) {
		if req.Schema == nil || len(req.Messages) == 0 {
			return nil, errors.New("offline drafter needs a schema request")
		}
		prompt := req.Messages[len(req.Messages)-1].Content
		_, rest, ok := strings.Cut(prompt, lessonMarker)
		if !ok {
			return nil, errors.New("prompt has no lesson")
		}
		lesson, _, _ := strings.Cut(rest, instructionsMarker)

		cards := lessonTerms(lesson)
		seen := existingItems(rest)
		var fresh []catalog.Flashcard
		for _, c := range cards {
			if !seen[strings.ToLower(c.Front)] {
				fresh = append(fresh, c)
			}
		}

		var items any
		switch req.Schema.Name {
		case FlashcardsSchema.Name:
			items = append([]catalog.Flashcard{}, capped(fresh, count)...)
		case QuizSchema.Name:
			items = capped(questionsFrom(fresh, cards), count)
		default:
			return nil, fmt.Errorf("offline drafter: unsupported schema %q", req.Schema.Name)
		}
		return json.Marshal(map[string]any{"items": items})
	}
}

// lessonTerms collects "term: definition" pairs from list items.
func lessonTerms(lesson string) []catalog.Flashcard {
	src := []byte(lesson)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	cards := []catalog.Flashcard{}
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindListItem {
			return ast.WalkContinue, nil
		}
		front, back, ok := strings.Cut(plainText(n, src), ":")
		front, back = strings.TrimSpace(front), strings.TrimSpace(back)
		if ok && front != "" && back != "" {
			cards = append(cards, catalog.Flashcard{Front: front, Back: sentence(back)})
		}
		return ast.WalkSkipChildren, nil
	})
	return cards
}

func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Value(src))
			if c.SoftLineBreak() {
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(c.Value)
		default:
			b.WriteString(plainText(c, src))
		}
	}
	return b.String()
}

// sentence capitalises s and ends it with a full stop.
func sentence(s string) string {
	s = strings.TrimRight(s, " ;,")
	if r := []rune(s); len(r) > 0 {
		s = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}

// existingItems reads the "do not repeat" list of the prompt.
func existingItems(prompt string) map[string]bool {
	seen := map[string]bool{}
	_, list, ok := strings.Cut(prompt, existingMarker)
	if !ok {
		return seen
	}
	for _, line := range strings.Split(list, "\n") {
		item, ok := strings.CutPrefix(line, "- ")
		if !ok {
			break
		}
		seen[strings.ToLower(strings.TrimSpace(item))] = true
	}
	return seen
}

// questionsFrom asks for the definition of each card in cards, with the
// other definitions in pool as distractors. A lesson with fewer than two
// terms yields no questions.
func questionsFrom(cards, pool []catalog.Flashcard) []catalog.QuizItem {
	if len(pool) < 2 {
		return []catalog.QuizItem{}
	}
	items := []catalog.QuizItem{}
	for i, c := range cards {
		var distractors []string
		for _, other := range pool {
			if other.Back != c.Back && len(distractors) < 3 {
				distractors = append(distractors, other.Back)
			}
		}
		if len(distractors) == 0 {
			continue
		}
		correct := i % (len(distractors) + 1)
		choices := make([]string, 0, len(distractors)+1)
		choices = append(choices, distractors[:correct]...)
		choices = append(choices, c.Back)
		choices = append(choices, distractors[correct:]...)

		items = append(items, catalog.QuizItem{
			Question:     fmt.Sprintf("Pernyataan yang tepat tentang %s adalah…", c.Front),
			Choices:      choices,
			CorrectIndex: correct,
			Explanation:  fmt.Sprintf("%s: %s", c.Front, c.Back),
		})
	}
	return items
}

func capped[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
