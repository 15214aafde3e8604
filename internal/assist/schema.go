package assist

import (
	"maps"
	"slices"

	"github.com/samber/lo"

	"github.com/abhisek/belajar/internal/llm"
)

// FlashcardsSchema asks for recall pairs derived from a lesson.
var FlashcardsSchema = &llm.Schema{
	Name:        "flashcards",
	Description: "Flashcards (term and short answer) drawn from a lesson",
	Definition: itemsOf(object(map[string]any{
		"front": stringProp("Term or prompt, a few words"),
		"back":  stringProp("Answer in one short sentence"),
	})),
}

// QuizSchema asks for multiple-choice questions derived from a lesson.
var QuizSchema = &llm.Schema{
	Name:        "quiz-items",
	Description: "Multiple-choice questions with exactly one correct choice",
	Definition: itemsOf(object(map[string]any{
		"question": stringProp("The question text"),
		"choices": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Four answer choices",
		},
		"correctIndex": map[string]any{
			"type":        "integer",
			"description": "Zero-based index of the correct choice",
		},
		"explanation": stringProp("Why the correct choice is right, one or two sentences"),
	})),
}

// itemsOf wraps item in the {"items": [...]} envelope every reply uses.
func itemsOf(item map[string]any) map[string]any {
	return object(map[string]any{
		"items": map[string]any{"type": "array", "items": item},
	})
}

// object is a closed object schema with every property required.
func object(props map[string]any) map[string]any {
	required := lo.Map(slices.Sorted(maps.Keys(props)), func(name string, _ int) any { return name })
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}
