package editor

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// FlashcardsSchema describes the flashcards field.
var FlashcardsSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"front": map[string]any{"type": "string"},
			"back":  map[string]any{"type": "string"},
		},
		"required":             []any{"front", "back"},
		"additionalProperties": false,
	},
}

// QuizSchema describes the quiz field.
var QuizSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string"},
			"choices": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 1,
			},
			"correctIndex": map[string]any{"type": "integer", "minimum": 0},
			"explanation":  map[string]any{"type": "string"},
		},
		"required":             []any{"question", "choices", "correctIndex"},
		"additionalProperties": false,
	},
}

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

func schemaFor(field string) (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[string]*jsonschema.Schema)
		for name, def := range map[string]map[string]any{
			FieldFlashcards: FlashcardsSchema,
			FieldQuiz:       QuizSchema,
		} {
			// The compiler wants a decoded JSON value, not Go literals.
			raw, err := json.Marshal(def)
			if err != nil {
				compileErr = fmt.Errorf("marshal schema %s: %w", name, err)
				return
			}
			var doc any
			if err := json.Unmarshal(raw, &doc); err != nil {
				compileErr = fmt.Errorf("parse schema %s: %w", name, err)
				return
			}

			c := jsonschema.NewCompiler()
			url := fmt.Sprintf("schema://belajar/%s.json", name)
			if err := c.AddResource(url, doc); err != nil {
				compileErr = fmt.Errorf("add resource %s: %w", name, err)
				return
			}
			s, err := c.Compile(url)
			if err != nil {
				compileErr = fmt.Errorf("compile %s: %w", name, err)
				return
			}
			compiled[name] = s
		}
	})
	if compileErr != nil {
		return nil, compileErr
	}
	return compiled[field], nil
}
