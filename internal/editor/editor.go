// Package editor implements the content editor: a module is edited as
// plain text fields plus two structured JSON fields, and is only written
// back to the catalog when every field decodes and validates.
package editor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/segmentio/ksuid"

	"github.com/abhisek/belajar/internal/catalog"
)

// Field names used in validation errors.
const (
	FieldFlashcards = "flashcards"
	FieldQuiz       = "quiz"
	FieldModule     = "module"
)

// ValidationError reports an edit that was rejected. The catalog is
// untouched whenever one is returned.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	switch e.Field {
	case FieldFlashcards, FieldQuiz:
		return fmt.Sprintf("invalid JSON in %s: %v", e.Field, e.Err)
	default:
		return fmt.Sprintf("invalid module: %v", e.Err)
	}
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Draft is the editable form of a module.
type Draft struct {
	ID          string
	Title       string
	Level       string
	Description string
	Content     string
	VideoURL    string
	Flashcards  string
	Quiz        string

	// New marks a draft that creates a module instead of replacing one.
	New bool
}

// NewDraft builds a draft from an existing module.
func NewDraft(m catalog.Module) (Draft, error) {
	cards, err := encode(m.Flashcards)
	if err != nil {
		return Draft{}, fmt.Errorf("encode flashcards: %w", err)
	}
	quiz, err := encode(m.Quiz)
	if err != nil {
		return Draft{}, fmt.Errorf("encode quiz: %w", err)
	}
	return Draft{
		ID:          m.ID,
		Title:       m.Title,
		Level:       m.Level,
		Description: m.Description,
		Content:     m.Content,
		VideoURL:    m.VideoURL,
		Flashcards:  cards,
		Quiz:        quiz,
	}, nil
}

// NewModuleDraft returns an empty draft with a fresh id.
func NewModuleDraft(level string) Draft {
	if level == "" || level == catalog.LevelAll {
		level = catalog.LevelSMA
	}
	return Draft{
		ID:         "mod-" + strings.ToLower(ksuid.New().String()),
		Title:      "New module",
		Level:      level,
		Flashcards: "[]",
		Quiz:       "[]",
		New:        true,
	}
}

func encode[T any](items []T) (string, error) {
	if len(items) == 0 {
		return "[]", nil
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Parse decodes and validates a draft into a module.
func Parse(d Draft) (catalog.Module, error) {
	cards, err := decode[catalog.Flashcard](FieldFlashcards, d.Flashcards)
	if err != nil {
		return catalog.Module{}, err
	}
	quiz, err := decode[catalog.QuizItem](FieldQuiz, d.Quiz)
	if err != nil {
		return catalog.Module{}, err
	}

	m := catalog.Module{
		ID:          strings.TrimSpace(d.ID),
		Title:       d.Title,
		Level:       strings.TrimSpace(d.Level),
		Description: d.Description,
		Content:     d.Content,
		VideoURL:    strings.TrimSpace(d.VideoURL),
		Flashcards:  cards,
		Quiz:        quiz,
	}
	if err := catalog.Validate(m); err != nil {
		return catalog.Module{}, &ValidationError{Field: FieldModule, Err: err}
	}
	return m, nil
}

func decode[T any](field, text string) ([]T, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		text = "[]"
	}

	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &ValidationError{Field: field, Err: err}
	}
	schema, err := schemaFor(field)
	if err != nil {
		return nil, &ValidationError{Field: field, Err: err}
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &ValidationError{Field: field, Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.DisallowUnknownFields()
	out := []T{}
	if err := dec.Decode(&out); err != nil {
		return nil, &ValidationError{Field: field, Err: err}
	}
	return out, nil
}

// Save parses the draft and writes it to the catalog. New drafts are
// appended; others replace the module with the same id. On any error the
// catalog is left as it was.
func Save(c *catalog.Catalog, d Draft) (catalog.Module, error) {
	m, err := Parse(d)
	if err != nil {
		return catalog.Module{}, err
	}
	if d.New {
		err = c.Add(m)
	} else {
		err = c.Replace(m)
	}
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, catalog.ErrDuplicateID) {
			return catalog.Module{}, &ValidationError{Field: FieldModule, Err: err}
		}
		return catalog.Module{}, fmt.Errorf("save module %s: %w", m.ID, err)
	}
	return m, nil
}

// Message returns the user-facing text for an editor error.
func Message(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return "Changes not saved: " + err.Error()
}
