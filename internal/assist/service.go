// Package assist drafts flashcards and quiz questions for a module with an
// LLM. Drafts are plain editor text: they reach the catalog only through
// the editor's validation.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/belajar/internal/catalog"
	"github.com/abhisek/belajar/internal/editor"
	"github.com/abhisek/belajar/internal/llm"
)

// Kind selects what to draft.
type Kind string

const (
	KindFlashcards Kind = "flashcards"
	KindQuiz       Kind = "quiz"
)

// ErrNoContent is returned for modules without lesson text to draw from.
var ErrNoContent = errors.New("module has no lesson content")

// Service drafts content through an LLM provider.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a content assist service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// ModelID reports the model behind the service.
func (s *Service) ModelID() string {
	return s.provider.ModelID()
}

// Suggest drafts new items for m and returns the editor field text holding
// the module's existing items followed by the drafted ones.
func (s *Service) Suggest(ctx context.Context, m catalog.Module, kind Kind) (string, error) {
	if strings.TrimSpace(m.Content) == "" {
		return "", ErrNoContent
	}

	schema := FlashcardsSchema
	if kind == KindQuiz {
		schema = QuizSchema
	}

	ctx = llm.WithPurpose(ctx, "assist-"+string(kind))
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(m, kind, s.cfg)}},
		Schema:      schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%s generation: %w", kind, err)
	}

	var out struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse %s response: %w", kind, err)
	}

	merged := m.Clone()
	switch kind {
	case KindFlashcards:
		var cards []catalog.Flashcard
		if err := decodeItems(out.Items, &cards); err != nil {
			return "", err
		}
		merged.Flashcards = append(merged.Flashcards, cards...)
	case KindQuiz:
		var items []catalog.QuizItem
		if err := decodeItems(out.Items, &items); err != nil {
			return "", err
		}
		merged.Quiz = append(merged.Quiz, items...)
	default:
		return "", fmt.Errorf("unknown assist kind %q", kind)
	}

	draft, err := editor.NewDraft(merged)
	if err != nil {
		return "", err
	}
	if _, err := editor.Parse(draft); err != nil {
		return "", fmt.Errorf("drafted %s rejected: %w", kind, err)
	}
	if kind == KindQuiz {
		return draft.Quiz, nil
	}
	return draft.Flashcards, nil
}

func decodeItems(raw json.RawMessage, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode drafted items: %w", err)
	}
	return nil
}
