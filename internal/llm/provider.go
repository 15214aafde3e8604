// Package llm talks to the language model vendors behind content assist.
// Every vendor sits behind Provider; logging and retry are layered on top
// by NewProvider.
package llm

import (
	"context"
	"encoding/json"
)

// Provider drafts structured content from a prompt.
type Provider interface {
	// Generate sends req and returns the reply. With req.Schema set the
	// reply Content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID names the model requests are sent to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks the vendor for JSON output of this shape.
	Schema *Schema

	MaxTokens int

	// Temperature in 0..1. Zero leaves the vendor default.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema document.
type Schema struct {
	// Name is sent as the tool or schema name, kebab-case ("quiz-items").
	Name        string
	Description string
	Definition  map[string]any
}

// Stop reasons, normalised across vendors.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish turns a vendor reply into a Response. A reply cut off by the
// token limit can't hold complete JSON, so it is reported as
// ErrMaxTokensExceeded before schema validation runs.
func finish(req Request, content json.RawMessage, model, stop string, usage Usage) (*Response, error) {
	if req.Schema != nil && stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// resolveModel maps a short alias to the vendor model id. Unknown names
// are passed through so full ids work too.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
