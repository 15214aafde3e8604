package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func moduleSchema() *Schema {
	return &Schema{
		Name:        "module-outline",
		Description: "A module outline",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":    map[string]any{"type": "string"},
				"sections": map[string]any{"type": "integer", "minimum": 1},
				"level":    map[string]any{"type": "string", "enum": []any{"SMP", "SMA", "SMK"}},
			},
			"required": []any{"title", "sections"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"title":"Termokimia","sections":3,"level":"SMA"}`, false},
		{"valid without optional", `{"title":"Statistika","sections":2}`, false},
		{"missing required", `{"title":"Statistika"}`, true},
		{"wrong type", `{"title":"Statistika","sections":"two"}`, true},
		{"below minimum", `{"title":"Statistika","sections":0}`, true},
		{"invalid enum", `{"title":"Statistika","sections":2,"level":"SD"}`, true},
		{"malformed JSON", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(moduleSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name:        "quiz-nested",
		Description: "Nested quiz items",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"items": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question":     map[string]any{"type": "string"},
							"correctIndex": map[string]any{"type": "integer"},
						},
						"required": []any{"question", "correctIndex"},
					},
				},
			},
			"required": []any{"items"},
		},
	}

	valid := json.RawMessage(`{"items":[{"question":"Modus dari 2,2,3?","correctIndex":0}]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"items":[{"question":"Modus dari 2,2,3?","correctIndex":"nol"}]}`)
	if err := validateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for wrong nested type")
	}
}
