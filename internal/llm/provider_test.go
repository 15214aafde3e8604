package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFlashcards = `{"items":[{"front":"Reaksi eksoterm","back":"Reaksi yang melepas kalor ke lingkungan"}]}`

func flashcardSchema() *Schema {
	return &Schema{
		Name:        "flashcards",
		Description: "Flashcards drafted from a lesson",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"items": map[string]any{
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
				},
			},
			"required":             []any{"items"},
			"additionalProperties": false,
		},
	}
}

func flashcardRequest() Request {
	return Request{
		System:    "You write study material for Indonesian secondary school students.",
		Messages:  []Message{{Role: RoleUser, Content: "Lesson (markdown):\n# Termokimia\n\nInstructions:\nDraft flashcards."}},
		Schema:    flashcardSchema(),
		MaxTokens: 512,
	}
}

func TestFinish(t *testing.T) {
	t.Run("fills total tokens", func(t *testing.T) {
		resp, err := finish(flashcardRequest(), json.RawMessage(sampleFlashcards), "m", StopEnd, Usage{InputTokens: 7, OutputTokens: 3})
		require.NoError(t, err)
		assert.Equal(t, 10, resp.Usage.TotalTokens)
		assert.Equal(t, "m", resp.Model)
	})

	t.Run("keeps vendor total", func(t *testing.T) {
		resp, err := finish(Request{}, json.RawMessage(`{}`), "m", StopEnd, Usage{InputTokens: 7, OutputTokens: 3, TotalTokens: 12})
		require.NoError(t, err)
		assert.Equal(t, 12, resp.Usage.TotalTokens)
	})

	t.Run("truncated schema reply", func(t *testing.T) {
		_, err := finish(flashcardRequest(), json.RawMessage(`{"items":[`), "m", StopMaxTokens, Usage{})
		var truncated *ErrMaxTokensExceeded
		assert.ErrorAs(t, err, &truncated)
	})

	t.Run("truncated free text is kept", func(t *testing.T) {
		resp, err := finish(Request{}, json.RawMessage(`"Termo`), "m", StopMaxTokens, Usage{})
		require.NoError(t, err)
		assert.Equal(t, StopMaxTokens, resp.StopReason)
	})
}

func TestMockProviderReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(sampleFlashcards), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}},
	)
	ctx := context.Background()

	resp, err := mock.Generate(ctx, flashcardRequest())
	require.NoError(t, err)
	assert.JSONEq(t, sampleFlashcards, string(resp.Content))
	assert.Equal(t, 15, resp.Usage.TotalTokens)
	assert.Equal(t, StopEnd, resp.StopReason)

	_, err = mock.Generate(ctx, Request{System: "second"})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)

	_, err = mock.Generate(ctx, Request{})
	var down *ErrProviderUnavailable
	assert.ErrorAs(t, err, &down)

	require.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "second", mock.Calls[1].System)
	assert.Equal(t, "mock", mock.ModelID())
}

func TestMockProviderValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"items":[{"front":"Modus"}]}`)})

	_, err := mock.Generate(context.Background(), flashcardRequest())
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestMockProviderFallback(t *testing.T) {
	mock := NewMockProvider()
	mock.Fallback = func(req Request) (json.RawMessage, error) {
		if req.Schema == nil {
			return nil, errors.New("schema required")
		}
		return json.RawMessage(sampleFlashcards), nil
	}
	mock.AddResponse(MockResponse{Content: json.RawMessage(`{"items":[]}`)})

	first, err := mock.Generate(context.Background(), flashcardRequest())
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(first.Content))

	second, err := mock.Generate(context.Background(), flashcardRequest())
	require.NoError(t, err)
	assert.JSONEq(t, sampleFlashcards, string(second.Content))

	_, err = mock.Generate(context.Background(), Request{})
	assert.EqualError(t, err, "schema required")
}

func TestPurposeFrom(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "unknown", PurposeFrom(WithPurpose(ctx, "")))
	assert.Equal(t, "assist-quiz", PurposeFrom(WithPurpose(ctx, "assist-quiz")))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "anthropic without key", cfg: Config{Provider: ProviderAnthropic}, wantErr: "BELAJAR_ANTHROPIC_API_KEY"},
		{name: "anthropic", cfg: Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "sk-ant"}}},
		{name: "openai without key", cfg: Config{Provider: ProviderOpenAI}, wantErr: "BELAJAR_OPENAI_API_KEY"},
		{name: "gemini without key", cfg: Config{Provider: ProviderGemini}, wantErr: "BELAJAR_GEMINI_API_KEY"},
		{name: "openrouter", cfg: Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "sk-or"}}},
		{name: "mock", cfg: Config{Provider: ProviderMock}},
		{name: "none", cfg: Config{}, wantErr: "no LLM provider"},
		{name: "unknown", cfg: Config{Provider: "llama"}, wantErr: `unknown LLM provider: "llama"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("BELAJAR_LLM_PROVIDER", ProviderGemini)
	t.Setenv("BELAJAR_GEMINI_API_KEY", "g-key")
	t.Setenv("BELAJAR_GEMINI_MODEL", "gemini-pro")

	cfg := ConfigFromEnv()
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "g-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-pro", cfg.Gemini.Model)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.NoError(t, cfg.Validate())
}
