package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"google.golang.org/genai"
)

func geminiServer(t *testing.T, status int, body any, seen *gjson.Result) *GeminiProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			raw, _ := io.ReadAll(r.Body)
			*seen = gjson.ParseBytes(raw)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	})
	require.NoError(t, err)
	return &GeminiProvider{client: client, model: "gemini-2.0-flash"}
}

func geminiReply(text, finish string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}},
			"finishReason": finish,
		}},
		"usageMetadata": map[string]any{
			"promptTokenCount":     80,
			"candidatesTokenCount": 30,
			"totalTokenCount":      110,
		},
	}
}

func TestGeminiGenerateFlashcards(t *testing.T) {
	var seen gjson.Result
	p := geminiServer(t, http.StatusOK, geminiReply(sampleFlashcards, "STOP"), &seen)

	resp, err := p.Generate(context.Background(), flashcardRequest())
	require.NoError(t, err)
	assert.JSONEq(t, sampleFlashcards, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 80, OutputTokens: 30, TotalTokens: 110}, resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)

	assert.Equal(t, "application/json", seen.Get("generationConfig.responseMimeType").String())
	assert.Equal(t, "OBJECT", seen.Get("generationConfig.responseSchema.type").String())
	assert.Contains(t, seen.Get("systemInstruction.parts.0.text").String(), "Indonesian")
}

func TestGeminiTruncatedSchemaReply(t *testing.T) {
	p := geminiServer(t, http.StatusOK, geminiReply(`{"items":[{"front":`, "MAX_TOKENS"), nil)

	_, err := p.Generate(context.Background(), flashcardRequest())
	var truncated *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &truncated)
}

func TestGeminiErrorMapping(t *testing.T) {
	failure := func(code int, status string) map[string]any {
		return map[string]any{"error": map[string]any{"code": code, "message": status, "status": status}}
	}

	t.Run("quota exhausted", func(t *testing.T) {
		p := geminiServer(t, http.StatusTooManyRequests, failure(429, "RESOURCE_EXHAUSTED"), nil)
		_, err := p.Generate(context.Background(), flashcardRequest())
		var rl *ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	})

	t.Run("bad argument", func(t *testing.T) {
		p := geminiServer(t, http.StatusBadRequest, failure(400, "INVALID_ARGUMENT"), nil)
		_, err := p.Generate(context.Background(), flashcardRequest())
		require.Error(t, err)
		assert.False(t, retryable(err))
		assert.Contains(t, err.Error(), "HTTP 400")
	})

	t.Run("unavailable", func(t *testing.T) {
		p := geminiServer(t, http.StatusServiceUnavailable, failure(503, "UNAVAILABLE"), nil)
		_, err := p.Generate(context.Background(), flashcardRequest())
		var down *ErrProviderUnavailable
		assert.ErrorAs(t, err, &down)
	})
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type":        "object",
		"description": "Quiz items",
		"properties": map[string]any{
			"question":     map[string]any{"type": "string"},
			"correctIndex": map[string]any{"type": "integer"},
			"level":        map[string]any{"type": "string", "enum": []any{"SMP", "SMA", "SMK"}},
			"choices": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":             []any{"question", "correctIndex"},
		"additionalProperties": false,
	}

	s := buildGeminiSchema(def)

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, "Quiz items", s.Description)
	assert.ElementsMatch(t, []string{"question", "correctIndex"}, s.Required)
	require.Len(t, s.Properties, 4)
	assert.Equal(t, genai.TypeInteger, s.Properties["correctIndex"].Type)
	assert.Equal(t, []string{"SMP", "SMA", "SMK"}, s.Properties["level"].Enum)
	assert.Equal(t, genai.TypeArray, s.Properties["choices"].Type)
	assert.Equal(t, genai.TypeString, s.Properties["choices"].Items.Type)

	assert.Equal(t, genai.TypeString, buildGeminiSchema(map[string]any{"type": "null"}).Type)
}

func TestGeminiConfig(t *testing.T) {
	req := flashcardRequest()
	req.Temperature = 0.4
	cfg := geminiConfig(req)

	assert.Equal(t, int32(512), cfg.MaxOutputTokens)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.4, *cfg.Temperature, 1e-6)
	assert.NotNil(t, cfg.SystemInstruction)
	assert.NotNil(t, cfg.ResponseSchema)

	plain := geminiConfig(Request{MaxTokens: 64})
	assert.Nil(t, plain.Temperature)
	assert.Nil(t, plain.SystemInstruction)
	assert.Empty(t, plain.ResponseMIMEType)
}

func TestGeminiModelAliases(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "gemini-2.5-pro", resolveModel("gemini-2.5-pro", geminiModels))
}
