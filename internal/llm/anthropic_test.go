package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// anthropicServer answers every request with status and body, and hands
// the decoded request body to seen when it is non-nil.
func anthropicServer(t *testing.T, status int, body any, seen *gjson.Result) *AnthropicProvider {
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

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func anthropicReply(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_01",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5-20251001",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 120, "output_tokens": 48},
	}
}

func anthropicFailure(kind string) map[string]any {
	return map[string]any{
		"type":  "error",
		"error": map[string]any{"type": kind, "message": kind},
	}
}

func TestAnthropicGenerateFlashcards(t *testing.T) {
	var seen gjson.Result
	p := anthropicServer(t, http.StatusOK, anthropicReply(sampleFlashcards, "end_turn"), &seen)

	resp, err := p.Generate(context.Background(), flashcardRequest())
	require.NoError(t, err)

	assert.JSONEq(t, sampleFlashcards, string(resp.Content))
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, Usage{InputTokens: 120, OutputTokens: 48, TotalTokens: 168}, resp.Usage)
	assert.Equal(t, "claude-haiku-4-5-20251001", resp.Model)

	assert.Equal(t, "claude-haiku-4-5-20251001", seen.Get("model").String())
	assert.Equal(t, int64(512), seen.Get("max_tokens").Int())
	assert.Contains(t, seen.Get("system.0.text").String(), "Indonesian")
	assert.Equal(t, "user", seen.Get("messages.0.role").String())
	assert.Equal(t, "object", seen.Get("output_config.format.schema.type").String())
}

func TestAnthropicTruncatedSchemaReply(t *testing.T) {
	p := anthropicServer(t, http.StatusOK, anthropicReply(`{"items":[{"front":"Entalpi"`, "max_tokens"), nil)

	_, err := p.Generate(context.Background(), flashcardRequest())
	var truncated *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &truncated)
	assert.Contains(t, string(truncated.Content), "Entalpi")
}

func TestAnthropicReplyOutOfShape(t *testing.T) {
	p := anthropicServer(t, http.StatusOK, anthropicReply(`{"items":[{"front":"Entalpi"}]}`, "end_turn"), nil)

	_, err := p.Generate(context.Background(), flashcardRequest())
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestAnthropicErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		kind      string
		retryable bool
		check     func(t *testing.T, err error)
	}{
		{
			name: "rate limited", status: http.StatusTooManyRequests, kind: "rate_limit_error", retryable: true,
			check: func(t *testing.T, err error) {
				var rl *ErrRateLimit
				assert.ErrorAs(t, err, &rl)
			},
		},
		{
			name: "overloaded", status: http.StatusInternalServerError, kind: "api_error", retryable: true,
			check: func(t *testing.T, err error) {
				var down *ErrProviderUnavailable
				assert.ErrorAs(t, err, &down)
			},
		},
		{
			name: "bad request", status: http.StatusBadRequest, kind: "invalid_request_error", retryable: false,
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "HTTP 400")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := anthropicServer(t, tt.status, anthropicFailure(tt.kind), nil)
			_, err := p.Generate(context.Background(), flashcardRequest())
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, tt.retryable, retryable(err))
		})
	}
}

func TestAnthropicModelAliases(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "claude-opus-4-1", resolveModel("claude-opus-4-1", anthropicModels))

	_, err := NewAnthropicProvider(AnthropicConfig{Model: "claude-haiku"})
	assert.Error(t, err)
}
