package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type capturedRequest struct {
	path   string
	auth   string
	header http.Header
	body   gjson.Result
}

func openAIServer(t *testing.T, status int, body any) (string, *capturedRequest) {
	t.Helper()
	seen := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		seen.path = r.URL.Path
		seen.auth = r.Header.Get("Authorization")
		seen.header = r.Header.Clone()
		seen.body = gjson.ParseBytes(raw)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/v1", seen
}

func testOpenAI(url string) *OpenAIProvider {
	return newOpenAICompatible(openai.DefaultConfig("sk-test"), url, "gpt-4o-mini")
}

func chatReply(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1760000000,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 90, "completion_tokens": 40, "total_tokens": 130},
	}
}

func chatFailure(message string) map[string]any {
	return map[string]any{"error": map[string]any{"message": message, "type": "invalid_request_error"}}
}

func TestOpenAIGenerateFlashcards(t *testing.T) {
	url, seen := openAIServer(t, http.StatusOK, chatReply(sampleFlashcards, "stop"))
	p := testOpenAI(url)

	resp, err := p.Generate(context.Background(), flashcardRequest())
	require.NoError(t, err)

	assert.JSONEq(t, sampleFlashcards, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 90, OutputTokens: 40, TotalTokens: 130}, resp.Usage)
	assert.Equal(t, "gpt-4o-mini-2024-07-18", resp.Model)
	assert.Equal(t, StopEnd, resp.StopReason)

	assert.Equal(t, "/v1/chat/completions", seen.path)
	assert.Equal(t, "Bearer sk-test", seen.auth)
	assert.Equal(t, "system", seen.body.Get("messages.0.role").String())
	assert.Equal(t, "user", seen.body.Get("messages.1.role").String())
	assert.Equal(t, "json_schema", seen.body.Get("response_format.type").String())
	assert.Equal(t, "flashcards", seen.body.Get("response_format.json_schema.name").String())
	assert.True(t, seen.body.Get("response_format.json_schema.strict").Bool())
	assert.Equal(t, "object", seen.body.Get("response_format.json_schema.schema.type").String())
}

func TestOpenAIWithoutSchema(t *testing.T) {
	url, seen := openAIServer(t, http.StatusOK, chatReply(`"Ringkasan singkat"`, "stop"))
	p := testOpenAI(url)

	req := flashcardRequest()
	req.Schema = nil
	req.System = ""
	_, err := p.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, seen.body.Get("response_format").Exists())
	assert.Equal(t, "user", seen.body.Get("messages.0.role").String())
}

func TestOpenAITruncatedSchemaReply(t *testing.T) {
	url, _ := openAIServer(t, http.StatusOK, chatReply(`{"items":[`, "length"))
	p := testOpenAI(url)

	_, err := p.Generate(context.Background(), flashcardRequest())
	var truncated *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &truncated)
	assert.False(t, retryable(err))
}

func TestOpenAINoChoices(t *testing.T) {
	reply := chatReply("", "stop")
	reply["choices"] = []map[string]any{}
	url, _ := openAIServer(t, http.StatusOK, reply)
	p := testOpenAI(url)

	_, err := p.Generate(context.Background(), flashcardRequest())
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestOpenAIErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		retryable bool
	}{
		{"rate limited", http.StatusTooManyRequests, true},
		{"server error", http.StatusBadGateway, true},
		{"bad key", http.StatusUnauthorized, false},
		{"bad request", http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, _ := openAIServer(t, tt.status, chatFailure(tt.name))
			p := testOpenAI(url)

			_, err := p.Generate(context.Background(), flashcardRequest())
			require.Error(t, err)
			assert.Equal(t, tt.retryable, retryable(err), "error: %v", err)
		})
	}
}

func TestOpenAIRejectedRequestIsNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(chatFailure("schema not supported"))
	}))
	t.Cleanup(srv.Close)

	p := WithRetry(testOpenAI(srv.URL+"/v1"), fastRetry())
	_, err := p.Generate(context.Background(), flashcardRequest())
	assert.ErrorContains(t, err, "HTTP 400")
	assert.Equal(t, 1, calls)
}

func TestNewOpenAIProvider(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())

	_, err = NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"})
	assert.ErrorContains(t, err, "API key")
}
