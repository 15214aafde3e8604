package llm

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openRouterURL = "https://openrouter.ai/api/v1"

	// Attribution shown on the OpenRouter dashboard.
	openRouterReferer = "https://github.com/abhisek/belajar"
	openRouterTitle   = "Belajar"
)

// OpenRouterProvider talks to OpenRouter's OpenAI-compatible API. Model
// ids such as "google/gemini-2.0-flash-001" go out as given.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	config := openai.DefaultConfig(cfg.APIKey)
	config.HTTPClient = &http.Client{Transport: attribution{next: http.DefaultTransport}}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openRouterURL
	}
	return &OpenRouterProvider{newOpenAICompatible(config, baseURL, cfg.Model)}, nil
}

// attribution adds OpenRouter's app identification headers.
type attribution struct {
	next http.RoundTripper
}

func (a attribution) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("HTTP-Referer", openRouterReferer)
	r.Header.Set("X-Title", openRouterTitle)
	return a.next.RoundTrip(r)
}
