package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/belajar/internal/logger"
	"github.com/abhisek/belajar/internal/store"
)

// NewProvider creates the configured vendor provider and wraps it with
// Wrap. The mock provider starts with an empty queue; callers that want
// it to answer set its Fallback and use Wrap directly.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return Wrap(base, cfg, events, log), nil
}

// Wrap layers retries over event logging over base, so every attempt is
// recorded.
func Wrap(base Provider, cfg Config, events store.EventRepo, log *logger.Logger) Provider {
	return WithRetry(WithLogging(base, cfg.Provider, events, log), cfg.Retry)
}
