package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/solvewise/internal/store"
)

// NewProvider builds the configured backend and decorates it as
// caller → retry → logging → backend, so each attempt is recorded.
// A mock backend gets the same decorators, using fallback (when non-nil)
// to answer requests.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, logger *zap.Logger, fallback Responder) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
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
		if fallback != nil {
			base = NewResponderProvider(fallback)
		} else {
			base = NewMockProvider()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, repo, logger)
	return WithRetry(logged, cfg.Retry, logger), nil
}
