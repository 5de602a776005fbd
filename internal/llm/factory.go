package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/visiontour/internal/logger"
)

// Backend bundles the capabilities the configured provider can serve.
// Image and Search are nil when the provider cannot serve them.
type Backend struct {
	Provider string
	Chat     Provider
	Image    ImageGenerator
	Search   SearchGrounder
}

// NewBackend creates a Backend from configuration. Every capability is
// wrapped with retry and logging middleware.
func NewBackend(ctx context.Context, cfg Config, events EventRecorder, log *logger.Logger) (*Backend, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown AI provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return Wrap(cfg.Provider, base, cfg.Retry, events, log), nil
}

// Wrap builds a Backend around an already constructed provider.
// Middleware order: caller → retry → logging → base.
func Wrap(name string, base Provider, retry RetryConfig, events EventRecorder, log *logger.Logger) *Backend {
	if log == nil {
		log = logger.Nop()
	}
	b := &Backend{
		Provider: name,
		Chat:     WithRetry(WithLogging(base, name, events, log), retry),
	}
	if g, ok := base.(ImageGenerator); ok {
		b.Image = WithImageRetry(WithImageLogging(g, name, events, log), retry)
	}
	if s, ok := base.(SearchGrounder); ok {
		b.Search = WithSearchRetry(WithSearchLogging(s, name, events, log), retry)
	}
	return b
}
