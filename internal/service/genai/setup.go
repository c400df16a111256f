package genai

import (
	"fmt"
	"log/slog"
	"time"

	"motionforge/internal/config"
	"motionforge/internal/domain/services"
	"motionforge/internal/service/genai/providers/anthropic"
	"motionforge/internal/service/genai/providers/lorem"
	"motionforge/internal/service/genai/providers/openai"
)

// SetupProvider builds the configured generation provider and wraps it
// in a paced, caching client. Unknown provider names fail fast so a
// typo in DEFAULT_PROVIDER is a startup error, not a 500 later.
func SetupProvider(cfg *config.Config, logger *slog.Logger) (services.GenerationProvider, error) {
	var (
		provider services.GenerationProvider
		err      error
	)

	switch cfg.DefaultProvider {
	case "anthropic":
		provider, err = anthropic.NewProvider(cfg.AnthropicAPIKey, cfg.DefaultModel)
	case "openai":
		provider, err = openai.NewProvider(cfg.OpenAIAPIKey, cfg.DefaultModel)
	case "lorem":
		// Development provider; small delay so progress is visible.
		provider = lorem.NewProvider(500 * time.Millisecond)
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.DefaultProvider)
	}
	if err != nil {
		return nil, fmt.Errorf("setup %s provider: %w", cfg.DefaultProvider, err)
	}

	logger.Info("generation provider initialized",
		"provider", provider.Name(),
		"model", cfg.DefaultModel,
	)

	return NewClient(provider, ClientOptions{
		RequestsPerMinute: 30,
		CacheTTL:          5 * time.Minute,
	}, logger), nil
}
