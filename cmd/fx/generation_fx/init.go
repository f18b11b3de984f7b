package generation_fx

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"riderquiz/internal/config"
	"riderquiz/internal/prompts"
	"riderquiz/pkg/utils"
)

var Module = fx.Provide(
	ProvidePromptRenderer,
	ProvideGenerationClient)

func ProvidePromptRenderer() (*prompts.Renderer, error) {
	return prompts.NewRenderer()
}

// ProvideGenerationClient creates the text generation client for the
// configured provider. The system prompt travels with every call.
func ProvideGenerationClient(lc fx.Lifecycle, cfg *config.Config, renderer *prompts.Renderer, logger *zap.Logger) (utils.GenerationClientInterface, error) {
	client, err := utils.NewGenerationClient(utils.GenerationConfig{
		Provider:     cfg.Generation.Provider,
		APIKey:       cfg.Generation.APIKey,
		Model:        cfg.Generation.Model,
		BaseURL:      cfg.Generation.BaseURL,
		SystemPrompt: renderer.SystemPrompt(),
		Temperature:  cfg.Generation.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s generation client: %w", cfg.Generation.Provider, err)
	}

	logger.Info("generation client ready",
		zap.String("provider", cfg.Generation.Provider),
		zap.String("model", client.Model()))

	if closer, ok := client.(io.Closer); ok {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})
	}
	return client, nil
}
