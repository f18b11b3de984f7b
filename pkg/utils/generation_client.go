package utils

import (
	"context"
	"fmt"
	"strings"
)

// GenerationClientInterface is the narrow contract the quiz core needs from a
// text generation provider.
type GenerationClientInterface interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

type GenerationConfig struct {
	Provider     string
	APIKey       string
	Model        string
	BaseURL      string
	SystemPrompt string
	Temperature  float32
}

// NewGenerationClient Factory function to create either OpenAI or Gemini client based on config
func NewGenerationClient(cfg GenerationConfig) (GenerationClientInterface, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required for provider %q", cfg.Provider)
	}

	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIGenerationClient(cfg), nil
	case "gemini":
		client, err := NewGeminiGenerationClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s. Use 'openai' or 'gemini'", cfg.Provider)
	}
}
