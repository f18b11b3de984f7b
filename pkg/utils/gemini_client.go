package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiGenerationClient implements GenerationClientInterface using Google's Gemini models
type GeminiGenerationClient struct {
	client       *genai.Client
	model        string
	systemPrompt string
	temperature  float32
}

// NewGeminiGenerationClient creates a new Gemini client
func NewGeminiGenerationClient(cfg GenerationConfig) (*GeminiGenerationClient, error) {
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerationClient{
		client:       client,
		model:        model,
		systemPrompt: cfg.SystemPrompt,
		temperature:  cfg.Temperature,
	}, nil
}

func (c *GeminiGenerationClient) Model() string {
	return c.model
}

func (c *GeminiGenerationClient) Generate(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	if c.systemPrompt != "" {
		m.SystemInstruction = genai.NewUserContent(genai.Text(c.systemPrompt))
	}
	if c.temperature > 0 {
		m.SetTemperature(c.temperature)
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", WrapGenerationError(fmt.Errorf("gemini: %w", err), isGeminiInvalidKey(err))
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", WrapGenerationError(errors.New("no content generated by Gemini"), false)
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	if out.Len() == 0 {
		return "", WrapGenerationError(errors.New("no text parts generated by Gemini"), false)
	}
	return out.String(), nil
}

// Close closes the Gemini client
func (c *GeminiGenerationClient) Close() error {
	return c.client.Close()
}

func isGeminiInvalidKey(err error) bool {
	if strings.Contains(err.Error(), "API key not valid") {
		return true
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden
	}
	return false
}
