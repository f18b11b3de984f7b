package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = openai.GPT4oMini

type OpenAIGenerationClient struct {
	client       *openai.Client
	model        string
	systemPrompt string
	temperature  float32
}

func NewOpenAIGenerationClient(cfg GenerationConfig) *OpenAIGenerationClient {
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &OpenAIGenerationClient{
		client:       openai.NewClientWithConfig(config),
		model:        model,
		systemPrompt: cfg.SystemPrompt,
		temperature:  cfg.Temperature,
	}
}

func (c *OpenAIGenerationClient) Model() string {
	return c.model
}

func (c *OpenAIGenerationClient) Generate(ctx context.Context, prompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if c.systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: c.systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", WrapGenerationError(fmt.Errorf("openai: %w", err), isOpenAIInvalidKey(err))
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", WrapGenerationError(errors.New("no content generated by OpenAI"), false)
	}
	return resp.Choices[0].Message.Content, nil
}

func isOpenAIInvalidKey(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusUnauthorized
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusUnauthorized
	}
	return false
}
