package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"riderquiz/internal/models/quiz_models"
	"riderquiz/internal/prompts"
	"riderquiz/pkg/metrics"
	"riderquiz/pkg/utils"
)

type ChatServiceInterface interface {
	// BuildPrompt renders the chat prompt and reports which response format
	// the question was matched to.
	BuildPrompt(message string, report quiz_models.AIEnhancedResult, riderType quiz_models.RiderType, prior []quiz_models.ChatMessage) (string, prompts.ResponseFormat, error)
	// Respond returns the model's answer verbatim.
	Respond(ctx context.Context, message string, report quiz_models.AIEnhancedResult, riderType quiz_models.RiderType, prior []quiz_models.ChatMessage) (string, error)
}

type ChatService struct {
	generator utils.GenerationClientInterface
	renderer  *prompts.Renderer
	metrics   *metrics.Metrics
}

func NewChatService(generator utils.GenerationClientInterface, renderer *prompts.Renderer, m *metrics.Metrics) ChatServiceInterface {
	return &ChatService{
		generator: generator,
		renderer:  renderer,
		metrics:   m,
	}
}

func (s *ChatService) BuildPrompt(message string, report quiz_models.AIEnhancedResult, riderType quiz_models.RiderType, prior []quiz_models.ChatMessage) (string, prompts.ResponseFormat, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", prompts.ResponseFormat{}, utils.ErrEmptyMessage
	}

	data := prompts.NewChatPromptData(message, report, riderType, prior)
	prompt, err := s.renderer.Render(prompts.ChatTemplate, data)
	if err != nil {
		return "", prompts.ResponseFormat{}, err
	}
	return prompt, data.Selected, nil
}

func (s *ChatService) Respond(ctx context.Context, message string, report quiz_models.AIEnhancedResult, riderType quiz_models.RiderType, prior []quiz_models.ChatMessage) (string, error) {
	prompt, format, err := s.BuildPrompt(message, report, riderType, prior)
	if err != nil {
		return "", err
	}

	start := time.Now()
	reply, err := s.generator.Generate(ctx, prompt)
	s.metrics.ObserveGeneration("chat", generationStatus(err), time.Since(start))
	if err != nil {
		return "", err
	}

	zap.L().Debug("chat reply generated",
		zap.String("format", string(format.Key)),
		zap.Int("history", len(prior)))
	return reply, nil
}
