package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"riderquiz/internal/models/quiz_models"
	"riderquiz/internal/prompts"
	"riderquiz/pkg/metrics"
	"riderquiz/pkg/utils"
)

type ReportServiceInterface interface {
	// RequestReport asks the model for a report and returns its raw text.
	RequestReport(ctx context.Context, scoring quiz_models.ScoringResult, pairs []quiz_models.AnsweredQuestion) (string, error)
	// EnhanceResults requests and parses the report.
	EnhanceResults(ctx context.Context, scoring quiz_models.ScoringResult, pairs []quiz_models.AnsweredQuestion) (*quiz_models.AIEnhancedResult, error)
}

type ReportService struct {
	generator utils.GenerationClientInterface
	renderer  *prompts.Renderer
	metrics   *metrics.Metrics
}

func NewReportService(generator utils.GenerationClientInterface, renderer *prompts.Renderer, m *metrics.Metrics) ReportServiceInterface {
	return &ReportService{
		generator: generator,
		renderer:  renderer,
		metrics:   m,
	}
}

func (s *ReportService) RequestReport(ctx context.Context, scoring quiz_models.ScoringResult, pairs []quiz_models.AnsweredQuestion) (string, error) {
	prompt, err := s.renderer.Render(prompts.ReportTemplate, prompts.NewReportPromptData(scoring, pairs))
	if err != nil {
		return "", err
	}

	start := time.Now()
	text, err := s.generator.Generate(ctx, prompt)
	s.metrics.ObserveGeneration("report", generationStatus(err), time.Since(start))
	if err != nil {
		zap.L().Warn("report generation failed",
			zap.String("model", s.generator.Model()),
			zap.Error(err))
		return "", err
	}
	return text, nil
}

func (s *ReportService) EnhanceResults(ctx context.Context, scoring quiz_models.ScoringResult, pairs []quiz_models.AnsweredQuestion) (*quiz_models.AIEnhancedResult, error) {
	raw, err := s.RequestReport(ctx, scoring, pairs)
	if err != nil {
		return nil, err
	}

	report, err := ParseReport(raw)
	if err != nil {
		s.metrics.IncParseFailure()
		zap.L().Warn("report response rejected",
			zap.Error(err),
			zap.Int("raw_length", len(raw)))
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return report, nil
}

func generationStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, utils.ErrInvalidAPIKey):
		return "invalid_key"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "error"
	}
}
