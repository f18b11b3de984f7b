package quiz_fx

import (
	"fmt"

	"go.uber.org/fx"
	"riderquiz/internal/config"
	"riderquiz/internal/prompts"
	"riderquiz/internal/repositories"
	"riderquiz/internal/services"
	"riderquiz/pkg/memcache"
	"riderquiz/pkg/metrics"
	"riderquiz/pkg/utils"
)

var Module = fx.Provide(
	provideQuestionRepo,
	provideQuestionService,
	services.NewScoringService,
	provideReportService,
	provideChatService,
	provideQuizSessionService)

// provideQuestionRepo fails application start when the embedded bank is
// malformed.
func provideQuestionRepo() (repositories.QuestionRepositoryInterface, error) {
	repo, err := repositories.NewQuestionRepository()
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	return repo, nil
}

func provideQuestionService(repo repositories.QuestionRepositoryInterface) services.QuestionServiceInterface {
	return services.NewQuestionService(repo)
}

func provideReportService(generator utils.GenerationClientInterface, renderer *prompts.Renderer, m *metrics.Metrics) services.ReportServiceInterface {
	return services.NewReportService(generator, renderer, m)
}

func provideChatService(generator utils.GenerationClientInterface, renderer *prompts.Renderer, m *metrics.Metrics) services.ChatServiceInterface {
	return services.NewChatService(generator, renderer, m)
}

func provideQuizSessionService(
	repo repositories.QuestionRepositoryInterface,
	scoring services.ScoringServiceInterface,
	reports services.ReportServiceInterface,
	chat services.ChatServiceInterface,
	store memcache.SessionStore,
	m *metrics.Metrics,
	cfg *config.Config,
) services.QuizSessionServiceInterface {
	return services.NewQuizSessionService(repo, scoring, reports, chat, store, m, services.SessionServiceConfig{
		GenerationTimeout: cfg.Generation.Timeout,
		ShuffleQuestions:  cfg.Session.ShuffleQuestions,
	})
}
