package services

import (
	"context"

	"riderquiz/internal/models/quiz_models"
	"riderquiz/internal/models/response_models"
	"riderquiz/internal/repositories"
)

type QuestionServiceInterface interface {
	ListQuestions(ctx context.Context) (*response_models.QuestionListResponse, error)
	ListRiderTypes(ctx context.Context) ([]quiz_models.RiderTypeProfile, error)
}

type QuestionService struct {
	questionRepo repositories.QuestionRepositoryInterface
}

func NewQuestionService(questionRepo repositories.QuestionRepositoryInterface) QuestionServiceInterface {
	return &QuestionService{questionRepo: questionRepo}
}

// ListQuestions returns the bank in its canonical order, without answer
// weights.
func (q *QuestionService) ListQuestions(ctx context.Context) (*response_models.QuestionListResponse, error) {
	questions, err := q.questionRepo.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]response_models.QuestionView, 0, len(questions))
	for _, question := range questions {
		views = append(views, response_models.NewQuestionView(question))
	}
	return &response_models.QuestionListResponse{
		Count:     len(views),
		Questions: views,
	}, nil
}

func (q *QuestionService) ListRiderTypes(ctx context.Context) ([]quiz_models.RiderTypeProfile, error) {
	return q.questionRepo.ListRiderProfiles(ctx)
}
