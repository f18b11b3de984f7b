package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"riderquiz/internal/models/quiz_models"
	"riderquiz/internal/models/response_models"
	"riderquiz/internal/prompts"
	"riderquiz/internal/repositories"
	"riderquiz/pkg/memcache"
	"riderquiz/pkg/metrics"
	"riderquiz/pkg/utils"
)

type QuizSessionServiceInterface interface {
	StartSession(ctx context.Context) (*response_models.QuizSessionResponse, error)
	GetSession(ctx context.Context, id string) (*response_models.QuizSessionResponse, error)
	SubmitAnswer(ctx context.Context, id, questionID string, answerIndex int) (*response_models.AnswerFeedbackResponse, error)
	GenerateReport(ctx context.Context, id string) (*response_models.QuizResultResponse, error)
	Chat(ctx context.Context, id, message string) (*response_models.ChatReplyResponse, error)
	ChatHistory(ctx context.Context, id string) (*response_models.ChatHistoryResponse, error)
	RestartSession(ctx context.Context, id string) (*response_models.QuizSessionResponse, error)
	DeleteSession(ctx context.Context, id string) error
}

type SessionServiceConfig struct {
	// GenerationTimeout bounds a single report or chat generation. Zero
	// means no timeout.
	GenerationTimeout time.Duration
	ShuffleQuestions  bool
}

type QuizSessionService struct {
	questions repositories.QuestionRepositoryInterface
	scoring   ScoringServiceInterface
	reports   ReportServiceInterface
	chat      ChatServiceInterface
	store     memcache.SessionStore
	metrics   *metrics.Metrics
	cfg       SessionServiceConfig

	// one report generation per session run
	group singleflight.Group
	now   func() time.Time
}

func NewQuizSessionService(
	questions repositories.QuestionRepositoryInterface,
	scoring ScoringServiceInterface,
	reports ReportServiceInterface,
	chat ChatServiceInterface,
	store memcache.SessionStore,
	m *metrics.Metrics,
	cfg SessionServiceConfig,
) QuizSessionServiceInterface {
	return &QuizSessionService{
		questions: questions,
		scoring:   scoring,
		reports:   reports,
		chat:      chat,
		store:     store,
		metrics:   m,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *QuizSessionService) StartSession(ctx context.Context) (*response_models.QuizSessionResponse, error) {
	questions, err := s.questionOrder(ctx)
	if err != nil {
		return nil, err
	}

	sess := quiz_models.NewQuizSession(uuid.NewString(), questions)
	s.store.Put(sess)
	s.metrics.IncSessionsStarted()

	zap.L().Info("quiz session started",
		zap.String("session_id", sess.ID),
		zap.Int("questions", len(questions)))

	sess.Lock()
	defer sess.Unlock()
	view := sessionView(sess)
	return &view, nil
}

func (s *QuizSessionService) GetSession(ctx context.Context, id string) (*response_models.QuizSessionResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	view := sessionView(sess)
	return &view, nil
}

func (s *QuizSessionService) SubmitAnswer(ctx context.Context, id, questionID string, answerIndex int) (*response_models.AnswerFeedbackResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	current, ok := sess.CurrentQuestion()
	if !ok {
		return nil, utils.ErrQuizComplete
	}
	if current.ID != questionID {
		if _, err := s.questions.GetQuestion(ctx, questionID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: question %s is not the current question", utils.ErrInvalidAnswer, questionID)
	}
	if answerIndex < 0 || answerIndex >= len(current.Answers) {
		return nil, fmt.Errorf("%w: answer index %d out of range", utils.ErrInvalidAnswer, answerIndex)
	}

	answer := current.Answers[answerIndex]
	sess.Answers = append(sess.Answers, quiz_models.AnsweredQuestion{Question: current, Answer: answer})
	if sess.AllAnswered() {
		sess.State = quiz_models.SessionAnswered
	}
	sess.UpdatedAt = s.now()

	return &response_models.AnswerFeedbackResponse{
		Explanation: answer.Explanation,
		Session:     sessionView(sess),
	}, nil
}

// GenerateReport scores the session and produces its report. Concurrent
// callers for the same run share one generation. The generation is bound to
// the session, not to ctx: a caller giving up does not cancel it, a restart
// or eviction does.
func (s *QuizSessionService) GenerateReport(ctx context.Context, id string) (*response_models.QuizResultResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	if !sess.AllAnswered() {
		sess.Unlock()
		return nil, utils.ErrQuizIncomplete
	}
	if sess.State == quiz_models.SessionCompleted && sess.Report != nil {
		scoring, report := *sess.Scoring, *sess.Report
		sess.Unlock()
		return s.resultView(ctx, id, scoring, report)
	}
	epoch := sess.Epoch
	pairs := append([]quiz_models.AnsweredQuestion(nil), sess.Answers...)
	sess.Unlock()

	key := fmt.Sprintf("%s/%d", id, epoch)
	ch := s.group.DoChan(key, func() (any, error) {
		return s.generate(sess, epoch, pairs)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*response_models.QuizResultResponse), nil
	}
}

func (s *QuizSessionService) generate(sess *quiz_models.QuizSession, epoch int, pairs []quiz_models.AnsweredQuestion) (*response_models.QuizResultResponse, error) {
	scoring := s.scoring.Score(pairs)

	sess.Lock()
	if sess.Epoch != epoch {
		sess.Unlock()
		return nil, utils.ErrSessionRestarted
	}
	sess.State = quiz_models.SessionGenerating
	sess.Scoring = &scoring
	sess.ErrorMessage = ""
	sessCtx := sess.Context()
	sess.Unlock()

	ctx, cancel := s.withTimeout(sessCtx)
	defer cancel()

	start := s.now()
	report, err := s.reports.EnhanceResults(ctx, scoring, pairs)

	sess.Lock()
	defer sess.Unlock()

	if sess.Epoch != epoch {
		s.metrics.IncReport("cancelled")
		return nil, utils.ErrSessionRestarted
	}
	sess.UpdatedAt = s.now()

	if err != nil {
		sess.State = quiz_models.SessionFailed
		sess.ErrorMessage = utils.UserMessageForGenerationError(err)
		s.metrics.IncReport(reportStatus(err))
		zap.L().Warn("quiz report failed",
			zap.String("session_id", sess.ID),
			zap.Duration("elapsed", s.now().Sub(start)),
			zap.Error(err))
		return nil, err
	}

	sess.State = quiz_models.SessionCompleted
	sess.Report = report
	sess.Chat = []quiz_models.ChatMessage{}
	s.metrics.IncReport("success")

	zap.L().Info("quiz report ready",
		zap.String("session_id", sess.ID),
		zap.String("primary_type", string(scoring.PrimaryType)),
		zap.Duration("elapsed", s.now().Sub(start)))

	return s.resultView(sessCtx, sess.ID, scoring, *report)
}

// Chat answers one follow-up question. Generation failures never surface as
// errors: the rider gets a fallback reply and can simply ask again.
func (s *QuizSessionService) Chat(ctx context.Context, id, message string) (*response_models.ChatReplyResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, utils.ErrEmptyMessage
	}

	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	switch {
	case sess.State == quiz_models.SessionGenerating:
		sess.Unlock()
		return nil, utils.ErrReportInProgress
	case sess.Report == nil:
		sess.Unlock()
		return nil, utils.ErrReportNotReady
	case sess.ChatBusy:
		sess.Unlock()
		return nil, utils.ErrChatInProgress
	}
	sess.ChatBusy = true
	epoch := sess.Epoch
	report := *sess.Report
	riderType := sess.Scoring.PrimaryType
	prior := append([]quiz_models.ChatMessage(nil), sess.Chat...)
	sessCtx := sess.Context()
	sess.Unlock()

	genCtx, cancel := s.withTimeout(sessCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	reply, err := s.chat.Respond(genCtx, message, report, riderType, prior)

	sess.Lock()
	defer sess.Unlock()

	if sess.Epoch != epoch {
		return nil, utils.ErrSessionRestarted
	}
	sess.ChatBusy = false

	fallback := false
	if err != nil {
		zap.L().Warn("chat reply failed",
			zap.String("session_id", sess.ID),
			zap.Error(err))
		reply = utils.MsgChatFallback
		fallback = true
		s.metrics.IncChatTurn("fallback")
	} else {
		s.metrics.IncChatTurn("success")
	}

	now := s.now()
	assistant := quiz_models.ChatMessage{Role: quiz_models.ChatRoleAssistant, Content: reply, CreatedAt: now}
	sess.Chat = append(sess.Chat,
		quiz_models.ChatMessage{Role: quiz_models.ChatRoleUser, Content: message, CreatedAt: now},
		assistant,
	)
	sess.UpdatedAt = now

	return &response_models.ChatReplyResponse{Reply: assistant, Fallback: fallback}, nil
}

func (s *QuizSessionService) ChatHistory(ctx context.Context, id string) (*response_models.ChatHistoryResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	if sess.Report == nil {
		return nil, utils.ErrReportNotReady
	}
	return &response_models.ChatHistoryResponse{
		SessionID: sess.ID,
		Greeting:  prompts.ChatGreeting,
		Messages:  append([]quiz_models.ChatMessage{}, sess.Chat...),
	}, nil
}

// RestartSession clears the run and cancels anything still generating for
// it. Results of the cancelled run are discarded when they arrive.
func (s *QuizSessionService) RestartSession(ctx context.Context, id string) (*response_models.QuizSessionResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	questions, err := s.questionOrder(ctx)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	sess.Reset(questions, s.now())
	s.metrics.IncSessionsStarted()

	zap.L().Info("quiz session restarted",
		zap.String("session_id", sess.ID),
		zap.Int("epoch", sess.Epoch))

	view := sessionView(sess)
	return &view, nil
}

func (s *QuizSessionService) DeleteSession(ctx context.Context, id string) error {
	if !s.store.Delete(id) {
		return utils.ErrSessionNotFound
	}
	return nil
}

func (s *QuizSessionService) session(id string) (*quiz_models.QuizSession, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	return sess, nil
}

func (s *QuizSessionService) questionOrder(ctx context.Context) ([]quiz_models.Question, error) {
	questions, err := s.questions.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if s.cfg.ShuffleQuestions {
		rand.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}
	return questions, nil
}

func (s *QuizSessionService) withTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.GenerationTimeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, s.cfg.GenerationTimeout)
}

func (s *QuizSessionService) resultView(ctx context.Context, id string, scoring quiz_models.ScoringResult, report quiz_models.AIEnhancedResult) (*response_models.QuizResultResponse, error) {
	primary, err := s.questions.GetRiderProfile(ctx, scoring.PrimaryType)
	if err != nil {
		return nil, err
	}
	secondary, err := s.questions.GetRiderProfile(ctx, scoring.SecondaryType)
	if err != nil {
		return nil, err
	}

	return &response_models.QuizResultResponse{
		SessionID:        id,
		Scoring:          scoring,
		PrimaryProfile:   primary,
		SecondaryProfile: secondary,
		Report:           report,
		TrainingPlan:     ReportSections(report.CustomizedTrainingPlan, prompts.TrainingPlanSections),
		Vision:           ReportSections(report.LongTermVision, prompts.VisionSections),
		ChatGreeting:     prompts.ChatGreeting,
	}, nil
}

// sessionView must be called with the session locked.
func sessionView(sess *quiz_models.QuizSession) response_models.QuizSessionResponse {
	view := response_models.QuizSessionResponse{
		SessionID:    sess.ID,
		State:        sess.State,
		CurrentStep:  len(sess.Answers),
		TotalSteps:   len(sess.Questions),
		IsComplete:   sess.AllAnswered(),
		ErrorMessage: sess.ErrorMessage,
		CreatedAt:    sess.CreatedAt,
		UpdatedAt:    sess.UpdatedAt,
	}
	if q, ok := sess.CurrentQuestion(); ok {
		qv := response_models.NewQuestionView(q)
		view.CurrentQuestion = &qv
	}
	return view
}

func reportStatus(err error) string {
	switch {
	case errors.Is(err, utils.ErrParseFailed):
		return "parse_error"
	case errors.Is(err, utils.ErrInvalidAPIKey):
		return "invalid_key"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "generation_error"
	}
}
