package quiz_models

import (
	"context"
	"sync"
	"time"
)

type SessionState string

const (
	SessionInProgress SessionState = "in_progress"
	SessionAnswered   SessionState = "answered"
	SessionGenerating SessionState = "generating"
	SessionCompleted  SessionState = "completed"
	SessionFailed     SessionState = "failed"
)

// QuizSession owns everything produced by one quiz run. Callers must hold
// the embedded mutex while reading or writing any field.
type QuizSession struct {
	sync.Mutex

	ID           string
	Questions    []Question
	Answers      []AnsweredQuestion
	State        SessionState
	Scoring      *ScoringResult
	Report       *AIEnhancedResult
	Chat         []ChatMessage
	ChatBusy     bool
	ErrorMessage string
	// Epoch changes on every restart so a generation started for an older
	// run can detect that its result must be dropped.
	Epoch     int
	CreatedAt time.Time
	UpdatedAt time.Time

	ctxMu  sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

func NewQuizSession(id string, questions []Question) *QuizSession {
	now := time.Now()
	s := &QuizSession{
		ID:        id,
		CreatedAt: now,
	}
	s.Reset(questions, now)
	return s
}

// Reset discards the current run, cancels any in-flight generation and
// starts over with the given question order.
func (s *QuizSession) Reset(questions []Question, now time.Time) {
	s.ctxMu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.ctxMu.Unlock()

	s.Questions = questions
	s.Answers = make([]AnsweredQuestion, 0, len(questions))
	s.State = SessionInProgress
	s.Scoring = nil
	s.Report = nil
	s.Chat = nil
	s.ChatBusy = false
	s.ErrorMessage = ""
	s.Epoch++
	s.UpdatedAt = now
}

// Context is cancelled when the session is restarted or closed. Unlike the
// other fields it may be used without holding the session lock.
func (s *QuizSession) Context() context.Context {
	s.ctxMu.Lock()
	defer s.ctxMu.Unlock()
	return s.ctx
}

// Close cancels the session context. Safe without the session lock.
func (s *QuizSession) Close() {
	s.ctxMu.Lock()
	defer s.ctxMu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *QuizSession) CurrentQuestion() (Question, bool) {
	if len(s.Answers) >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[len(s.Answers)], true
}

func (s *QuizSession) AllAnswered() bool {
	return len(s.Questions) > 0 && len(s.Answers) == len(s.Questions)
}
