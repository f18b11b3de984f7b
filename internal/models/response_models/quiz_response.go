package response_models

import (
	"time"

	"riderquiz/internal/models/quiz_models"
)

// QuestionView hides answer weights from the presentation layer.
type QuestionView struct {
	ID       string                       `json:"id"`
	Text     string                       `json:"text"`
	Subtext  string                       `json:"subtext,omitempty"`
	Category quiz_models.QuestionCategory `json:"category"`
	Answers  []string                     `json:"answers"`
}

type QuestionListResponse struct {
	Count     int            `json:"count"`
	Questions []QuestionView `json:"questions"`
}

type QuizSessionResponse struct {
	SessionID       string                   `json:"session_id"`
	State           quiz_models.SessionState `json:"state"`
	CurrentStep     int                      `json:"current_step"`
	TotalSteps      int                      `json:"total_steps"`
	IsComplete      bool                     `json:"is_complete"`
	CurrentQuestion *QuestionView            `json:"current_question,omitempty"`
	ErrorMessage    string                   `json:"error_message,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

type AnswerFeedbackResponse struct {
	Explanation string              `json:"explanation,omitempty"`
	Session     QuizSessionResponse `json:"session"`
}

type QuizResultResponse struct {
	SessionID        string                       `json:"session_id"`
	Scoring          quiz_models.ScoringResult    `json:"scoring"`
	PrimaryProfile   quiz_models.RiderTypeProfile `json:"primary_profile"`
	SecondaryProfile quiz_models.RiderTypeProfile `json:"secondary_profile"`
	Report           quiz_models.AIEnhancedResult `json:"report"`
	TrainingPlan     []quiz_models.ReportSection  `json:"training_plan_sections"`
	Vision           []quiz_models.ReportSection  `json:"vision_sections"`
	ChatGreeting     string                       `json:"chat_greeting"`
}

type ChatReplyResponse struct {
	Reply    quiz_models.ChatMessage `json:"reply"`
	Fallback bool                    `json:"fallback"`
}

type ChatHistoryResponse struct {
	SessionID string                    `json:"session_id"`
	Greeting  string                    `json:"greeting"`
	Messages  []quiz_models.ChatMessage `json:"messages"`
}

func NewQuestionView(q quiz_models.Question) QuestionView {
	answers := make([]string, len(q.Answers))
	for i, a := range q.Answers {
		answers[i] = a.Text
	}
	return QuestionView{
		ID:       q.ID,
		Text:     q.Text,
		Subtext:  q.Subtext,
		Category: q.Category,
		Answers:  answers,
	}
}
