package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riderquiz/internal/models/response_models"
	"riderquiz/internal/prompts"
	"riderquiz/internal/repositories"
	"riderquiz/internal/services"
	"riderquiz/pkg/memcache"
)

const stubReport = `{
  "personalizedAnalysis": "Jeździec sportowy z dużą ambicją.",
  "detailedRecommendations": ["Pracuj nad rytmem"],
  "customizedTrainingPlan": "Cele krótkoterminowe:\n• Rytm\n• Równowaga\n• Kontakt",
  "strengthsAndWeaknesses": {"strengths": ["Determinacja"], "areasForImprovement": ["Cierpliwość"]},
  "longTermVision": "Ścieżka rozwoju:\n• Zawody regionalne"
}`

type stubGenerator struct{}

func (stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "PYTANIE JEŹDŹCA") {
		return "Rozgrzewka: 10 minut stępa.", nil
	}
	return stubReport, nil
}

func (stubGenerator) Model() string { return "stub" }

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := repositories.NewQuestionRepository()
	require.NoError(t, err)
	renderer, err := prompts.NewRenderer()
	require.NoError(t, err)
	store, err := memcache.NewSessions(16, time.Hour)
	require.NoError(t, err)

	gen := stubGenerator{}
	sessions := services.NewQuizSessionService(
		repo,
		services.NewScoringService(),
		services.NewReportService(gen, renderer, nil),
		services.NewChatService(gen, renderer, nil),
		store,
		nil,
		services.SessionServiceConfig{GenerationTimeout: 5 * time.Second},
	)
	ctrl := NewQuizController(services.NewQuestionService(repo), sessions)

	r := gin.New()
	g := r.Group("/quiz")
	g.GET("/questions", ctrl.ListQuestionsHandler)
	g.GET("/rider-types", ctrl.ListRiderTypesHandler)
	g.POST("/sessions", ctrl.StartSessionHandler)
	g.GET("/sessions/:id", ctrl.GetSessionHandler)
	g.DELETE("/sessions/:id", ctrl.DeleteSessionHandler)
	g.POST("/sessions/:id/answers", ctrl.SubmitAnswerHandler)
	g.POST("/sessions/:id/report", ctrl.GenerateReportHandler)
	g.POST("/sessions/:id/chat", ctrl.ChatHandler)
	g.GET("/sessions/:id/chat", ctrl.ChatHistoryHandler)
	g.POST("/sessions/:id/restart", ctrl.RestartSessionHandler)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestQuizController_FullFlow(t *testing.T) {
	r := newTestRouter(t)

	code, env := do(t, r, http.MethodPost, "/quiz/sessions", nil)
	require.Equal(t, http.StatusOK, code)
	var sess response_models.QuizSessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &sess))
	require.NotEmpty(t, sess.SessionID)
	require.NotNil(t, sess.CurrentQuestion)
	base := "/quiz/sessions/" + sess.SessionID

	code, env = do(t, r, http.MethodPost, base+"/report", nil)
	assert.Equal(t, http.StatusConflict, code)

	for !sess.IsComplete {
		code, env = do(t, r, http.MethodPost, base+"/answers", map[string]any{
			"question_id":  sess.CurrentQuestion.ID,
			"answer_index": 0,
		})
		require.Equal(t, http.StatusOK, code, env.Message)
		var feedback response_models.AnswerFeedbackResponse
		require.NoError(t, json.Unmarshal(env.Data, &feedback))
		sess = feedback.Session
	}
	assert.Equal(t, sess.TotalSteps, sess.CurrentStep)

	code, env = do(t, r, http.MethodPost, base+"/report", nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var result response_models.QuizResultResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	sum := 0
	for _, v := range result.Scoring.Scores {
		sum += v
	}
	assert.Equal(t, 100, sum)
	assert.Equal(t, "Jeździec sportowy z dużą ambicją.", result.Report.PersonalizedAnalysis)
	assert.NotEmpty(t, result.ChatGreeting)
	require.NotEmpty(t, result.TrainingPlan)
	assert.Equal(t, []string{"Rytm", "Równowaga", "Kontakt"}, result.TrainingPlan[0].Items)

	code, env = do(t, r, http.MethodPost, base+"/chat", map[string]string{"message": "Jak się rozgrzać?"})
	require.Equal(t, http.StatusOK, code, env.Message)
	var reply response_models.ChatReplyResponse
	require.NoError(t, json.Unmarshal(env.Data, &reply))
	assert.Equal(t, "Rozgrzewka: 10 minut stępa.", reply.Reply.Content)
	assert.False(t, reply.Fallback)

	code, env = do(t, r, http.MethodGet, base+"/chat", nil)
	require.Equal(t, http.StatusOK, code)
	var history response_models.ChatHistoryResponse
	require.NoError(t, json.Unmarshal(env.Data, &history))
	assert.Len(t, history.Messages, 2)

	code, _ = do(t, r, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestQuizController_BadRequests(t *testing.T) {
	r := newTestRouter(t)

	code, env := do(t, r, http.MethodPost, "/quiz/sessions", nil)
	require.Equal(t, http.StatusOK, code)
	var sess response_models.QuizSessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &sess))
	base := "/quiz/sessions/" + sess.SessionID

	code, env = do(t, r, http.MethodPost, base+"/answers", map[string]any{"question_id": sess.CurrentQuestion.ID})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "question_id and answer_index are required", env.Message)

	code, _ = do(t, r, http.MethodPost, base+"/answers", map[string]any{
		"question_id":  sess.CurrentQuestion.ID,
		"answer_index": 99,
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = do(t, r, http.MethodPost, base+"/chat", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "message is required", env.Message)

	code, _ = do(t, r, http.MethodPost, base+"/chat", map[string]string{"message": "Hej"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, _ = do(t, r, http.MethodGet, "/quiz/sessions/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestQuizController_Catalogue(t *testing.T) {
	r := newTestRouter(t)

	code, env := do(t, r, http.MethodGet, "/quiz/questions", nil)
	require.Equal(t, http.StatusOK, code)
	var list response_models.QuestionListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 15, list.Count)
	assert.Len(t, list.Questions, 15)

	code, env = do(t, r, http.MethodGet, "/quiz/rider-types", nil)
	require.Equal(t, http.StatusOK, code)
	var profiles []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &profiles))
	assert.Len(t, profiles, 4)
}
