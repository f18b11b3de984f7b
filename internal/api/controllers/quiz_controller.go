package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"riderquiz/internal/models/request_models"
	"riderquiz/internal/services"
	"riderquiz/pkg/utils"
)

type QuizController struct {
	questionService services.QuestionServiceInterface
	sessionService  services.QuizSessionServiceInterface
}

func NewQuizController(
	questionService services.QuestionServiceInterface,
	sessionService services.QuizSessionServiceInterface,
) *QuizController {
	return &QuizController{
		questionService: questionService,
		sessionService:  sessionService,
	}
}

// GET /quiz/questions
func (q *QuizController) ListQuestionsHandler(c *gin.Context) {
	questions, err := q.questionService.ListQuestions(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, questions, "Fetched questions successfully")
}

// GET /quiz/rider-types
func (q *QuizController) ListRiderTypesHandler(c *gin.Context) {
	profiles, err := q.questionService.ListRiderTypes(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, profiles, "Fetched rider types successfully")
}

// POST /quiz/sessions
func (q *QuizController) StartSessionHandler(c *gin.Context) {
	resp, err := q.sessionService.StartSession(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Quiz started")
}

// GET /quiz/sessions/:id
func (q *QuizController) GetSessionHandler(c *gin.Context) {
	resp, err := q.sessionService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "")
}

// POST /quiz/sessions/:id/answers
func (q *QuizController) SubmitAnswerHandler(c *gin.Context) {
	var req request_models.SubmitAnswerRequest // { "question_id": "...", "answer_index": 0 }
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "question_id and answer_index are required")
		return
	}

	resp, err := q.sessionService.SubmitAnswer(c.Request.Context(), c.Param("id"), req.QuestionID, *req.AnswerIndex)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Answer accepted")
}

// POST /quiz/sessions/:id/report
func (q *QuizController) GenerateReportHandler(c *gin.Context) {
	resp, err := q.sessionService.GenerateReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Report generated")
}

// POST /quiz/sessions/:id/chat
func (q *QuizController) ChatHandler(c *gin.Context) {
	var req request_models.ChatMessageRequest // { "message": "..." }
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "message is required")
		return
	}

	resp, err := q.sessionService.Chat(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "")
}

// GET /quiz/sessions/:id/chat
func (q *QuizController) ChatHistoryHandler(c *gin.Context) {
	resp, err := q.sessionService.ChatHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "")
}

// POST /quiz/sessions/:id/restart
func (q *QuizController) RestartSessionHandler(c *gin.Context) {
	resp, err := q.sessionService.RestartSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Quiz restarted")
}

// DELETE /quiz/sessions/:id
func (q *QuizController) DeleteSessionHandler(c *gin.Context) {
	if err := q.sessionService.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Quiz session deleted")
}
