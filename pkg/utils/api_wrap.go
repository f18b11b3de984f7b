package utils

import (
	"context"
	"errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"net/http"
)

const (
	MsgAnalysisFailed     = "Przepraszamy, wystąpił błąd podczas analizy wyników. Prosimy spróbować ponownie za chwilę."
	MsgServiceUnavailable = "Przepraszamy, usługa analizy jest obecnie niedostępna. Prosimy spróbować ponownie później lub skontaktować się z administratorem."
	MsgChatFallback       = "Błąd systemu. Proszę spróbować ponownie."
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// UserMessageForGenerationError picks the message shown to the rider when a
// report could not be produced.
func UserMessageForGenerationError(err error) string {
	if errors.Is(err, ErrInvalidAPIKey) {
		return MsgServiceUnavailable
	}
	return MsgAnalysisFailed
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Quiz session not found")
	case errors.Is(err, ErrQuestionNotFound):
		RespondError(c, http.StatusNotFound, "Question not found")
	case errors.Is(err, ErrInvalidAnswer):
		RespondError(c, http.StatusBadRequest, "Invalid answer")
	case errors.Is(err, ErrEmptyMessage):
		RespondError(c, http.StatusBadRequest, "Message must not be empty")
	case errors.Is(err, ErrQuizComplete):
		RespondError(c, http.StatusConflict, "All questions are already answered")
	case errors.Is(err, ErrQuizIncomplete):
		RespondError(c, http.StatusConflict, "Answer all questions before requesting the report")
	case errors.Is(err, ErrReportInProgress):
		RespondError(c, http.StatusConflict, "Report is being generated")
	case errors.Is(err, ErrChatInProgress):
		RespondError(c, http.StatusConflict, "Previous message is still being answered")
	case errors.Is(err, ErrSessionRestarted):
		RespondError(c, http.StatusConflict, "Quiz was restarted")
	case errors.Is(err, context.Canceled):
		RespondError(c, http.StatusConflict, "Quiz session was closed")
	case errors.Is(err, ErrReportNotReady):
		RespondError(c, http.StatusUnprocessableEntity, "Report is not ready yet")
	case errors.Is(err, ErrRateLimited):
		RespondError(c, http.StatusTooManyRequests, "Too many requests")
	case errors.Is(err, ErrInvalidAPIKey):
		zap.L().Error("generation credentials rejected", zap.Error(err))
		RespondError(c, http.StatusServiceUnavailable, MsgServiceUnavailable)
	case errors.Is(err, context.DeadlineExceeded):
		zap.L().Warn("request timed out", zap.Error(err))
		RespondError(c, http.StatusGatewayTimeout, MsgAnalysisFailed)
	case errors.Is(err, ErrParseFailed), errors.Is(err, ErrGenerationFailed):
		zap.L().Warn("report generation failed", zap.Error(err))
		RespondError(c, http.StatusBadGateway, MsgAnalysisFailed)
	default:
		zap.L().Error("unknown error", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
