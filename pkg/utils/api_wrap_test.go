package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err     error
		status  int
		message string
	}{
		{ErrSessionNotFound, http.StatusNotFound, "Quiz session not found"},
		{fmt.Errorf("%w: index 9", ErrInvalidAnswer), http.StatusBadRequest, "Invalid answer"},
		{ErrQuizIncomplete, http.StatusConflict, "Answer all questions before requesting the report"},
		{ErrReportNotReady, http.StatusUnprocessableEntity, "Report is not ready yet"},
		{ErrRateLimited, http.StatusTooManyRequests, "Too many requests"},
		{WrapGenerationError(errors.New("401"), true), http.StatusServiceUnavailable, MsgServiceUnavailable},
		{WrapGenerationError(errors.New("500"), false), http.StatusBadGateway, MsgAnalysisFailed},
		{fmt.Errorf("parse report: %w", NewParseError("missing or invalid longTermVision", "{}", nil)), http.StatusBadGateway, MsgAnalysisFailed},
		{context.DeadlineExceeded, http.StatusGatewayTimeout, MsgAnalysisFailed},
		{ErrSessionRestarted, http.StatusConflict, "Quiz was restarted"},
		{WrapGenerationError(fmt.Errorf("gemini: %w", context.Canceled), false), http.StatusConflict, "Quiz session was closed"},
		{errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Set("trace_id", "trace-1")

			HandleServiceError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tt.status, body.Code)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, "trace-1", body.TraceID)
		})
	}
}

func TestWrapGenerationError(t *testing.T) {
	assert.Nil(t, WrapGenerationError(nil, true))

	err := WrapGenerationError(errors.New("bad key"), true)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, ErrInvalidAPIKey)
	assert.Equal(t, MsgServiceUnavailable, UserMessageForGenerationError(err))

	err = WrapGenerationError(errors.New("quota"), false)
	assert.False(t, errors.Is(err, ErrInvalidAPIKey))
	assert.Equal(t, MsgAnalysisFailed, UserMessageForGenerationError(err))
}

func TestParseError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewParseError("invalid JSON in response", "{", cause)

	assert.ErrorIs(t, err, ErrParseFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "error parsing AI response: invalid JSON in response: unexpected end of JSON input", err.Error())
}

func TestGenerationTimeoutMapsToGatewayTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleServiceError(c, WrapGenerationError(fmt.Errorf("gemini: %w", context.DeadlineExceeded), false))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}
