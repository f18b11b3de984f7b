package utils

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound  = errors.New("quiz session not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidAnswer    = errors.New("invalid answer")
	ErrQuizComplete     = errors.New("quiz already answered")
	ErrQuizIncomplete   = errors.New("quiz not finished")
	ErrReportInProgress = errors.New("report generation in progress")
	ErrReportNotReady   = errors.New("report not ready")
	ErrChatInProgress   = errors.New("chat reply in progress")
	ErrEmptyMessage     = errors.New("empty chat message")
	ErrRateLimited      = errors.New("rate limit exceeded")
	ErrSessionRestarted = errors.New("quiz session restarted")

	ErrGenerationFailed = errors.New("generation failed")
	// ErrInvalidAPIKey is always wrapped together with ErrGenerationFailed.
	ErrInvalidAPIKey = errors.New("generation api key not valid")
	ErrParseFailed   = errors.New("report parse failed")
)

// ParseError reports a model response that could not be turned into a report.
// Raw keeps the offending text for diagnosis.
type ParseError struct {
	Message string
	Raw     string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error parsing AI response: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("error parsing AI response: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParseFailed
}

func NewParseError(message, raw string, err error) *ParseError {
	return &ParseError{Message: message, Raw: raw, Err: err}
}

// WrapGenerationError marks err as a generation failure, additionally
// tagging it as a credentials failure when invalidKey is set.
func WrapGenerationError(err error, invalidKey bool) error {
	if err == nil {
		return nil
	}
	if invalidKey {
		return fmt.Errorf("%w: %w: %w", ErrGenerationFailed, ErrInvalidAPIKey, err)
	}
	return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
}
