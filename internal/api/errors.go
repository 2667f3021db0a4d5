package api

import (
	"errors"
	"fmt"
	"net/http"

	"TrendSentinel/internal/roulette"
	"TrendSentinel/internal/session"
)

// AppError represents application-level error with HTTP status.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, field, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, Field: field, Status: status}
}

// WithError wraps an underlying error.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

func NotFoundError(message string) *AppError {
	return NewAppError("ERR_NOT_FOUND", "", message, http.StatusNotFound)
}

func BadRequestError(code, message string) *AppError {
	return NewAppError(code, "", message, http.StatusBadRequest)
}

func InternalError(message string) *AppError {
	return NewAppError("ERR_INTERNAL", "", message, http.StatusInternalServerError)
}

// toAppError classifies domain errors.
func toAppError(err error) *AppError {
	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, session.ErrNotFound):
		return NotFoundError(err.Error()).WithError(err)
	case errors.Is(err, session.ErrInvalidInput):
		return BadRequestError("ERR_INVALID_INPUT", err.Error()).WithError(err)
	case errors.Is(err, roulette.ErrInvalidStrategy):
		return BadRequestError("ERR_INVALID_STRATEGY", err.Error()).WithError(err)
	default:
		return InternalError("Something went wrong").WithError(err)
	}
}
