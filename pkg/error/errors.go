package error

import (
	"errors"
	"net/http"

	"github.com/sentinel/sentinel/internal/domain"
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *AppError) Error() string {
	return e.Message
}

var ErrTooManyRequests = &AppError{Code: "rate_limited", Message: "Too many requests", Status: http.StatusTooManyRequests}

func NewValidation(code, message string) *AppError {
	return &AppError{Code: code, Message: message, Status: http.StatusUnprocessableEntity}
}

func NewUnauthorized(code, message string) *AppError {
	return &AppError{Code: code, Message: message, Status: http.StatusUnauthorized}
}

func NewForbidden(code, message string) *AppError {
	return &AppError{Code: code, Message: message, Status: http.StatusForbidden}
}

func NewNotFound(code, message string) *AppError {
	return &AppError{Code: code, Message: message, Status: http.StatusNotFound}
}

func NewInternalServer(message string) *AppError {
	return &AppError{Code: "internal_error", Message: message, Status: http.StatusInternalServerError}
}

// MapError translates domain errors into their HTTP representation
func MapError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domain.ErrIncidentNotFound):
		return NewNotFound("incident_not_found", "Incident not found")
	case errors.Is(err, domain.ErrUserNotFound):
		return NewNotFound("user_not_found", "User not found")
	case errors.Is(err, domain.ErrNoActiveSession):
		return NewUnauthorized("no_active_session", "No active session")
	case errors.Is(err, domain.ErrUserDisabled):
		return NewForbidden("user_disabled", "User is disabled")
	case errors.Is(err, domain.ErrEmptyTitle):
		return NewValidation("empty_title", "Incident title is required")
	case errors.Is(err, domain.ErrEmptyComment):
		return NewValidation("empty_comment", "Comment content is required")
	case errors.Is(err, domain.ErrInvalidStatus):
		return NewValidation("invalid_status", "Invalid incident status")
	case errors.Is(err, domain.ErrInvalidPriority):
		return NewValidation("invalid_priority", "Invalid incident priority")
	case errors.Is(err, domain.ErrInvalidRole):
		return NewValidation("invalid_role", "Invalid user role")
	default:
		return NewInternalServer("An unexpected error occurred")
	}
}
