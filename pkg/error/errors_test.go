package error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sentinel/sentinel/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"incident not found", domain.ErrIncidentNotFound, http.StatusNotFound, "incident_not_found"},
		{"wrapped not found", fmt.Errorf("add comment: %w", domain.ErrIncidentNotFound), http.StatusNotFound, "incident_not_found"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
		{"no session", domain.ErrNoActiveSession, http.StatusUnauthorized, "no_active_session"},
		{"disabled", domain.ErrUserDisabled, http.StatusForbidden, "user_disabled"},
		{"empty comment", domain.ErrEmptyComment, http.StatusUnprocessableEntity, "empty_comment"},
		{"empty title", domain.ErrEmptyTitle, http.StatusUnprocessableEntity, "empty_title"},
		{"invalid role", domain.ErrInvalidRole, http.StatusUnprocessableEntity, "invalid_role"},
		{"app error passes through", ErrTooManyRequests, http.StatusTooManyRequests, "rate_limited"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := MapError(tt.err)
			assert.Equal(t, tt.status, appErr.Status)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}
