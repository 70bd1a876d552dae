package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sentinel/sentinel/internal/domain"
	"github.com/sentinel/sentinel/internal/store"
)

func TestAuthUseCase_Login(t *testing.T) {
	s := newSeededStore(t)
	identity := new(MockIdentityProvider)
	identity.On("Provision", mock.Anything, domain.UserRoleAdmin).Return(store.DemoAdmin, nil)
	uc := NewAuthUseCase(s, identity, nopLogger)

	user, err := uc.Login(context.Background(), domain.UserRoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	require.NotNil(t, s.CurrentUser())
	assert.Equal(t, "u1", s.CurrentUser().ID)
	assert.Empty(t, s.AuditLogs(), "login is not audited")
	identity.AssertExpectations(t)
}

func TestAuthUseCase_LoginFailures(t *testing.T) {
	disabled := store.DemoOperator
	disabled.ID = "u9"
	disabled.Enabled = false

	tests := []struct {
		name      string
		role      domain.UserRole
		user      domain.User
		provErr   error
		expectErr error
	}{
		{name: "invalid role", role: "GUEST", expectErr: domain.ErrInvalidRole},
		{name: "provisioning failed", role: domain.UserRoleOperator, provErr: context.Canceled, expectErr: context.Canceled},
		{name: "disabled identity", role: domain.UserRoleOperator, user: disabled, expectErr: domain.ErrUserDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSeededStore(t)
			identity := new(MockIdentityProvider)
			identity.On("Provision", mock.Anything, tt.role).Return(tt.user, tt.provErr)
			uc := NewAuthUseCase(s, identity, nopLogger)

			_, err := uc.Login(context.Background(), tt.role)

			assert.True(t, errors.Is(err, tt.expectErr), "got %v", err)
			assert.Nil(t, s.CurrentUser())
		})
	}
}

func TestAuthUseCase_LoginUsesDirectoryRecord(t *testing.T) {
	s := newSeededStore(t)
	_, ok := s.UpdateUserRole(context.Background(), "u2", domain.UserRoleAdmin)
	require.True(t, ok)

	identity := new(MockIdentityProvider)
	identity.On("Provision", mock.Anything, domain.UserRoleOperator).Return(store.DemoOperator, nil)
	uc := NewAuthUseCase(s, identity, nopLogger)

	user, err := uc.Login(context.Background(), domain.UserRoleOperator)
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleAdmin, user.Role)

	require.NoError(t, uc.Logout(context.Background()))
	_, ok = s.ToggleUserStatus(context.Background(), "u2")
	require.True(t, ok)

	_, err = uc.Login(context.Background(), domain.UserRoleOperator)
	assert.ErrorIs(t, err, domain.ErrUserDisabled)
	assert.Nil(t, s.CurrentUser())
}

func TestAuthUseCase_LogoutAndCurrentUser(t *testing.T) {
	s := newSeededStore(t)
	uc := NewAuthUseCase(s, new(MockIdentityProvider), nopLogger)

	_, err := uc.CurrentUser(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
	assert.ErrorIs(t, uc.Logout(context.Background()), domain.ErrNoActiveSession)
	assert.Empty(t, s.AuditLogs())

	login(s, store.DemoOperator)
	user, err := uc.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Garrus Vakarian", user.Name)

	require.NoError(t, uc.Logout(context.Background()))
	assert.Nil(t, s.CurrentUser())
	logs := s.AuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, domain.AuditActionLogout, logs[0].Action)
	assert.Equal(t, "Garrus Vakarian", logs[0].UserName)
}
