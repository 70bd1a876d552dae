package usecase

import (
	"context"
	"fmt"

	"github.com/sentinel/sentinel/internal/domain"
	"github.com/sentinel/sentinel/internal/infra/logger"
	"github.com/sentinel/sentinel/internal/ports"
)

// AuthUseCase drives the simulated login and the session lifecycle
type AuthUseCase struct {
	store    StateStore
	identity ports.IdentityProvider
	logger   logger.Logger
}

// NewAuthUseCase creates a new auth use case
func NewAuthUseCase(store StateStore, identity ports.IdentityProvider, log logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		store:    store,
		identity: identity,
		logger:   log,
	}
}

// Login provisions the identity for role and makes it the session identity
func (uc *AuthUseCase) Login(ctx context.Context, role domain.UserRole) (domain.User, error) {
	if !role.IsValid() {
		return domain.User{}, domain.ErrInvalidRole
	}

	user, err := uc.identity.Provision(ctx, role)
	if err != nil {
		logger.LogAuthEvent(ctx, uc.logger, "login", "", false, map[string]interface{}{
			"role":  role,
			"error": err.Error(),
		})
		return domain.User{}, fmt.Errorf("failed to provision identity: %w", err)
	}

	// the directory record carries role and enabled changes made since seeding
	if known, ok := uc.store.User(user.ID); ok {
		user = known
	}

	if !user.Enabled {
		logger.LogAuthEvent(ctx, uc.logger, "login", user.ID, false, map[string]interface{}{"reason": "disabled"})
		return domain.User{}, domain.ErrUserDisabled
	}

	uc.store.SetCurrentUser(ctx, &user)
	logger.LogAuthEvent(ctx, uc.logger, "login", user.ID, true, map[string]interface{}{"role": user.Role})

	return user, nil
}

// Logout ends the session
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	current := uc.store.CurrentUser()
	if !uc.store.Logout(ctx) {
		return domain.ErrNoActiveSession
	}

	userID := ""
	if current != nil {
		userID = current.ID
	}
	logger.LogAuthEvent(ctx, uc.logger, "logout", userID, true, nil)
	return nil
}

// CurrentUser returns the session identity
func (uc *AuthUseCase) CurrentUser(ctx context.Context) (domain.User, error) {
	user := uc.store.CurrentUser()
	if user == nil {
		return domain.User{}, domain.ErrNoActiveSession
	}
	return *user, nil
}
