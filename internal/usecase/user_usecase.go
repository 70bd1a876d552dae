package usecase

import (
	"context"

	"github.com/sentinel/sentinel/internal/domain"
	"github.com/sentinel/sentinel/internal/infra/logger"
)

// UserUseCase handles user management
type UserUseCase struct {
	store  StateStore
	logger logger.Logger
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(store StateStore, log logger.Logger) *UserUseCase {
	return &UserUseCase{
		store:  store,
		logger: log,
	}
}

// ListUsers returns every user
func (uc *UserUseCase) ListUsers(ctx context.Context) []domain.User {
	return uc.store.Users()
}

// UpdateRole changes the role of a user
func (uc *UserUseCase) UpdateRole(ctx context.Context, id string, role domain.UserRole) (domain.User, error) {
	if !role.IsValid() {
		return domain.User{}, domain.ErrInvalidRole
	}

	user, ok := uc.store.UpdateUserRole(ctx, id, role)
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}

	uc.logger.Info(ctx, "User role updated", map[string]interface{}{
		"user_id": id,
		"role":    role,
	})
	return user, nil
}

// ToggleStatus enables a disabled user or disables an enabled one
func (uc *UserUseCase) ToggleStatus(ctx context.Context, id string) (domain.User, error) {
	user, ok := uc.store.ToggleUserStatus(ctx, id)
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}

	uc.logger.Info(ctx, "User status toggled", map[string]interface{}{
		"user_id": id,
		"enabled": user.Enabled,
	})
	return user, nil
}

// AuditLogs returns audit entries newest first. A positive limit caps the result.
func (uc *UserUseCase) AuditLogs(ctx context.Context, limit int) []domain.AuditEntry {
	logs := uc.store.AuditLogs()
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs
}
