package ports

import (
	"context"

	"github.com/sentinel/sentinel/internal/domain"
)

// IdentityProvider hands out a completed user record for a login request
type IdentityProvider interface {
	Provision(ctx context.Context, role domain.UserRole) (domain.User, error)
}
