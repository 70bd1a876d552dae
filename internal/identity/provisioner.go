// Package identity simulates a login handshake that hands out one of two
// canned operator identities.
package identity

import (
	"context"
	"time"

	"github.com/sentinel/sentinel/internal/domain"
	"github.com/sentinel/sentinel/internal/store"
)

// DefaultDelay is how long the simulated handshake takes
const DefaultDelay = 1500 * time.Millisecond

// CannedProvisioner implements ports.IdentityProvider with fixed identities
type CannedProvisioner struct {
	delay    time.Duration
	admin    domain.User
	operator domain.User
}

// NewCannedProvisioner creates a provisioner that waits delay before answering
func NewCannedProvisioner(delay time.Duration) *CannedProvisioner {
	if delay < 0 {
		delay = 0
	}
	return &CannedProvisioner{
		delay:    delay,
		admin:    store.DemoAdmin,
		operator: store.DemoOperator,
	}
}

// Provision returns the admin identity for ADMIN and the operator identity otherwise
func (p *CannedProvisioner) Provision(ctx context.Context, role domain.UserRole) (domain.User, error) {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return domain.User{}, ctx.Err()
		}
	}

	if role == domain.UserRoleAdmin {
		return p.admin, nil
	}
	return p.operator, nil
}
