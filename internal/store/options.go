package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sentinel/sentinel/internal/domain"
	"github.com/sentinel/sentinel/internal/infra/logger"
	"github.com/sentinel/sentinel/internal/ports"
)

// Clock returns the current time
type Clock func() time.Time

// IDGenerator returns a new unique id carrying prefix, e.g. "inc"
type IDGenerator func(prefix string) string

// AuditHook is called after an audit entry has been appended, outside the store lock.
// Hooks run one at a time in audit log order and must not call back into the Store.
type AuditHook func(ctx context.Context, entry domain.AuditEntry)

// Option configures a Store
type Option func(*Store)

// WithClock sets the time source used for every timestamp
func WithClock(clock Clock) Option {
	return func(s *Store) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator sets the id source for incidents, comments and audit entries
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithSessionRepository persists the session identity through repo
func WithSessionRepository(repo ports.SessionRepository) Option {
	return func(s *Store) {
		s.sessions = repo
	}
}

// WithLogger sets the logger
func WithLogger(log logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithAuditHook registers hook to observe every new audit entry
func WithAuditHook(hook AuditHook) Option {
	return func(s *Store) {
		if hook != nil {
			s.hooks = append(s.hooks, hook)
		}
	}
}

// WithSeed preloads the collections
func WithSeed(seed Seed) Option {
	return func(s *Store) {
		s.seed = seed
	}
}

// UUIDGenerator generates ids of the form "<prefix>-<uuid>"
func UUIDGenerator(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return prefix + "-" + uuid.NewString()
}
