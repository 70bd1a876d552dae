package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sentinel/sentinel/internal/domain"
	"github.com/sentinel/sentinel/internal/infra/logger"
	"github.com/sentinel/sentinel/internal/ports"
	"github.com/sentinel/sentinel/internal/store"
)

// MockResolutionAdvisor is a mock implementation of ports.ResolutionAdvisor
type MockResolutionAdvisor struct {
	mock.Mock
}

func (m *MockResolutionAdvisor) SuggestResolution(ctx context.Context, incident domain.Incident) (ports.SuggestionResult, error) {
	args := m.Called(ctx, incident)
	return args.Get(0).(ports.SuggestionResult), args.Error(1)
}

func (m *MockResolutionAdvisor) Provider() string {
	return "mock-test"
}

// MockIdentityProvider is a mock implementation of ports.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) Provision(ctx context.Context, role domain.UserRole) (domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(domain.User), args.Error(1)
}

func newSeededStore(t *testing.T) *store.Store {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return store.New(context.Background(),
		store.WithClock(func() time.Time { return now }),
		store.WithSeed(store.DemoSeed(now)),
	)
}

func login(s *store.Store, user domain.User) {
	s.SetCurrentUser(context.Background(), &user)
}

var nopLogger = logger.NewNop()
