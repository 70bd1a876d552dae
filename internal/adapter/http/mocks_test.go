package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sentinel/sentinel/internal/domain"
	"github.com/sentinel/sentinel/internal/usecase"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, role domain.UserRole) (domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAuthService) CurrentUser(ctx context.Context) (domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.User), args.Error(1)
}

// MockIncidentService is a mock implementation of IncidentService
type MockIncidentService struct {
	mock.Mock
}

func (m *MockIncidentService) CreateIncident(ctx context.Context, req usecase.CreateIncidentRequest) (domain.Incident, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Incident), args.Error(1)
}

func (m *MockIncidentService) GetIncident(ctx context.Context, id string) (domain.Incident, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Incident), args.Error(1)
}

func (m *MockIncidentService) ListIncidents(ctx context.Context, status domain.IncidentStatus, priority domain.IncidentPriority) []domain.Incident {
	args := m.Called(ctx, status, priority)
	return args.Get(0).([]domain.Incident)
}

func (m *MockIncidentService) UpdateStatus(ctx context.Context, id string, status domain.IncidentStatus) (domain.Incident, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(domain.Incident), args.Error(1)
}

func (m *MockIncidentService) AddComment(ctx context.Context, incidentID, content string) (domain.Comment, error) {
	args := m.Called(ctx, incidentID, content)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *MockIncidentService) Stats(ctx context.Context) domain.Stats {
	args := m.Called(ctx)
	return args.Get(0).(domain.Stats)
}

// MockAdvisorService is a mock implementation of AdvisorService
type MockAdvisorService struct {
	mock.Mock
}

func (m *MockAdvisorService) SuggestResolution(ctx context.Context, incidentID string) (usecase.Suggestion, error) {
	args := m.Called(ctx, incidentID)
	return args.Get(0).(usecase.Suggestion), args.Error(1)
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context) []domain.User {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User)
}

func (m *MockUserService) UpdateRole(ctx context.Context, id string, role domain.UserRole) (domain.User, error) {
	args := m.Called(ctx, id, role)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserService) ToggleStatus(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserService) AuditLogs(ctx context.Context, limit int) []domain.AuditEntry {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.AuditEntry)
}
