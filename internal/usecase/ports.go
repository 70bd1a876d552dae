package usecase

import (
	"context"

	"github.com/sentinel/sentinel/internal/domain"
)

// StateStore is the part of the state store the use cases drive.
// *store.Store implements it.
type StateStore interface {
	SetCurrentUser(ctx context.Context, user *domain.User)
	CurrentUser() *domain.User
	Logout(ctx context.Context) bool

	AddIncident(ctx context.Context, draft domain.IncidentDraft) (domain.Incident, bool)
	UpdateIncidentStatus(ctx context.Context, id string, status domain.IncidentStatus) (domain.Incident, bool)
	AddComment(ctx context.Context, incidentID, content string) (domain.Comment, bool)
	Incidents() []domain.Incident
	Incident(id string) (domain.Incident, bool)
	Stats() domain.Stats

	UpdateUserRole(ctx context.Context, id string, role domain.UserRole) (domain.User, bool)
	ToggleUserStatus(ctx context.Context, id string) (domain.User, bool)
	Users() []domain.User
	User(id string) (domain.User, bool)

	AuditLogs() []domain.AuditEntry
}
