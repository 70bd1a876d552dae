package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sentinel/sentinel/internal/domain"
	"github.com/sentinel/sentinel/internal/infra/logger"
)

// CreateIncidentRequest represents the request to open an incident
type CreateIncidentRequest struct {
	Title       string                  `json:"title" validate:"notblank,max=200"`
	Description string                  `json:"description" validate:"max=5000"`
	Priority    domain.IncidentPriority `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH CRITICAL"`
	Status      domain.IncidentStatus   `json:"status" validate:"omitempty,oneof=OPEN INVESTIGATING RESOLVED CLOSED"`
}

// IncidentUseCase handles incident business logic
type IncidentUseCase struct {
	store  StateStore
	logger logger.Logger
}

// NewIncidentUseCase creates a new incident use case
func NewIncidentUseCase(store StateStore, log logger.Logger) *IncidentUseCase {
	return &IncidentUseCase{
		store:  store,
		logger: log,
	}
}

// CreateIncident opens a new incident on behalf of the logged-in user
func (uc *IncidentUseCase) CreateIncident(ctx context.Context, req CreateIncidentRequest) (domain.Incident, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Incident{}, domain.ErrEmptyTitle
	}
	if !req.Priority.IsValid() {
		return domain.Incident{}, domain.ErrInvalidPriority
	}
	if req.Status != "" && !req.Status.IsValid() {
		return domain.Incident{}, domain.ErrInvalidStatus
	}

	incident, ok := uc.store.AddIncident(ctx, domain.IncidentDraft{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if !ok {
		return domain.Incident{}, domain.ErrNoActiveSession
	}

	uc.logger.Info(ctx, "Incident created", map[string]interface{}{
		"incident_id": incident.ID,
		"priority":    incident.Priority,
		"created_by":  incident.CreatedBy,
	})

	return incident, nil
}

// GetIncident returns one incident
func (uc *IncidentUseCase) GetIncident(ctx context.Context, id string) (domain.Incident, error) {
	incident, ok := uc.store.Incident(id)
	if !ok {
		return domain.Incident{}, domain.ErrIncidentNotFound
	}
	return incident, nil
}

// ListIncidents returns incidents newest first, optionally filtered by status and priority
func (uc *IncidentUseCase) ListIncidents(ctx context.Context, status domain.IncidentStatus, priority domain.IncidentPriority) []domain.Incident {
	all := uc.store.Incidents()
	if status == "" && priority == "" {
		return all
	}

	filtered := make([]domain.Incident, 0, len(all))
	for _, incident := range all {
		if status != "" && incident.Status != status {
			continue
		}
		if priority != "" && incident.Priority != priority {
			continue
		}
		filtered = append(filtered, incident)
	}
	return filtered
}

// UpdateStatus moves an incident to status
func (uc *IncidentUseCase) UpdateStatus(ctx context.Context, id string, status domain.IncidentStatus) (domain.Incident, error) {
	if !status.IsValid() {
		return domain.Incident{}, domain.ErrInvalidStatus
	}

	incident, ok := uc.store.UpdateIncidentStatus(ctx, id, status)
	if !ok {
		return domain.Incident{}, domain.ErrIncidentNotFound
	}
	return incident, nil
}

// AddComment posts a comment by the logged-in user. Whitespace-only content is rejected.
func (uc *IncidentUseCase) AddComment(ctx context.Context, incidentID, content string) (domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}
	if uc.store.CurrentUser() == nil {
		return domain.Comment{}, domain.ErrNoActiveSession
	}

	comment, ok := uc.store.AddComment(ctx, incidentID, content)
	if !ok {
		// the session may have ended between the two calls
		if uc.store.CurrentUser() == nil {
			return domain.Comment{}, domain.ErrNoActiveSession
		}
		return domain.Comment{}, fmt.Errorf("add comment to %s: %w", incidentID, domain.ErrIncidentNotFound)
	}
	return comment, nil
}

// Stats returns the dashboard counters
func (uc *IncidentUseCase) Stats(ctx context.Context) domain.Stats {
	return uc.store.Stats()
}
