package domain

import (
	"time"
)

// IncidentStatus represents the lifecycle status of an incident
type IncidentStatus string

const (
	IncidentStatusOpen          IncidentStatus = "OPEN"
	IncidentStatusInvestigating IncidentStatus = "INVESTIGATING"
	IncidentStatusResolved      IncidentStatus = "RESOLVED"
	IncidentStatusClosed        IncidentStatus = "CLOSED"
)

// IncidentPriority represents the priority of an incident
type IncidentPriority string

const (
	IncidentPriorityLow      IncidentPriority = "LOW"
	IncidentPriorityMedium   IncidentPriority = "MEDIUM"
	IncidentPriorityHigh     IncidentPriority = "HIGH"
	IncidentPriorityCritical IncidentPriority = "CRITICAL"
)

// IncidentStatuses lists every status in lifecycle order.
var IncidentStatuses = []IncidentStatus{
	IncidentStatusOpen,
	IncidentStatusInvestigating,
	IncidentStatusResolved,
	IncidentStatusClosed,
}

// IncidentPriorities lists every priority from lowest to highest.
var IncidentPriorities = []IncidentPriority{
	IncidentPriorityLow,
	IncidentPriorityMedium,
	IncidentPriorityHigh,
	IncidentPriorityCritical,
}

// IsValid reports whether s is a known status.
func (s IncidentStatus) IsValid() bool {
	for _, known := range IncidentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsValid reports whether p is a known priority.
func (p IncidentPriority) IsValid() bool {
	for _, known := range IncidentPriorities {
		if p == known {
			return true
		}
	}
	return false
}

// Incident represents a tracked operational issue.
// CreatorName is copied from the creator at creation time and is not kept in sync.
type Incident struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      IncidentStatus   `json:"status"`
	Priority    IncidentPriority `json:"priority"`
	CreatedBy   string           `json:"created_by"`
	CreatorName string           `json:"creator_name"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Comments    []Comment        `json:"comments"`
}

// IncidentDraft carries the caller-supplied fields of a new incident.
// ID, timestamps and comments are always assigned by the store.
type IncidentDraft struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      IncidentStatus   `json:"status"`
	Priority    IncidentPriority `json:"priority"`
	CreatedBy   string           `json:"created_by"`
	CreatorName string           `json:"creator_name"`
}

// NewIncident builds an incident from a draft with both timestamps set to now
func NewIncident(id string, draft IncidentDraft, now time.Time) Incident {
	status := draft.Status
	if status == "" {
		status = IncidentStatusOpen
	}
	return Incident{
		ID:          id,
		Title:       draft.Title,
		Description: draft.Description,
		Status:      status,
		Priority:    draft.Priority,
		CreatedBy:   draft.CreatedBy,
		CreatorName: draft.CreatorName,
		CreatedAt:   now,
		UpdatedAt:   now,
		Comments:    []Comment{},
	}
}

// SetStatus moves the incident to status. Every transition is allowed,
// including one to the current status.
func (i *Incident) SetStatus(status IncidentStatus, now time.Time) IncidentStatus {
	previous := i.Status
	i.Status = status
	i.touch(now)
	return previous
}

// AppendComment adds c after all existing comments.
func (i *Incident) AppendComment(c Comment, now time.Time) {
	i.Comments = append(i.Comments, c)
	i.touch(now)
}

// touch keeps UpdatedAt from ever preceding CreatedAt, even with a skewed clock.
func (i *Incident) touch(now time.Time) {
	if now.Before(i.CreatedAt) {
		now = i.CreatedAt
	}
	i.UpdatedAt = now
}

// Clone returns a copy that shares no comment storage with i.
func (i Incident) Clone() Incident {
	comments := make([]Comment, len(i.Comments))
	copy(comments, i.Comments)
	i.Comments = comments
	return i
}

// IsCritical reports whether the incident carries the highest priority
func (i Incident) IsCritical() bool {
	return i.Priority == IncidentPriorityCritical
}
