package domain

import "time"

// AuditAction tags the kind of mutation an audit entry records
type AuditAction string

const (
	AuditActionCreate           AuditAction = "CREATE"
	AuditActionUpdateStatus     AuditAction = "UPDATE_STATUS"
	AuditActionAddComment       AuditAction = "ADD_COMMENT"
	AuditActionUpdateUserRole   AuditAction = "UPDATE_USER_ROLE"
	AuditActionToggleUserStatus AuditAction = "TOGGLE_USER_STATUS"
	AuditActionLogout           AuditAction = "LOGOUT"
)

// EntityType is the kind of entity an audit entry targets
type EntityType string

const (
	EntityTypeIncident EntityType = "INCIDENT"
	EntityTypeUser     EntityType = "USER"
	EntityTypeAuth     EntityType = "AUTH"
)

// AuditEntry represents an immutable record of one mutation
type AuditEntry struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	UserName   string      `json:"user_name"`
	Action     AuditAction `json:"action"`
	EntityID   string      `json:"entity_id"`
	EntityType EntityType  `json:"entity_type"`
	Timestamp  time.Time   `json:"timestamp"`
	Details    string      `json:"details"`
}

// NewAuditEntry creates an audit entry attributed to actor
func NewAuditEntry(id string, actor User, action AuditAction, entityID string, entityType EntityType, details string, now time.Time) AuditEntry {
	return AuditEntry{
		ID:         id,
		UserID:     actor.ID,
		UserName:   actor.Name,
		Action:     action,
		EntityID:   entityID,
		EntityType: entityType,
		Timestamp:  now,
		Details:    details,
	}
}
