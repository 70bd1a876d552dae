package store

import (
	"time"

	"github.com/sentinel/sentinel/internal/domain"
)

// Seed holds the initial contents of a Store. Incidents and audit logs are newest first.
type Seed struct {
	Users     []domain.User
	Incidents []domain.Incident
	AuditLogs []domain.AuditEntry
}

// Demo users handed out by the simulated login
var (
	DemoAdmin = domain.User{
		ID:      "u1",
		Email:   "admin@sentinel.ops",
		Name:    "Commander Shepard",
		Role:    domain.UserRoleAdmin,
		Avatar:  "https://picsum.photos/seed/admin/200",
		Enabled: true,
	}
	DemoOperator = domain.User{
		ID:      "u2",
		Email:   "op@sentinel.ops",
		Name:    "Garrus Vakarian",
		Role:    domain.UserRoleOperator,
		Avatar:  "https://picsum.photos/seed/op/200",
		Enabled: true,
	}
)

// DemoSeed returns the demo dataset with timestamps relative to now
func DemoSeed(now time.Time) Seed {
	latency := domain.NewIncident("inc-1", domain.IncidentDraft{
		Title:       "Database Latency Spike - Region EU-WEST-1",
		Description: "Significant latency observed in RDS instances. Response times > 2000ms.",
		Status:      domain.IncidentStatusInvestigating,
		Priority:    domain.IncidentPriorityCritical,
		CreatedBy:   DemoOperator.ID,
		CreatorName: DemoOperator.Name,
	}, now.Add(-time.Hour))
	latency.Comments = []domain.Comment{
		domain.NewComment("c1", DemoOperator,
			"Calibrating scanners. Investigating read replicas.", now.Add(-50*time.Minute)),
	}

	deprecation := domain.NewIncident("inc-2", domain.IncidentDraft{
		Title:       "UI Component Library Deprecation",
		Description: "Need to migrate legacy buttons to new Sentinel v2 specs.",
		Status:      domain.IncidentStatusOpen,
		Priority:    domain.IncidentPriorityLow,
		CreatedBy:   DemoAdmin.ID,
		CreatorName: DemoAdmin.Name,
	}, now.Add(-24*time.Hour))

	return Seed{
		Users:     []domain.User{DemoAdmin, DemoOperator},
		Incidents: []domain.Incident{latency, deprecation},
		AuditLogs: []domain.AuditEntry{},
	}
}
