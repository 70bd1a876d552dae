package domain

import (
	"testing"
	"time"
)

func TestNewIncident(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	draft := IncidentDraft{
		Title:       "Database latency",
		Description: "Replica lag above 2s",
		Priority:    IncidentPriorityHigh,
		CreatedBy:   "u2",
		CreatorName: "Garrus Vakarian",
	}

	incident := NewIncident("inc-1", draft, now)

	if incident.ID != "inc-1" {
		t.Errorf("Expected ID inc-1, got %s", incident.ID)
	}

	if incident.Status != IncidentStatusOpen {
		t.Errorf("Expected default status %s, got %s", IncidentStatusOpen, incident.Status)
	}

	if !incident.CreatedAt.Equal(now) || !incident.UpdatedAt.Equal(now) {
		t.Error("CreatedAt and UpdatedAt should both equal the creation time")
	}

	if incident.Comments == nil || len(incident.Comments) != 0 {
		t.Errorf("Expected empty non-nil comments, got %v", incident.Comments)
	}

	if incident.CreatorName != "Garrus Vakarian" {
		t.Errorf("Expected creator name to be copied, got %s", incident.CreatorName)
	}
}

func TestNewIncident_KeepsExplicitStatus(t *testing.T) {
	incident := NewIncident("inc-2", IncidentDraft{Status: IncidentStatusInvestigating}, time.Now())

	if incident.Status != IncidentStatusInvestigating {
		t.Errorf("Expected status %s, got %s", IncidentStatusInvestigating, incident.Status)
	}
}

func TestIncident_SetStatus(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	incident := NewIncident("inc-1", IncidentDraft{}, created)

	later := created.Add(time.Minute)
	previous := incident.SetStatus(IncidentStatusResolved, later)

	if previous != IncidentStatusOpen {
		t.Errorf("Expected previous status %s, got %s", IncidentStatusOpen, previous)
	}
	if incident.Status != IncidentStatusResolved {
		t.Errorf("Expected status %s, got %s", IncidentStatusResolved, incident.Status)
	}
	if !incident.UpdatedAt.Equal(later) {
		t.Errorf("Expected UpdatedAt %v, got %v", later, incident.UpdatedAt)
	}

	// Any transition is allowed, including backwards and same-to-same.
	incident.SetStatus(IncidentStatusOpen, later)
	incident.SetStatus(IncidentStatusOpen, later)
	if incident.Status != IncidentStatusOpen {
		t.Errorf("Expected status %s, got %s", IncidentStatusOpen, incident.Status)
	}
}

func TestIncident_UpdatedAtNeverPrecedesCreatedAt(t *testing.T) {
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	incident := NewIncident("inc-1", IncidentDraft{}, created)

	incident.SetStatus(IncidentStatusClosed, created.Add(-time.Hour))

	if incident.UpdatedAt.Before(incident.CreatedAt) {
		t.Errorf("UpdatedAt %v precedes CreatedAt %v", incident.UpdatedAt, incident.CreatedAt)
	}
}

func TestIncident_AppendCommentPreservesOrder(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	incident := NewIncident("inc-1", IncidentDraft{}, created)
	author := User{ID: "u1", Name: "Commander Shepard"}

	incident.AppendComment(NewComment("c1", author, "first", created), created)
	incident.AppendComment(NewComment("c2", author, "second", created.Add(time.Second)), created.Add(time.Second))

	if len(incident.Comments) != 2 {
		t.Fatalf("Expected 2 comments, got %d", len(incident.Comments))
	}
	if incident.Comments[0].ID != "c1" || incident.Comments[1].ID != "c2" {
		t.Errorf("Comments out of order: %v", incident.Comments)
	}
	if incident.Comments[1].UserName != "Commander Shepard" {
		t.Errorf("Expected author name to be copied, got %s", incident.Comments[1].UserName)
	}
}

func TestIncident_CloneDoesNotShareComments(t *testing.T) {
	incident := NewIncident("inc-1", IncidentDraft{}, time.Now())
	incident.AppendComment(Comment{ID: "c1"}, time.Now())

	clone := incident.Clone()
	clone.Comments[0].Content = "changed"
	clone.Comments = append(clone.Comments, Comment{ID: "c2"})

	if incident.Comments[0].Content != "" {
		t.Error("Mutating the clone changed the original comment")
	}
	if len(incident.Comments) != 1 {
		t.Errorf("Expected original to keep 1 comment, got %d", len(incident.Comments))
	}
}

func TestIncidentStatusValues(t *testing.T) {
	tests := []struct {
		status   IncidentStatus
		expected string
	}{
		{IncidentStatusOpen, "OPEN"},
		{IncidentStatusInvestigating, "INVESTIGATING"},
		{IncidentStatusResolved, "RESOLVED"},
		{IncidentStatusClosed, "CLOSED"},
	}

	for _, tt := range tests {
		if string(tt.status) != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, string(tt.status))
		}
		if !tt.status.IsValid() {
			t.Errorf("Expected %s to be valid", tt.status)
		}
	}

	if IncidentStatus("IN_PROGRESS").IsValid() {
		t.Error("Expected IN_PROGRESS to be rejected")
	}
}

func TestIncidentPriorityValidity(t *testing.T) {
	for _, p := range IncidentPriorities {
		if !p.IsValid() {
			t.Errorf("Expected %s to be valid", p)
		}
	}
	if IncidentPriority("URGENT").IsValid() {
		t.Error("Expected URGENT to be rejected")
	}
}

func TestUserRoleValidity(t *testing.T) {
	if !UserRoleAdmin.IsValid() || !UserRoleOperator.IsValid() {
		t.Error("Expected ADMIN and OPERATOR to be valid")
	}
	if UserRole("EMPLOYEE").IsValid() {
		t.Error("Expected EMPLOYEE to be rejected")
	}
}

func BenchmarkIncident_Clone(b *testing.B) {
	incident := NewIncident("inc-1", IncidentDraft{}, time.Now())
	for i := 0; i < 20; i++ {
		incident.AppendComment(Comment{ID: "c"}, time.Now())
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		incident.Clone()
	}
}
