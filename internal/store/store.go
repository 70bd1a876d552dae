// Package store holds the authoritative in-memory state of the console:
// incidents, users, the audit log and the session identity.
//
// Mutations never fail. An unknown id makes them a no-op, reported through the
// returned bool, and nothing is recorded. Creating, commenting and logging out
// additionally require a session; other mutations made without one are
// attributed to domain.SystemUser.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sentinel/sentinel/internal/domain"
	"github.com/sentinel/sentinel/internal/infra/logger"
	"github.com/sentinel/sentinel/internal/ports"
)

// Store is the single owner of session state. It is safe for concurrent use.
//
// Locks are taken in the order sessionMu, mu, hookMu. sessionMu spans an identity
// change and its storage write so the persisted copy follows the last change.
// hookMu is acquired before mu is released so hooks observe entries in audit log order.
type Store struct {
	sessionMu   sync.Mutex
	mu          sync.Mutex
	hookMu      sync.Mutex
	currentUser *domain.User
	incidents   []domain.Incident
	users       []domain.User
	auditLogs   []domain.AuditEntry

	now      Clock
	newID    IDGenerator
	sessions ports.SessionRepository
	logger   logger.Logger
	hooks    []AuditHook
	seed     Seed
}

// New creates a store and restores the persisted session identity, if any
func New(ctx context.Context, opts ...Option) *Store {
	s := &Store{
		now:    time.Now,
		newID:  UUIDGenerator,
		logger: logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.users = cloneUsers(s.seed.Users)
	s.incidents = cloneIncidents(s.seed.Incidents)
	s.auditLogs = append([]domain.AuditEntry{}, s.seed.AuditLogs...)
	s.seed = Seed{}

	if s.sessions != nil {
		user, err := s.sessions.Load(ctx)
		if err != nil {
			s.logger.Warn(ctx, "Failed to restore session identity", map[string]interface{}{
				"error": err.Error(),
			})
		} else if user != nil {
			s.currentUser = user
			s.logger.Info(ctx, "Session identity restored", map[string]interface{}{
				"user_id": user.ID,
			})
		}
	}

	return s
}

// SetCurrentUser replaces the session identity. A nil user logs out without an audit entry.
func (s *Store) SetCurrentUser(ctx context.Context, user *domain.User) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	s.mu.Lock()
	if user == nil {
		s.currentUser = nil
	} else {
		u := *user
		s.currentUser = &u
	}
	s.mu.Unlock()

	s.persist(ctx, user)
}

// CurrentUser returns the session identity or nil
func (s *Store) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return nil
	}
	u := *s.currentUser
	return &u
}

// AddIncident creates an incident from draft on behalf of the current user.
// Empty creator fields are filled from the current user.
func (s *Store) AddIncident(ctx context.Context, draft domain.IncidentDraft) (domain.Incident, bool) {
	s.mu.Lock()
	if s.currentUser == nil {
		s.mu.Unlock()
		return domain.Incident{}, false
	}
	actor := *s.currentUser
	if draft.CreatedBy == "" {
		draft.CreatedBy = actor.ID
	}
	if draft.CreatorName == "" {
		draft.CreatorName = actor.Name
	}

	now := s.now()
	incident := domain.NewIncident(s.newID("inc"), draft, now)
	s.incidents = append([]domain.Incident{incident}, s.incidents...)
	entry := s.record(actor, domain.AuditActionCreate, incident.ID, domain.EntityTypeIncident,
		fmt.Sprintf("Created: %s", incident.Title), now)
	s.publish(ctx, entry)
	return incident.Clone(), true
}

// UpdateIncidentStatus moves incident id to status. Every transition is applied and recorded,
// including one to the current status.
func (s *Store) UpdateIncidentStatus(ctx context.Context, id string, status domain.IncidentStatus) (domain.Incident, bool) {
	s.mu.Lock()
	idx := s.incidentIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Incident{}, false
	}

	now := s.now()
	incident := &s.incidents[idx]
	previous := incident.SetStatus(status, now)
	entry := s.record(s.actor(), domain.AuditActionUpdateStatus, id, domain.EntityTypeIncident,
		fmt.Sprintf("Status changed from %s to %s", previous, status), now)
	updated := incident.Clone()
	s.publish(ctx, entry)
	return updated, true
}

// AddComment appends a comment by the current user to incident incidentID.
// Content is stored as given.
func (s *Store) AddComment(ctx context.Context, incidentID, content string) (domain.Comment, bool) {
	s.mu.Lock()
	if s.currentUser == nil {
		s.mu.Unlock()
		return domain.Comment{}, false
	}
	idx := s.incidentIndex(incidentID)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Comment{}, false
	}

	actor := *s.currentUser
	now := s.now()
	comment := domain.NewComment(s.newID("comment"), actor, content, now)
	s.incidents[idx].AppendComment(comment, now)
	entry := s.record(actor, domain.AuditActionAddComment, incidentID, domain.EntityTypeIncident,
		"New comment added", now)
	s.publish(ctx, entry)
	return comment, true
}

// UpdateUserRole sets the role of user id
func (s *Store) UpdateUserRole(ctx context.Context, id string, role domain.UserRole) (domain.User, bool) {
	s.mu.Lock()
	idx := s.userIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.User{}, false
	}

	s.users[idx].Role = role
	entry := s.record(s.actor(), domain.AuditActionUpdateUserRole, id, domain.EntityTypeUser,
		fmt.Sprintf("Role changed to %s", role), s.now())
	updated := s.users[idx]
	s.publish(ctx, entry)
	return updated, true
}

// ToggleUserStatus flips the enabled flag of user id
func (s *Store) ToggleUserStatus(ctx context.Context, id string) (domain.User, bool) {
	s.mu.Lock()
	idx := s.userIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.User{}, false
	}

	s.users[idx].Enabled = !s.users[idx].Enabled
	entry := s.record(s.actor(), domain.AuditActionToggleUserStatus, id, domain.EntityTypeUser,
		fmt.Sprintf("Status toggled to %t", s.users[idx].Enabled), s.now())
	updated := s.users[idx]
	s.publish(ctx, entry)
	return updated, true
}

// Logout records a LOGOUT entry for the current user and clears the session.
// Without a current user it does nothing.
func (s *Store) Logout(ctx context.Context) bool {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	s.mu.Lock()
	if s.currentUser == nil {
		s.mu.Unlock()
		return false
	}

	actor := *s.currentUser
	entry := s.record(actor, domain.AuditActionLogout, actor.ID, domain.EntityTypeAuth,
		"User logged out", s.now())
	s.currentUser = nil
	s.publish(ctx, entry)

	s.persist(ctx, nil)
	return true
}

// Stats computes incident counters from the current collection
func (s *Store) Stats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.ComputeStats(s.incidents)
}

// Incidents returns every incident, newest first
func (s *Store) Incidents() []domain.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneIncidents(s.incidents)
}

// Incident returns the incident with id
func (s *Store) Incident(id string) (domain.Incident, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.incidentIndex(id)
	if idx < 0 {
		return domain.Incident{}, false
	}
	return s.incidents[idx].Clone(), true
}

// Users returns every user
func (s *Store) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneUsers(s.users)
}

// User returns the user with id
func (s *Store) User(id string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.userIndex(id)
	if idx < 0 {
		return domain.User{}, false
	}
	return s.users[idx], true
}

// AuditLogs returns the audit log, newest first
func (s *Store) AuditLogs() []domain.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.AuditEntry{}, s.auditLogs...)
}

// record prepends an audit entry. Caller must hold mu.
func (s *Store) record(actor domain.User, action domain.AuditAction, entityID string, entityType domain.EntityType, details string, now time.Time) domain.AuditEntry {
	entry := domain.NewAuditEntry(s.newID("log"), actor, action, entityID, entityType, details, now)
	s.auditLogs = append([]domain.AuditEntry{entry}, s.auditLogs...)
	return entry
}

// actor returns the user mutations are attributed to. Caller must hold mu.
func (s *Store) actor() domain.User {
	if s.currentUser == nil {
		return domain.SystemUser
	}
	return *s.currentUser
}

func (s *Store) incidentIndex(id string) int {
	for i := range s.incidents {
		if s.incidents[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) userIndex(id string) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

// publish releases mu and hands entry to the hooks. Caller must hold mu.
func (s *Store) publish(ctx context.Context, entry domain.AuditEntry) {
	s.hookMu.Lock()
	s.mu.Unlock()
	defer s.hookMu.Unlock()

	s.notify(ctx, entry)
}

func (s *Store) notify(ctx context.Context, entry domain.AuditEntry) {
	s.logger.Info(ctx, "Audit entry recorded", map[string]interface{}{
		"audit_id":    entry.ID,
		"action":      entry.Action,
		"entity_id":   entry.EntityID,
		"entity_type": entry.EntityType,
		"user_id":     entry.UserID,
	})
	for _, hook := range s.hooks {
		hook(ctx, entry)
	}
}

// persist writes or clears the stored identity. Failures are logged only.
func (s *Store) persist(ctx context.Context, user *domain.User) {
	if s.sessions == nil {
		return
	}

	var err error
	if user == nil {
		err = s.sessions.Clear(ctx)
	} else {
		err = s.sessions.Save(ctx, *user)
	}
	if err != nil {
		s.logger.Error(ctx, "Failed to persist session identity", err, nil)
	}
}

func cloneIncidents(in []domain.Incident) []domain.Incident {
	out := make([]domain.Incident, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func cloneUsers(in []domain.User) []domain.User {
	out := make([]domain.User, len(in))
	copy(out, in)
	return out
}
