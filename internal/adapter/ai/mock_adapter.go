package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sentinel/sentinel/internal/domain"
	"github.com/sentinel/sentinel/internal/ports"
)

// MockAdvisor provides deterministic suggestions without calling an external service
type MockAdvisor struct {
	latency time.Duration
}

// NewMockAdvisor creates a mock advisor that answers after latency
func NewMockAdvisor(latency time.Duration) *MockAdvisor {
	return &MockAdvisor{latency: latency}
}

// Provider returns the provider name
func (m *MockAdvisor) Provider() string {
	return "mock"
}

// SuggestResolution returns a canned suggestion chosen by keywords in the incident
func (m *MockAdvisor) SuggestResolution(ctx context.Context, incident domain.Incident) (ports.SuggestionResult, error) {
	if m.latency > 0 {
		select {
		case <-time.After(m.latency):
		case <-ctx.Done():
			return ports.SuggestionResult{}, ctx.Err()
		}
	}

	return ports.SuggestionResult{
		Suggestion: generateMockSuggestion(incident),
		Source:     m.Provider(),
		Model:      "keyword-rules",
	}, nil
}

func generateMockSuggestion(incident domain.Incident) string {
	text := strings.ToLower(incident.Title + " " + incident.Description)

	var steps []string
	switch {
	case containsAny(text, "database", "latency", "replica", "rds", "query"):
		steps = []string{
			"Check replica lag and connection pool saturation on the affected instances.",
			"Identify slow queries from the last hour and kill long-running transactions.",
			"Shift read traffic to healthy replicas or the primary until lag recovers.",
		}
	case containsAny(text, "network", "dns", "timeout", "connection", "packet"):
		steps = []string{
			"Verify DNS resolution and load balancer health checks for the affected region.",
			"Compare error rates across availability zones to isolate the faulty segment.",
			"Fail traffic over to a healthy zone while the network provider investigates.",
		}
	case containsAny(text, "deploy", "release", "rollout", "version", "deprecat"):
		steps = []string{
			"Correlate the start of the incident with the most recent deployments.",
			"Roll back the suspect release or disable it behind a feature flag.",
			"Add a migration checklist item so the change ships behind a canary next time.",
		}
	case containsAny(text, "memory", "cpu", "disk", "oom", "capacity"):
		steps = []string{
			"Inspect resource dashboards for the saturated hosts.",
			"Scale the service horizontally or restart leaking workers.",
			"Raise alerts earlier on the saturated resource to catch the trend sooner.",
		}
	default:
		steps = []string{
			"Gather recent logs and metrics for the affected component.",
			"Reproduce the failure in a staging environment.",
			"Escalate to the owning team with the collected evidence.",
		}
	}

	var b strings.Builder
	if incident.IsCritical() {
		b.WriteString("CRITICAL incident: page the on-call lead before proceeding.\n")
	}
	for i, step := range steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	return strings.TrimRight(b.String(), "\n")
}

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
