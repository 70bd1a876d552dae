package usecase

import (
	"context"
	"time"

	"github.com/sentinel/sentinel/internal/domain"
	"github.com/sentinel/sentinel/internal/infra/logger"
	"github.com/sentinel/sentinel/internal/infra/metrics"
	"github.com/sentinel/sentinel/internal/ports"
)

// Suggestion is the advisor answer shown next to an incident.
// Available is false when the advisor could not produce one.
type Suggestion struct {
	IncidentID  string    `json:"incident_id"`
	Available   bool      `json:"available"`
	Text        string    `json:"text,omitempty"`
	Source      string    `json:"source,omitempty"`
	Model       string    `json:"model,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// AdvisorUseCase asks the resolution advisor about an incident
type AdvisorUseCase struct {
	store   StateStore
	advisor ports.ResolutionAdvisor
	logger  logger.Logger
	now     func() time.Time
}

// NewAdvisorUseCase creates a new advisor use case. advisor may be nil.
func NewAdvisorUseCase(store StateStore, advisor ports.ResolutionAdvisor, log logger.Logger) *AdvisorUseCase {
	return &AdvisorUseCase{
		store:   store,
		advisor: advisor,
		logger:  log,
		now:     time.Now,
	}
}

// SuggestResolution returns the advisor's suggestion for incident incidentID.
// Advisor failures yield an unavailable suggestion, not an error.
func (uc *AdvisorUseCase) SuggestResolution(ctx context.Context, incidentID string) (Suggestion, error) {
	incident, ok := uc.store.Incident(incidentID)
	if !ok {
		return Suggestion{}, domain.ErrIncidentNotFound
	}

	suggestion := Suggestion{IncidentID: incidentID}

	if uc.advisor == nil {
		uc.logger.Warn(ctx, "No resolution advisor configured", map[string]interface{}{"incident_id": incidentID})
		suggestion.GeneratedAt = uc.now()
		return suggestion, nil
	}

	provider := uc.advisor.Provider()
	start := time.Now()
	result, err := uc.advisor.SuggestResolution(ctx, incident)
	duration := time.Since(start)
	suggestion.GeneratedAt = uc.now()

	if err != nil {
		metrics.ObserveAdvisor(provider, metrics.OutcomeFailure, duration)
		uc.logger.Error(ctx, "Resolution advisor failed", err, map[string]interface{}{
			"incident_id": incidentID,
			"provider":    provider,
		})
		return suggestion, nil
	}

	metrics.ObserveAdvisor(provider, metrics.OutcomeSuccess, duration)
	logger.LogPerformance(ctx, uc.logger, "suggest_resolution", duration, map[string]interface{}{
		"incident_id": incidentID,
		"provider":    provider,
		"tokens_used": result.TokensUsed,
	})

	suggestion.Available = result.Suggestion != ""
	suggestion.Text = result.Suggestion
	suggestion.Source = result.Source
	suggestion.Model = result.Model
	return suggestion, nil
}
