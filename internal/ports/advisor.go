package ports

import (
	"context"

	"github.com/sentinel/sentinel/internal/domain"
)

// ResolutionAdvisor defines the external AI service that proposes incident resolutions
type ResolutionAdvisor interface {
	// SuggestResolution returns free-form guidance for resolving incident
	SuggestResolution(ctx context.Context, incident domain.Incident) (SuggestionResult, error)

	// Provider returns the provider name, e.g. "openai" or "mock"
	Provider() string
}

// SuggestionResult represents the text returned by an advisor
type SuggestionResult struct {
	Suggestion string `json:"suggestion"`
	Source     string `json:"source"`
	Model      string `json:"model,omitempty"`
	TokensUsed int    `json:"tokens_used,omitempty"`
}

// AdvisorConfig represents advisor configuration
type AdvisorConfig struct {
	Provider  string `json:"provider"`
	APIKey    string `json:"-"`
	BaseURL   string `json:"base_url"`
	Model     string `json:"model"`
	TimeoutMs int    `json:"timeout_ms"`
	MaxTokens int    `json:"max_tokens"`
}
