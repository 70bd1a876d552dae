package ai

import (
	"fmt"
	"time"

	"github.com/sentinel/sentinel/internal/ports"
)

// NewAdvisor returns the advisor selected by config.Provider
func NewAdvisor(config ports.AdvisorConfig) (ports.ResolutionAdvisor, error) {
	switch config.Provider {
	case "", "mock":
		return NewMockAdvisor(800 * time.Millisecond), nil
	case "openai":
		if config.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return NewOpenAIAdvisor(config), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", config.Provider)
	}
}
