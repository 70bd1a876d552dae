package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sentinel/sentinel/internal/domain"
	"github.com/sentinel/sentinel/internal/ports"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultMaxTokens     = 400
	defaultTimeoutMs     = 15000
)

// OpenAIAdvisor implements ResolutionAdvisor with the chat completions API
type OpenAIAdvisor struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// NewOpenAIAdvisor creates a new OpenAI advisor
func NewOpenAIAdvisor(config ports.AdvisorConfig) *OpenAIAdvisor {
	if config.BaseURL == "" {
		config.BaseURL = defaultOpenAIBaseURL
	}
	if config.Model == "" {
		config.Model = defaultOpenAIModel
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = defaultMaxTokens
	}
	if config.TimeoutMs <= 0 {
		config.TimeoutMs = defaultTimeoutMs
	}

	return &OpenAIAdvisor{
		apiKey:    config.APIKey,
		baseURL:   strings.TrimRight(config.BaseURL, "/"),
		model:     config.Model,
		maxTokens: config.MaxTokens,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutMs) * time.Millisecond,
		},
	}
}

// Provider returns the provider name
func (a *OpenAIAdvisor) Provider() string {
	return "openai"
}

// SuggestResolution asks the model for mitigation steps for incident
func (a *OpenAIAdvisor) SuggestResolution(ctx context.Context, incident domain.Incident) (ports.SuggestionResult, error) {
	requestBody := map[string]interface{}{
		"model": a.model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a senior site reliability engineer advising an incident commander. Answer with short, concrete steps."},
			{"role": "user", "content": BuildPrompt(incident)},
		},
		"max_tokens":  a.maxTokens,
		"temperature": 0.4,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return ports.SuggestionResult{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return ports.SuggestionResult{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return ports.SuggestionResult{}, fmt.Errorf("failed to call OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return ports.SuggestionResult{}, fmt.Errorf("OpenAI API error: %d - %s", resp.StatusCode, string(body))
	}

	var response struct {
		Model   string `json:"model"`
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			TotalTokens int `json:"total_tokens"`
		} `json:"usage"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return ports.SuggestionResult{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(response.Choices) == 0 {
		return ports.SuggestionResult{}, fmt.Errorf("no choices in response")
	}

	content := strings.TrimSpace(response.Choices[0].Message.Content)
	if content == "" {
		return ports.SuggestionResult{}, fmt.Errorf("empty suggestion in response")
	}

	model := response.Model
	if model == "" {
		model = a.model
	}

	return ports.SuggestionResult{
		Suggestion: content,
		Source:     a.Provider(),
		Model:      model,
		TokensUsed: response.Usage.TotalTokens,
	}, nil
}

// BuildPrompt renders the incident record into the advisor prompt
func BuildPrompt(incident domain.Incident) string {
	var b strings.Builder

	b.WriteString("Analyze the following production incident and propose a resolution.\n\n")
	fmt.Fprintf(&b, "Title: %s\n", incident.Title)
	fmt.Fprintf(&b, "Priority: %s\n", incident.Priority)
	fmt.Fprintf(&b, "Status: %s\n", incident.Status)
	fmt.Fprintf(&b, "Description: %s\n", incident.Description)

	if len(incident.Comments) > 0 {
		b.WriteString("\nTimeline:\n")
		for _, c := range incident.Comments {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", c.CreatedAt.UTC().Format(time.RFC3339), c.UserName, c.Content)
		}
	}

	b.WriteString("\nPlease provide:\n")
	b.WriteString("1. The most likely root cause\n")
	b.WriteString("2. Immediate mitigation steps\n")
	b.WriteString("3. A follow-up action to prevent recurrence\n")

	return b.String()
}
