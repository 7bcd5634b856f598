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

	"github.com/rs/zerolog"

	"teamdigest-backend/internal/chat/domain"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion        = "2023-06-01"

	defaultAnthropicModel     = "claude-3-5-haiku-latest"
	defaultAnthropicMaxTokens = 1024

	// anthropicMaxAttempts bounds calls against the hosted API.
	anthropicMaxAttempts = 3
	// statusOverloaded is the provider-specific overload status.
	statusOverloaded = 529
)

// anthropicBackoff is the attempt-indexed wait between retries.
var anthropicBackoff = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

// AnthropicService implements SummarizerService against the hosted
// Anthropic Messages API: API-key auth, a token budget ceiling, and a
// single user-role message carrying the full prompt.
type AnthropicService struct {
	apiKey    string
	model     string
	maxTokens int
	baseURL   string
	client    *http.Client
	backoff   []time.Duration
	logger    zerolog.Logger
}

// NewAnthropicService creates a new hosted backend. Empty model and zero
// maxTokens fall back to defaults; the API key is required and validated
// by the factory.
func NewAnthropicService(apiKey, model string, maxTokens int, logger zerolog.Logger) *AnthropicService {
	if model == "" {
		model = defaultAnthropicModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	return &AnthropicService{
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		baseURL:   defaultAnthropicBaseURL,
		client:    &http.Client{},
		backoff:   anthropicBackoff,
		logger:    logger.With().Str("component", "ai").Str("provider", "anthropic").Logger(),
	}
}

// Name implements SummarizerService.
func (a *AnthropicService) Name() string {
	return string(ProviderAnthropic)
}

// GenerateSummary implements SummarizerService. Rate limiting, server
// failures and overload are retried with exponential backoff; auth and
// request errors fail on the first occurrence.
func (a *AnthropicService) GenerateSummary(ctx context.Context, messages []domain.CachedMessage, periodLabel string) (string, error) {
	if len(messages) == 0 {
		return "", &ProviderError{Provider: a.Name(), Attempts: 0, Err: ErrNoMessages}
	}

	prompt := BuildPrompt(messages, periodLabel)

	var lastErr error
	lastStatus := 0
	for attempt := 0; attempt < anthropicMaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", &ProviderError{Provider: a.Name(), StatusCode: lastStatus, Attempts: attempt, Err: ctx.Err()}
			case <-time.After(a.backoff[attempt-1]):
			}
		}

		text, status, err := a.complete(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr, lastStatus = err, status

		if !retryableAnthropicStatus(status) {
			return "", &ProviderError{Provider: a.Name(), StatusCode: status, Attempts: attempt + 1, Err: err}
		}
		a.logger.Warn().Int("status", status).Int("attempt", attempt+1).Msg("anthropic call failed, will retry")
	}

	return "", &ProviderError{Provider: a.Name(), StatusCode: lastStatus, Attempts: anthropicMaxAttempts, Err: lastErr}
}

// complete performs one call against /v1/messages and concatenates the
// text blocks of the response.
func (a *AnthropicService) complete(ctx context.Context, prompt string) (string, int, error) {
	payload := map[string]interface{}{
		"model":      a.model,
		"max_tokens": a.maxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/v1/messages", bytes.NewBuffer(body))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("anthropic request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode, fmt.Errorf("anthropic API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		Usage struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", resp.StatusCode, fmt.Errorf("parse response: %w", err)
	}

	a.logger.Debug().
		Int("input_tokens", result.Usage.InputTokens).
		Int("output_tokens", result.Usage.OutputTokens).
		Msg("anthropic usage")

	var text strings.Builder
	for _, block := range result.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", resp.StatusCode, fmt.Errorf("no text content in response")
	}
	return text.String(), resp.StatusCode, nil
}

// retryableAnthropicStatus reports whether a status is transient: rate
// limit, server failure, or provider overload. Transport failures
// (status 0) are retried as well.
func retryableAnthropicStatus(code int) bool {
	switch code {
	case 0, http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusServiceUnavailable, statusOverloaded:
		return true
	}
	return false
}
