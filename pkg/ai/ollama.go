package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"teamdigest-backend/internal/chat/domain"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "llama3"

	// ollamaTimeout bounds one generation call against the local model.
	ollamaTimeout = 60 * time.Second
	// ollamaMaxAttempts allows one retry when the local server is slow to
	// come up or drops the connection.
	ollamaMaxAttempts = 2
	// ollamaBackoff is the flat wait between the two attempts.
	ollamaBackoff = 1 * time.Second
)

// OllamaService implements SummarizerService against a self-hosted Ollama
// server. No authentication; a single synchronous POST per attempt.
type OllamaService struct {
	baseURL string
	model   string
	client  *http.Client
	backoff time.Duration
}

// NewOllamaService creates a new Ollama backend. Empty arguments fall back
// to a local default server and model.
func NewOllamaService(baseURL, model string) *OllamaService {
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	if model == "" {
		model = defaultOllamaModel
	}
	return &OllamaService{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: ollamaTimeout},
		backoff: ollamaBackoff,
	}
}

// Name implements SummarizerService.
func (o *OllamaService) Name() string {
	return string(ProviderOllama)
}

// GenerateSummary implements SummarizerService. Only transport-level
// failures (timeout, connection refused) are retried; an HTTP error status
// from the server fails immediately.
func (o *OllamaService) GenerateSummary(ctx context.Context, messages []domain.CachedMessage, periodLabel string) (string, error) {
	if len(messages) == 0 {
		return "", &ProviderError{Provider: o.Name(), Attempts: 0, Err: ErrNoMessages}
	}

	prompt := BuildPrompt(messages, periodLabel)

	var lastErr error
	for attempt := 0; attempt < ollamaMaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", &ProviderError{Provider: o.Name(), Attempts: attempt, Err: ctx.Err()}
			case <-time.After(o.backoff):
			}
		}

		text, status, err := o.generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !retryableOllamaError(err) {
			return "", &ProviderError{Provider: o.Name(), StatusCode: status, Attempts: attempt + 1, Err: err}
		}
	}

	return "", &ProviderError{Provider: o.Name(), Attempts: ollamaMaxAttempts, Err: lastErr}
}

// generate performs one call against /api/generate.
func (o *OllamaService) generate(ctx context.Context, prompt string) (string, int, error) {
	payload := map[string]interface{}{
		"model":  o.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]interface{}{
			"temperature": 0.3,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/api/generate", bytes.NewBuffer(body))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode, fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Response string `json:"response"`
		Done     bool   `json:"done"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", resp.StatusCode, fmt.Errorf("parse response: %w", err)
	}

	return result.Response, resp.StatusCode, nil
}

// retryableOllamaError reports whether err is a connection-level failure
// worth one more attempt against the local server.
func retryableOllamaError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "client.timeout exceeded")
}
