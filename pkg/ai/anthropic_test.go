package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropic(t *testing.T, serverURL string) *AnthropicService {
	t.Helper()
	svc := NewAnthropicService("test-key", "", 0, zerolog.Nop())
	svc.baseURL = serverURL
	svc.backoff = []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}
	return svc
}

func TestAnthropicGenerateSummary_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req struct {
			Model     string `json:"model"`
			MaxTokens int    `json:"max_tokens"`
			Messages  []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, defaultAnthropicModel, req.Model)
		assert.Equal(t, defaultAnthropicMaxTokens, req.MaxTokens)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{
				{"type": "text", "text": "Overview: part one. "},
				{"type": "text", "text": "Decisions: part two."},
			},
			"usage": map[string]int{"input_tokens": 42, "output_tokens": 12},
		})
	}))
	defer server.Close()

	svc := newTestAnthropic(t, server.URL)
	raw, err := svc.GenerateSummary(context.Background(), testMessages(), "period")

	require.NoError(t, err)
	assert.Equal(t, "Overview: part one. Decisions: part two.", raw)
}

func TestAnthropicGenerateSummary_EmptyMessages(t *testing.T) {
	svc := newTestAnthropic(t, "http://unused.invalid")
	_, err := svc.GenerateSummary(context.Background(), nil, "period")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMessages)
}

func TestAnthropicGenerateSummary_RetriesOnOverload(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "overloaded", statusOverloaded)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": "Overview: ok"}},
		})
	}))
	defer server.Close()

	svc := newTestAnthropic(t, server.URL)
	raw, err := svc.GenerateSummary(context.Background(), testMessages(), "period")

	require.NoError(t, err)
	assert.Equal(t, "Overview: ok", raw)
	assert.Equal(t, int32(3), calls)
}

func TestAnthropicGenerateSummary_RateLimitExhaustsAttempts(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := newTestAnthropic(t, server.URL)
	_, err := svc.GenerateSummary(context.Background(), testMessages(), "period")

	require.Error(t, err)
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, anthropicMaxAttempts, provErr.Attempts)
	assert.Equal(t, http.StatusTooManyRequests, provErr.StatusCode)
	assert.Equal(t, int32(anthropicMaxAttempts), calls)
}

func TestAnthropicGenerateSummary_AuthFailureNoRetry(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := newTestAnthropic(t, server.URL)
	_, err := svc.GenerateSummary(context.Background(), testMessages(), "period")

	require.Error(t, err)
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, 1, provErr.Attempts)
	assert.Equal(t, http.StatusUnauthorized, provErr.StatusCode)
	assert.Equal(t, int32(1), calls)
}
