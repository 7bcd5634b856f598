// Package ai abstracts over interchangeable language-model backends for
// chat digest generation. Add a backend by implementing SummarizerService
// and extending the factory in factory.go.
package ai

import (
	"context"

	"teamdigest-backend/internal/chat/domain"
)

// SummarizerService is the interface every model backend implements.
// GenerateSummary issues exactly one model call per attempt and returns the
// backend's raw text; turning that text into structured sections is the
// parser's job, shared across backends.
type SummarizerService interface {
	GenerateSummary(ctx context.Context, messages []domain.CachedMessage, periodLabel string) (string, error)
	Name() string
}

// ProviderType selects a model backend at runtime.
type ProviderType string

const (
	ProviderOllama    ProviderType = "ollama"
	ProviderAnthropic ProviderType = "anthropic"
)
