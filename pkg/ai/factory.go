package ai

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Config holds model backend configuration. Exactly one backend is
// resolved from it at startup; nothing reads ambient process state.
type Config struct {
	Provider ProviderType // "ollama" or "anthropic"

	// Ollama config
	OllamaBaseURL string // e.g. "http://localhost:11434"
	OllamaModel   string // e.g. "llama3", "mistral"

	// Anthropic config
	AnthropicAPIKey    string
	AnthropicModel     string
	AnthropicMaxTokens int
}

// NewSummarizerService creates a SummarizerService based on the config.
// This is the factory function: switch model backend by changing
// cfg.Provider. An empty provider defaults to the local Ollama backend.
func NewSummarizerService(cfg Config, logger zerolog.Logger) (SummarizerService, error) {
	switch cfg.Provider {
	case ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.AnthropicMaxTokens, logger), nil

	case ProviderOllama, "":
		return NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel), nil

	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}
