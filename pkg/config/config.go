// Package config collects every runtime setting into one validated struct,
// built once at startup and passed into each component constructor.
// Components never read process environment directly.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"teamdigest-backend/pkg/ai"
)

type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"teamdigest.db"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`

	// Remote platform API. The access token is handed to us by an
	// external auth component; when UseFixture is set the fixture client
	// is used instead and no credential is needed.
	GraphBaseURL     string `env:"GRAPH_BASE_URL"`
	GraphAccessToken string `env:"GRAPH_ACCESS_TOKEN"`
	UseFixture       bool   `env:"GRAPH_USE_FIXTURE" envDefault:"false"`

	// Model backend selection.
	AIProvider         string `env:"AI_PROVIDER" envDefault:"ollama"`
	OllamaBaseURL      string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaModel        string `env:"OLLAMA_MODEL" envDefault:"llama3"`
	AnthropicAPIKey    string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel     string `env:"ANTHROPIC_MODEL"`
	AnthropicMaxTokens int    `env:"ANTHROPIC_MAX_TOKENS" envDefault:"1024"`
}

// Load reads .env when present, binds the environment into a Config and
// validates it. Startup fails with field-level detail on bad settings.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AIConfig returns the model backend configuration slice of the config.
func (c *Config) AIConfig() ai.Config {
	return ai.Config{
		Provider:           ai.ProviderType(c.AIProvider),
		OllamaBaseURL:      c.OllamaBaseURL,
		OllamaModel:        c.OllamaModel,
		AnthropicAPIKey:    c.AnthropicAPIKey,
		AnthropicModel:     c.AnthropicModel,
		AnthropicMaxTokens: c.AnthropicMaxTokens,
	}
}

// validate checks cross-field requirements.
func (c *Config) validate() error {
	var errs []string
	if !c.UseFixture && c.GraphAccessToken == "" {
		errs = append(errs, "GRAPH_ACCESS_TOKEN is required unless GRAPH_USE_FIXTURE=true")
	}
	switch c.AIProvider {
	case string(ai.ProviderOllama), string(ai.ProviderAnthropic), "":
	default:
		errs = append(errs, fmt.Sprintf("AI_PROVIDER must be %q or %q", ai.ProviderOllama, ai.ProviderAnthropic))
	}
	if c.AIProvider == string(ai.ProviderAnthropic) && c.AnthropicAPIKey == "" {
		errs = append(errs, "ANTHROPIC_API_KEY is required for the anthropic provider")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
