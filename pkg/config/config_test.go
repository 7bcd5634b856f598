package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setFixtureEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GRAPH_USE_FIXTURE", "true")
}

func TestLoad_Defaults(t *testing.T) {
	setFixtureEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "teamdigest.db", cfg.DatabasePath)
	assert.Equal(t, "ollama", cfg.AIProvider)
	assert.Equal(t, "http://localhost:11434", cfg.OllamaBaseURL)
}

func TestLoad_RequiresCredentialWithoutFixture(t *testing.T) {
	t.Setenv("GRAPH_USE_FIXTURE", "false")
	t.Setenv("GRAPH_ACCESS_TOKEN", "")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GRAPH_ACCESS_TOKEN")
}

func TestLoad_AnthropicRequiresKey(t *testing.T) {
	setFixtureEnv(t)
	t.Setenv("AI_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	setFixtureEnv(t)
	t.Setenv("AI_PROVIDER", "bard")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI_PROVIDER")
}

func TestAIConfig_Mapping(t *testing.T) {
	setFixtureEnv(t)
	t.Setenv("AI_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "key")
	t.Setenv("ANTHROPIC_MODEL", "claude-3-7-sonnet-latest")
	t.Setenv("ANTHROPIC_MAX_TOKENS", "2048")

	cfg, err := Load()
	require.NoError(t, err)

	aiCfg := cfg.AIConfig()
	assert.Equal(t, "anthropic", string(aiCfg.Provider))
	assert.Equal(t, "key", aiCfg.AnthropicAPIKey)
	assert.Equal(t, "claude-3-7-sonnet-latest", aiCfg.AnthropicModel)
	assert.Equal(t, 2048, aiCfg.AnthropicMaxTokens)
}
