package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Contains(t, cfg.Database.DSN, "switchboard.db")
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 10.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	os.Clearenv()
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoadConfigProviderCredentials(t *testing.T) {
	os.Clearenv()
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("CARTESIA_API_KEY", "ca-key")
	t.Setenv("GOOGLE_PROJECT_ID", "my-project")
	t.Setenv("GOOGLE_LOCATION", "us-central1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sk-openai", cfg.Providers.OpenAIKey)
	assert.Equal(t, "sk-ant", cfg.Providers.AnthropicKey)
	assert.Equal(t, "ca-key", cfg.Providers.CartesiaKey)
	assert.Equal(t, "my-project", cfg.Providers.GoogleProjectID)
	assert.Equal(t, "us-central1", cfg.Providers.GoogleLocation)
	assert.Empty(t, cfg.Providers.TogetherKey)
}

func TestLoadConfigFile(t *testing.T) {
	os.Clearenv()

	content := `
server:
  port: "7070"
  api_keys: ["sw-static-key"]
database:
  dsn: "file:custom.db"
rate_limit:
  requests_per_second: 50
  burst: 100
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, []string{"sw-static-key"}, cfg.Server.APIKeys)
	assert.Equal(t, "file:custom.db", cfg.Database.DSN)
	assert.Equal(t, 50.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 100, cfg.RateLimit.Burst)
}
