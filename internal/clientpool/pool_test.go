package clientpool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veldt-labs/switchboard/internal/clientpool"
	"go.uber.org/zap"

	_ "github.com/veldt-labs/switchboard/internal/llm/anthropic"
	_ "github.com/veldt-labs/switchboard/internal/llm/cartesia"
	_ "github.com/veldt-labs/switchboard/internal/llm/google"
	_ "github.com/veldt-labs/switchboard/internal/llm/openai"
	_ "github.com/veldt-labs/switchboard/internal/llm/together"
)

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		providerName string
		want         string
	}{
		{"OpenAI", clientpool.KeyOpenAI},
		{"Anthropic", clientpool.KeyAnthropic},
		{"Google", clientpool.KeyGoogle},
		{"google", clientpool.KeyGoogle},
		{"DeepSeek", clientpool.KeyDeepSeek},
		{"Cartesia", clientpool.KeyCartesia},

		// the marketplace long tail all collapses onto together
		{"Meta", clientpool.KeyTogether},
		{"mistralai", clientpool.KeyTogether},
		{"Qwen", clientpool.KeyTogether},
		{"BAAI", clientpool.KeyTogether},
		{"Black Forest Labs", clientpool.KeyTogether},
		{"Mixedbread AI", clientpool.KeyTogether},

		// unmapped names lowercase through and will miss the pool
		{"SomeNewLab", "somenewlab"},
	}

	for _, tt := range tests {
		t.Run(tt.providerName, func(t *testing.T) {
			assert.Equal(t, tt.want, clientpool.CanonicalKey(tt.providerName))
		})
	}
}

func TestNewBuildsOnlyConfiguredProviders(t *testing.T) {
	pool, err := clientpool.New(clientpool.Credentials{
		OpenAIKey:    "sk-test",
		AnthropicKey: "sk-ant-test",
	}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"anthropic", "openai"}, pool.Keys())
	assert.True(t, pool.Has(clientpool.KeyOpenAI))
	assert.False(t, pool.Has(clientpool.KeyGoogle))

	client, err := pool.Get(clientpool.KeyAnthropic)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", client.Key())
}

func TestGetMissingProvider(t *testing.T) {
	pool, err := clientpool.New(clientpool.Credentials{}, zap.NewNop())
	require.NoError(t, err)

	_, err = pool.Get(clientpool.KeyTogether)
	assert.ErrorIs(t, err, clientpool.ErrProviderUnavailable)
}

func TestDeepSeekUsesOpenAIAdapter(t *testing.T) {
	pool, err := clientpool.New(clientpool.Credentials{DeepSeekKey: "sk-ds-test"}, zap.NewNop())
	require.NoError(t, err)

	client, err := pool.Get(clientpool.KeyDeepSeek)
	require.NoError(t, err)
	// the client carries its canonical key even though the adapter is shared
	assert.Equal(t, clientpool.KeyDeepSeek, client.Key())
}

func TestFullCredentialSet(t *testing.T) {
	pool, err := clientpool.New(clientpool.Credentials{
		OpenAIKey:    "a",
		AnthropicKey: "b",
		GoogleKey:    "c",
		DeepSeekKey:  "d",
		TogetherKey:  "e",
		CartesiaKey:  "f",
	}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"anthropic", "cartesia", "deepseek", "google", "openai", "together"}, pool.Keys())
}
