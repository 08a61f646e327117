package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrUnsupported is returned by adapters for operations the upstream provider
// has no call shape for (e.g. video on Anthropic).
var ErrUnsupported = errors.New("operation not supported by this provider")

// Config carries everything an adapter needs to talk to one provider.
type Config struct {
	// canonical provider key this adapter serves (openai, anthropic, ...)
	Key string

	APIKey  string
	BaseURL string

	// provider-specific knobs: project, location, default voice
	Extra map[string]string
}

// ImageOptions tunes image generation. Zero values mean provider defaults.
type ImageOptions struct {
	Size    string
	Quality string
	Count   int
}

// ImageResult is the normalized image payload: hosted URLs or base64 data,
// whichever the upstream returned.
type ImageResult struct {
	Images []string
}

// AudioResult is raw synthesized audio plus the inferred file extension.
type AudioResult struct {
	Audio  []byte
	Format string
}

// VideoResult is the normalized video payload.
type VideoResult struct {
	Videos []string
}

// Provider is the uniform adapter contract. Every method takes the provider's
// api_name, never the registry display name.
type Provider interface {
	Key() string

	Chat(ctx context.Context, apiName, message string, maxTokens int) (string, error)
	GenerateImage(ctx context.Context, apiName, prompt string, opts ImageOptions) (*ImageResult, error)
	SynthesizeSpeech(ctx context.Context, apiName, text, voice string) (*AudioResult, error)
	GenerateVideo(ctx context.Context, apiName, prompt string) (*VideoResult, error)
}

// Constructor builds a configured adapter.
type Constructor func(cfg Config) (Provider, error)

var (
	registryMu   sync.RWMutex
	constructors = make(map[string]Constructor)
)

// Register makes an adapter type available by name. Called from adapter
// package init() functions.
func Register(adapterType string, c Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	constructors[adapterType] = c
}

// New instantiates a registered adapter type with the given config.
func New(adapterType string, cfg Config) (Provider, error) {
	registryMu.RLock()
	c, ok := constructors[adapterType]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown adapter type %q", adapterType)
	}
	return c(cfg)
}
