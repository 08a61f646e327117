package clientpool

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/veldt-labs/switchboard/internal/llm"
	"go.uber.org/zap"
)

// ErrProviderUnavailable means no credential was configured for the provider
// a model resolves to. This is normal partial configuration, surfaced only
// when a request actually needs the missing provider.
var ErrProviderUnavailable = errors.New("no API client configured for provider")

// Canonical pool keys. Every registry provider_name maps onto one of these.
const (
	KeyOpenAI    = "openai"
	KeyAnthropic = "anthropic"
	KeyGoogle    = "google"
	KeyDeepSeek  = "deepseek"
	KeyTogether  = "together"
	KeyCartesia  = "cartesia"
)

// providerKeys is the fan-out table from registry provider_name values to
// canonical pool keys. Most marketplace organizations are hosted through
// Together's API, so the long tail all collapses onto one aggregator key.
// A new marketplace entrant is a row here, not a code change.
var providerKeys = map[string]string{
	"OpenAI":    KeyOpenAI,
	"Anthropic": KeyAnthropic,
	"Google":    KeyGoogle,
	"google":    KeyGoogle,
	"DeepSeek":  KeyDeepSeek,
	"Cartesia":  KeyCartesia,

	"Together":          KeyTogether,
	"Together.ai":       KeyTogether,
	"Meta":              KeyTogether,
	"mistralai":         KeyTogether,
	"Qwen":              KeyTogether,
	"Nousresearch":      KeyTogether,
	"Gryphe":            KeyTogether,
	"Arcee AI":          KeyTogether,
	"Alibaba Nlp":       KeyTogether,
	"BAAI":              KeyTogether,
	"Intfloat":          KeyTogether,
	"LG AI":             KeyTogether,
	"Mixedbread AI":     KeyTogether,
	"Refuel AI":         KeyTogether,
	"WhereIsAI":         KeyTogether,
	"nvidia":            KeyTogether,
	"salesforce":        KeyTogether,
	"Black Forest Labs": KeyTogether,
}

// CanonicalKey maps a registry provider_name to its pool key. Unmapped names
// default to their lowercased selves, which will not match any pool entry and
// thus correctly fail as unavailable.
func CanonicalKey(providerName string) string {
	if key, ok := providerKeys[providerName]; ok {
		return key
	}
	return strings.ToLower(providerName)
}

// Credentials holds the per-provider secrets read from the environment.
// An empty field simply omits that provider from the pool.
type Credentials struct {
	OpenAIKey    string
	AnthropicKey string
	GoogleKey    string
	DeepSeekKey  string
	TogetherKey  string
	CartesiaKey  string

	// overrides the default OpenAI endpoint, used by local mocks
	OpenAIBaseURL string

	// secondary Vertex image path
	GoogleProjectID string
	GoogleLocation  string
}

// Pool holds zero-or-one configured adapter per canonical provider key.
// Immutable after construction; safe for concurrent use.
type Pool struct {
	providers map[string]llm.Provider
}

// New builds the pool from credentials. Providers without credentials are
// silently absent.
func New(creds Credentials, logger *zap.Logger) (*Pool, error) {
	pool := &Pool{providers: make(map[string]llm.Provider)}

	add := func(key, adapterType string, cfg llm.Config) error {
		cfg.Key = key
		p, err := llm.New(adapterType, cfg)
		if err != nil {
			return fmt.Errorf("configuring %s: %w", key, err)
		}
		pool.providers[key] = p
		logger.Info("provider client configured", zap.String("provider", key))
		return nil
	}

	if creds.OpenAIKey != "" {
		if err := add(KeyOpenAI, "openai", llm.Config{APIKey: creds.OpenAIKey, BaseURL: creds.OpenAIBaseURL}); err != nil {
			return nil, err
		}
	}
	if creds.AnthropicKey != "" {
		if err := add(KeyAnthropic, "anthropic", llm.Config{APIKey: creds.AnthropicKey}); err != nil {
			return nil, err
		}
	}
	if creds.GoogleKey != "" {
		cfg := llm.Config{
			APIKey: creds.GoogleKey,
			Extra: map[string]string{
				"project":  creds.GoogleProjectID,
				"location": creds.GoogleLocation,
			},
		}
		if err := add(KeyGoogle, "google", cfg); err != nil {
			return nil, err
		}
	}
	if creds.DeepSeekKey != "" {
		// DeepSeek is OpenAI-compatible; reuse that adapter with its base URL
		cfg := llm.Config{APIKey: creds.DeepSeekKey, BaseURL: "https://api.deepseek.com/v1"}
		if err := add(KeyDeepSeek, "openai", cfg); err != nil {
			return nil, err
		}
	}
	if creds.TogetherKey != "" {
		if err := add(KeyTogether, "together", llm.Config{APIKey: creds.TogetherKey}); err != nil {
			return nil, err
		}
	}
	if creds.CartesiaKey != "" {
		if err := add(KeyCartesia, "cartesia", llm.Config{APIKey: creds.CartesiaKey}); err != nil {
			return nil, err
		}
	}

	return pool, nil
}

// NewFromProviders builds a pool from pre-built adapters. Test seam.
func NewFromProviders(providers map[string]llm.Provider) *Pool {
	copied := make(map[string]llm.Provider, len(providers))
	for k, v := range providers {
		copied[k] = v
	}
	return &Pool{providers: copied}
}

// Has reports whether a client is configured for the canonical key.
func (p *Pool) Has(key string) bool {
	_, ok := p.providers[key]
	return ok
}

// Get returns the configured client for the canonical key, or
// ErrProviderUnavailable when absent.
func (p *Pool) Get(key string) (llm.Provider, error) {
	client, ok := p.providers[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderUnavailable, key)
	}
	return client, nil
}

// Keys lists configured canonical keys, sorted.
func (p *Pool) Keys() []string {
	keys := make([]string, 0, len(p.providers))
	for k := range p.providers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
