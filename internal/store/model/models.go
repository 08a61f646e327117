package model

import (
	"database/sql"
	"time"
)

// ModelType selects one of the four registry tables.
type ModelType string

const (
	TypeLLM   ModelType = "llm"
	TypeImage ModelType = "image"
	TypeAudio ModelType = "audio"
	TypeVideo ModelType = "video"
)

// ResolutionOrder is the fixed table priority used when a lookup spans all
// tables. Chat callers dominate, so LLMs win ties between tables.
var ResolutionOrder = []ModelType{TypeLLM, TypeImage, TypeAudio, TypeVideo}

// Valid reports whether t names a known registry table.
func (t ModelType) Valid() bool {
	switch t {
	case TypeLLM, TypeImage, TypeAudio, TypeVideo:
		return true
	}
	return false
}

// Table returns the SQL table name backing this model type.
func (t ModelType) Table() string {
	return string(t) + "_models"
}

// ModelRecord is one row of a registry table: static reference data about a
// model a provider hosts.
type ModelRecord struct {
	ID           int64  `db:"id" json:"id"`
	ProviderName string `db:"provider_name" json:"provider_name"`

	// user-facing display identifier, unique per table
	ModelName string `db:"model_name" json:"model_name"`

	// identifier the provider API expects; falls back to ModelName when empty
	APIName string `db:"api_name" json:"api_name"`

	SupportsImagesInput bool `db:"supports_images_input" json:"supports_images_input"`
	SupportsPDFsInput   bool `db:"supports_pdfs_input" json:"supports_pdfs_input"`
	MultimodalInput     bool `db:"multimodal_input" json:"multimodal_input"`
	ReasoningEnabled    bool `db:"reasoning_enabled" json:"reasoning_enabled"`

	USDPerMillionInputTokens  sql.NullFloat64 `db:"usd_per_million_input_tokens" json:"-"`
	USDPerMillionOutputTokens sql.NullFloat64 `db:"usd_per_million_output_tokens" json:"-"`
	ContextWindowMaxTokens    sql.NullInt64   `db:"context_window_max_tokens" json:"-"`

	IsActive bool   `db:"is_active" json:"is_active"`
	Notes    string `db:"notes" json:"notes"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// EffectiveAPIName returns the identifier to place in outbound provider calls.
// Providers reject display names, so this is never the bare ModelName unless
// the two coincide.
func (m *ModelRecord) EffectiveAPIName() string {
	if m.APIName != "" {
		return m.APIName
	}
	return m.ModelName
}

// User represents an account able to own API keys.
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	Role      string    `db:"role" json:"role"` // 'admin', 'user'
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// APIKey is the credential used to access the gateway.
type APIKey struct {
	ID         string       `db:"id" json:"id"`
	UserID     string       `db:"user_id" json:"user_id"`
	Name       string       `db:"name" json:"name"`
	KeyHash    string       `db:"key_hash" json:"-"`            // Never return hash
	KeyPrefix  string       `db:"key_prefix" json:"key_prefix"` // Display only
	LastUsedAt sql.NullTime `db:"last_used_at" json:"last_used_at,omitempty"`
	IsActive   bool         `db:"is_active" json:"is_active"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updated_at"`
}

// DispatchLog captures one completed dispatch through the gateway.
type DispatchLog struct {
	ID          string        `db:"id" json:"id"`
	UserID      string        `db:"user_id" json:"user_id"`
	APIKeyID    string        `db:"api_key_id" json:"api_key_id"`
	Operation   string        `db:"operation" json:"operation"` // chat, image, audio, video
	ModelName   string        `db:"model_name" json:"model_name"`
	APIName     string        `db:"api_name" json:"api_name"`
	ProviderKey string        `db:"provider_key" json:"provider_key"`
	Outcome     string        `db:"outcome" json:"outcome"` // success, skipped, or a failure kind
	LatencyMS   int64         `db:"latency_ms" json:"latency_ms"`
	InputChars  sql.NullInt64 `db:"input_chars" json:"input_chars,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

// DailyStats represents aggregated dispatch data for a specific day.
type DailyStats struct {
	Date            string  `db:"date" json:"date"`
	TotalDispatches int     `db:"total_dispatches" json:"total_dispatches"`
	Successes       int     `db:"successes" json:"successes"`
	AverageLatency  float64 `db:"avg_latency" json:"avg_latency"`
}
