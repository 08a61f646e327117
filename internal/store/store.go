package store

import (
	"context"

	"github.com/veldt-labs/switchboard/internal/store/model"
)

type contextKey string

const (
	ContextKeyAPIKey contextKey = "api_key"
)

// Repository is the main contract for the data layer.
type Repository interface {
	Models() ModelRepository
	APIKeys() APIKeyRepository
	Users() UserRepository
	Dispatches() DispatchRepository

	// transaction support
	WithTx(ctx context.Context, fn func(repo Repository) error) error

	Close() error
}

// ModelRepository reads and administers the four typed registry tables.
type ModelRepository interface {
	// ListActive returns all active rows of one table, display-name order.
	ListActive(ctx context.Context, t model.ModelType) ([]model.ModelRecord, error)
	// ListAll returns every row of one table, inactive included (admin view).
	ListAll(ctx context.Context, t model.ModelType) ([]model.ModelRecord, error)
	// GetActiveByName does an exact, case-sensitive match on model_name.
	GetActiveByName(ctx context.Context, t model.ModelType, name string) (*model.ModelRecord, error)
	// GetActiveByNameLike matches model_name containing the pattern.
	// Lowest id wins, which pins the substring tie-break.
	GetActiveByNameLike(ctx context.Context, t model.ModelType, pattern string) (*model.ModelRecord, error)
	// GetActiveByNameFold does a case-insensitive exact match.
	GetActiveByNameFold(ctx context.Context, t model.ModelType, name string) (*model.ModelRecord, error)

	Create(ctx context.Context, t model.ModelType, m *model.ModelRecord) error
	Update(ctx context.Context, t model.ModelType, m *model.ModelRecord) error
	Delete(ctx context.Context, t model.ModelType, id int64) error
}

type APIKeyRepository interface {
	// GetByHash retrieves a key by its hashed value (for auth).
	GetByHash(ctx context.Context, hash string) (*model.APIKey, error)
	// Create issues a new API key.
	Create(ctx context.Context, key *model.APIKey) error
	// UpdateUsage stamps last_used_at.
	UpdateUsage(ctx context.Context, id string) error
	// ListByUserID returns all keys for a user.
	ListByUserID(ctx context.Context, userID string) ([]model.APIKey, error)
}

type UserRepository interface {
	Get(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}

type DispatchRepository interface {
	// Log stores a completed dispatch.
	Log(ctx context.Context, log *model.DispatchLog) error
	// GetRecent returns the last N logs for a user.
	GetRecent(ctx context.Context, userID string, limit int) ([]model.DispatchLog, error)
	// GetDailyStats returns aggregated stats grouped by day.
	GetDailyStats(ctx context.Context, days int) ([]model.DailyStats, error)
}
