package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/veldt-labs/switchboard/internal/store"
	"github.com/veldt-labs/switchboard/internal/store/model"
)

// DB defines the interface for database operations (satisfied by *sqlx.DB and *sqlx.Tx)
type DB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SqliteRepository implements store.Repository
type SqliteRepository struct {
	db       *sqlx.DB // Required for starting new transactions
	executor DB       // Used for actual queries (can be *sqlx.DB or *sqlx.Tx)
}

func NewSqliteRepository(db *sqlx.DB) *SqliteRepository {
	return &SqliteRepository{
		db:       db,
		executor: db,
	}
}

func (r *SqliteRepository) Close() error {
	return r.db.Close()
}

func (r *SqliteRepository) WithTx(ctx context.Context, fn func(repo store.Repository) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	txRepo := &SqliteRepository{
		db:       r.db,
		executor: tx,
	}

	if err := fn(txRepo); err != nil {
		// attempt rollback, but prioritize original error
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *SqliteRepository) Models() store.ModelRepository {
	return &modelRepo{db: r.executor}
}

func (r *SqliteRepository) APIKeys() store.APIKeyRepository {
	return &apiKeyRepo{db: r.executor}
}

func (r *SqliteRepository) Users() store.UserRepository {
	return &userRepo{db: r.executor}
}

func (r *SqliteRepository) Dispatches() store.DispatchRepository {
	return &dispatchRepo{db: r.executor}
}

type modelRepo struct {
	db DB
}

// table validates the model type before splicing its table name into SQL.
// The four names are a closed set; anything else is a programming error.
func table(t model.ModelType) (string, error) {
	if !t.Valid() {
		return "", fmt.Errorf("unknown model type %q", t)
	}
	return t.Table(), nil
}

func (r *modelRepo) ListActive(ctx context.Context, t model.ModelType) ([]model.ModelRecord, error) {
	tbl, err := table(t)
	if err != nil {
		return nil, err
	}

	var records []model.ModelRecord
	query := fmt.Sprintf(`SELECT * FROM %s WHERE is_active = 1 ORDER BY provider_name, model_name`, tbl)
	err = r.db.SelectContext(ctx, &records, query)
	return records, err
}

func (r *modelRepo) ListAll(ctx context.Context, t model.ModelType) ([]model.ModelRecord, error) {
	tbl, err := table(t)
	if err != nil {
		return nil, err
	}

	var records []model.ModelRecord
	query := fmt.Sprintf(`SELECT * FROM %s ORDER BY provider_name, model_name`, tbl)
	err = r.db.SelectContext(ctx, &records, query)
	return records, err
}

func (r *modelRepo) GetActiveByName(ctx context.Context, t model.ModelType, name string) (*model.ModelRecord, error) {
	tbl, err := table(t)
	if err != nil {
		return nil, err
	}

	var m model.ModelRecord
	query := fmt.Sprintf(`SELECT * FROM %s WHERE model_name = ? AND is_active = 1`, tbl)
	if err := r.db.GetContext(ctx, &m, query, name); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *modelRepo) GetActiveByNameLike(ctx context.Context, t model.ModelType, pattern string) (*model.ModelRecord, error) {
	tbl, err := table(t)
	if err != nil {
		return nil, err
	}

	// lowest id wins: the documented substring tie-break
	var m model.ModelRecord
	query := fmt.Sprintf(`SELECT * FROM %s WHERE model_name LIKE ? AND is_active = 1 ORDER BY id LIMIT 1`, tbl)
	if err := r.db.GetContext(ctx, &m, query, "%"+pattern+"%"); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *modelRepo) GetActiveByNameFold(ctx context.Context, t model.ModelType, name string) (*model.ModelRecord, error) {
	tbl, err := table(t)
	if err != nil {
		return nil, err
	}

	var m model.ModelRecord
	query := fmt.Sprintf(`SELECT * FROM %s WHERE model_name = ? COLLATE NOCASE AND is_active = 1 ORDER BY id LIMIT 1`, tbl)
	if err := r.db.GetContext(ctx, &m, query, name); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *modelRepo) Create(ctx context.Context, t model.ModelType, m *model.ModelRecord) error {
	tbl, err := table(t)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
	INSERT INTO %s (
		provider_name, model_name, api_name,
		supports_images_input, supports_pdfs_input, multimodal_input, reasoning_enabled,
		usd_per_million_input_tokens, usd_per_million_output_tokens, context_window_max_tokens,
		is_active, notes, created_at, updated_at
	) VALUES (
		:provider_name, :model_name, :api_name,
		:supports_images_input, :supports_pdfs_input, :multimodal_input, :reasoning_enabled,
		:usd_per_million_input_tokens, :usd_per_million_output_tokens, :context_window_max_tokens,
		:is_active, :notes, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
	)`, tbl)

	res, err := r.db.NamedExecContext(ctx, query, m)
	if err != nil {
		return err
	}

	if id, err := res.LastInsertId(); err == nil {
		m.ID = id
	}
	return nil
}

func (r *modelRepo) Update(ctx context.Context, t model.ModelType, m *model.ModelRecord) error {
	tbl, err := table(t)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
	UPDATE %s SET
		provider_name = :provider_name,
		model_name = :model_name,
		api_name = :api_name,
		supports_images_input = :supports_images_input,
		supports_pdfs_input = :supports_pdfs_input,
		multimodal_input = :multimodal_input,
		reasoning_enabled = :reasoning_enabled,
		usd_per_million_input_tokens = :usd_per_million_input_tokens,
		usd_per_million_output_tokens = :usd_per_million_output_tokens,
		context_window_max_tokens = :context_window_max_tokens,
		is_active = :is_active,
		notes = :notes,
		updated_at = CURRENT_TIMESTAMP
	WHERE id = :id`, tbl)

	res, err := r.db.NamedExecContext(ctx, query, m)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *modelRepo) Delete(ctx context.Context, t model.ModelType, id int64) error {
	tbl, err := table(t)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, tbl), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type apiKeyRepo struct {
	db DB
}

func (r *apiKeyRepo) GetByHash(ctx context.Context, hash string) (*model.APIKey, error) {
	var key model.APIKey
	// active check is part of the query for speed
	query := `SELECT * FROM api_keys WHERE key_hash = ? AND is_active = 1`
	if err := r.db.GetContext(ctx, &key, query, hash); err != nil {
		return nil, err
	}
	return &key, nil
}

func (r *apiKeyRepo) Create(ctx context.Context, key *model.APIKey) error {
	query := `
	INSERT INTO api_keys (id, user_id, name, key_hash, key_prefix, is_active, created_at, updated_at)
	VALUES (:id, :user_id, :name, :key_hash, :key_prefix, :is_active, :created_at, :updated_at)`
	_, err := r.db.NamedExecContext(ctx, query, key)
	return err
}

func (r *apiKeyRepo) UpdateUsage(ctx context.Context, id string) error {
	query := `UPDATE api_keys SET last_used_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	return err
}

func (r *apiKeyRepo) ListByUserID(ctx context.Context, userID string) ([]model.APIKey, error) {
	var keys []model.APIKey
	err := r.db.SelectContext(ctx, &keys, `SELECT * FROM api_keys WHERE user_id = ?`, userID)
	return keys, err
}

type userRepo struct {
	db DB
}

func (r *userRepo) Get(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = ?`, id)
	return &u, err
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	query := `
	INSERT INTO users (id, email, name, role, created_at, updated_at)
	VALUES (:id, :email, :name, :role, :created_at, :updated_at)`
	_, err := r.db.NamedExecContext(ctx, query, user)
	return err
}

type dispatchRepo struct {
	db DB
}

func (r *dispatchRepo) Log(ctx context.Context, log *model.DispatchLog) error {
	query := `
	INSERT INTO dispatch_logs (
		id, user_id, api_key_id, operation, model_name, api_name,
		provider_key, outcome, latency_ms, input_chars, created_at
	) VALUES (
		:id, :user_id, :api_key_id, :operation, :model_name, :api_name,
		:provider_key, :outcome, :latency_ms, :input_chars, :created_at
	)`
	_, err := r.db.NamedExecContext(ctx, query, log)
	return err
}

func (r *dispatchRepo) GetRecent(ctx context.Context, userID string, limit int) ([]model.DispatchLog, error) {
	var logs []model.DispatchLog
	query := `SELECT * FROM dispatch_logs WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`
	err := r.db.SelectContext(ctx, &logs, query, userID, limit)
	return logs, err
}

func (r *dispatchRepo) GetDailyStats(ctx context.Context, days int) ([]model.DailyStats, error) {
	var stats []model.DailyStats
	query := `
		SELECT
			DATE(created_at) as date,
			COUNT(*) as total_dispatches,
			SUM(CASE WHEN outcome = 'success' THEN 1 ELSE 0 END) as successes,
			AVG(latency_ms) as avg_latency
		FROM dispatch_logs
		WHERE created_at >= DATE('now', ?)
		GROUP BY date
		ORDER BY date DESC
	`
	// SQLite date offset format is '-7 days'
	err := r.db.SelectContext(ctx, &stats, query, fmt.Sprintf("-%d days", days))
	return stats, err
}
