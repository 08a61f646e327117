package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veldt-labs/switchboard/internal/store"
	"github.com/veldt-labs/switchboard/internal/store/model"
	"github.com/veldt-labs/switchboard/internal/store/sqlite"
	"go.uber.org/zap"
)

func newTestRepo(t *testing.T) store.Repository {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?cache=shared&mode=rwc&_busy_timeout=5000"
	repo, err := sqlite.NewSQLiteStorage(dsn, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return repo
}

func TestModelCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	m := &model.ModelRecord{
		ProviderName: "OpenAI",
		ModelName:    "gpt-4o-mini",
		APIName:      "gpt-4o-mini",
		USDPerMillionInputTokens: sql.NullFloat64{Float64: 0.15, Valid: true},
		IsActive:     true,
	}
	require.NoError(t, repo.Models().Create(ctx, model.TypeLLM, m))
	assert.NotZero(t, m.ID, "Create must backfill the row id")

	got, err := repo.Models().GetActiveByName(ctx, model.TypeLLM, "gpt-4o-mini")
	require.NoError(t, err)
	assert.Equal(t, "OpenAI", got.ProviderName)
	assert.True(t, got.USDPerMillionInputTokens.Valid)
	assert.InDelta(t, 0.15, got.USDPerMillionInputTokens.Float64, 1e-9)

	got.Notes = "updated"
	require.NoError(t, repo.Models().Update(ctx, model.TypeLLM, got))

	all, err := repo.Models().ListAll(ctx, model.TypeLLM)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "updated", all[0].Notes)

	require.NoError(t, repo.Models().Delete(ctx, model.TypeLLM, got.ID))
	_, err = repo.Models().GetActiveByName(ctx, model.TypeLLM, "gpt-4o-mini")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestModelTablesAreIndependent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Models().Create(ctx, model.TypeImage, &model.ModelRecord{
		ProviderName: "Google", ModelName: "Imagen 3", APIName: "imagen-3.0-generate-002", IsActive: true,
	}))

	_, err := repo.Models().GetActiveByName(ctx, model.TypeLLM, "Imagen 3")
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	got, err := repo.Models().GetActiveByName(ctx, model.TypeImage, "Imagen 3")
	require.NoError(t, err)
	assert.Equal(t, "imagen-3.0-generate-002", got.APIName)
}

func TestSubstringMatchLowestID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"Claude 3 Opus", "Claude 3 Opus Legacy"} {
		require.NoError(t, repo.Models().Create(ctx, model.TypeLLM, &model.ModelRecord{
			ProviderName: "Anthropic", ModelName: name, IsActive: true,
		}))
	}

	got, err := repo.Models().GetActiveByNameLike(ctx, model.TypeLLM, "Opus")
	require.NoError(t, err)
	assert.Equal(t, "Claude 3 Opus", got.ModelName)
}

func TestFoldMatch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Models().Create(ctx, model.TypeLLM, &model.ModelRecord{
		ProviderName: "Anthropic", ModelName: "Claude 3.5 Sonnet", IsActive: true,
	}))

	got, err := repo.Models().GetActiveByNameFold(ctx, model.TypeLLM, "claude 3.5 sonnet")
	require.NoError(t, err)
	assert.Equal(t, "Claude 3.5 Sonnet", got.ModelName)
}

func TestInactiveRowsAreInvisible(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Models().Create(ctx, model.TypeLLM, &model.ModelRecord{
		ProviderName: "OpenAI", ModelName: "gpt-3.5-turbo", IsActive: false,
	}))

	_, err := repo.Models().GetActiveByName(ctx, model.TypeLLM, "gpt-3.5-turbo")
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	active, err := repo.Models().ListActive(ctx, model.TypeLLM)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := repo.Models().ListAll(ctx, model.TypeLLM)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdateMissingRow(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Models().Update(context.Background(), model.TypeLLM, &model.ModelRecord{ID: 999, ModelName: "ghost"})
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func seedUserAndKey(t *testing.T, repo store.Repository) (*model.User, *model.APIKey) {
	t.Helper()
	ctx := context.Background()

	user := &model.User{
		ID: uuid.New().String(), Email: "t@example.com", Name: "T", Role: "user",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Users().Create(ctx, user))

	key := &model.APIKey{
		ID: uuid.New().String(), UserID: user.ID, Name: "k",
		KeyHash: "abc123", KeyPrefix: "sw-test-", IsActive: true,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.APIKeys().Create(ctx, key))
	return user, key
}

func TestAPIKeyLookup(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user, key := seedUserAndKey(t, repo)

	got, err := repo.APIKeys().GetByHash(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)
	assert.False(t, got.LastUsedAt.Valid)

	require.NoError(t, repo.APIKeys().UpdateUsage(ctx, key.ID))
	got, err = repo.APIKeys().GetByHash(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, got.LastUsedAt.Valid)

	_, err = repo.APIKeys().GetByHash(ctx, "nonsense")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestDispatchLogsAndStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user, key := seedUserAndKey(t, repo)

	for _, outcome := range []string{"success", "success", "rate_limited"} {
		require.NoError(t, repo.Dispatches().Log(ctx, &model.DispatchLog{
			ID: uuid.New().String(), UserID: user.ID, APIKeyID: key.ID,
			Operation: "chat", ModelName: "gpt-4o-mini", APIName: "gpt-4o-mini",
			ProviderKey: "openai", Outcome: outcome, LatencyMS: 120,
			CreatedAt: time.Now(),
		}))
	}

	recent, err := repo.Dispatches().GetRecent(ctx, user.ID, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 3)

	stats, err := repo.Dispatches().GetDailyStats(ctx, 7)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 3, stats[0].TotalDispatches)
	assert.Equal(t, 2, stats[0].Successes)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := repo.WithTx(ctx, func(txRepo store.Repository) error {
		if err := txRepo.Models().Create(ctx, model.TypeLLM, &model.ModelRecord{
			ProviderName: "OpenAI", ModelName: "gpt-4o", IsActive: true,
		}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := repo.Models().ListAll(ctx, model.TypeLLM)
	require.NoError(t, err)
	assert.Empty(t, all, "rolled-back insert must not persist")
}
