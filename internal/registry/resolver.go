package registry

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/veldt-labs/switchboard/internal/store"
	"github.com/veldt-labs/switchboard/internal/store/cache"
	"github.com/veldt-labs/switchboard/internal/store/model"
)

// ErrModelNotFound means every resolution strategy was exhausted.
var ErrModelNotFound = errors.New("model not found")

const cacheTTL = 30 * time.Second

// Resolution is a resolved registry row plus the table it came from.
type Resolution struct {
	Type   model.ModelType   `json:"type"`
	Record model.ModelRecord `json:"record"`
}

// Resolver turns a caller-supplied display name into a concrete registry row.
// Strategies run in order, first match wins:
//
//  1. static alias substitution
//  2. exact, case-sensitive match
//  3. substring match (lowest id wins between candidates)
//  4. case-insensitive exact match
//  5. fixed fallback chain of well-known defaults
//
// Each database strategy scans the tables in fixed priority order, LLMs first.
type Resolver struct {
	repo  store.ModelRepository
	cache cache.CacheService
}

// NewResolver builds a resolver. cacheService may be nil to disable caching.
func NewResolver(repo store.ModelRepository, cacheService cache.CacheService) *Resolver {
	return &Resolver{repo: repo, cache: cacheService}
}

type lookup func(ctx context.Context, t model.ModelType, name string) (*model.ModelRecord, error)

// Resolve maps a display name to a registry row, or ErrModelNotFound.
func (r *Resolver) Resolve(ctx context.Context, displayName string) (*Resolution, error) {
	name := CanonicalName(displayName)

	if res, ok := r.cached(ctx, name); ok {
		return res, nil
	}

	strategies := []lookup{
		r.repo.GetActiveByName,
		r.repo.GetActiveByNameLike,
		r.repo.GetActiveByNameFold,
	}

	for _, strategy := range strategies {
		res, err := r.scanTables(ctx, strategy, name)
		if err != nil {
			return nil, err
		}
		if res != nil {
			r.remember(ctx, name, res)
			return res, nil
		}
	}

	for _, fallback := range fallbackNames {
		res, err := r.scanTables(ctx, r.repo.GetActiveByName, fallback)
		if err != nil {
			return nil, err
		}
		if res != nil {
			r.remember(ctx, name, res)
			return res, nil
		}
	}

	return nil, ErrModelNotFound
}

// ResolveTyped resolves against a single registry table, skipping the
// cross-table priority scan. Used when the caller already knows the media
// type (image generation against image_models, and so on).
func (r *Resolver) ResolveTyped(ctx context.Context, t model.ModelType, displayName string) (*Resolution, error) {
	name := CanonicalName(displayName)

	strategies := []lookup{
		r.repo.GetActiveByName,
		r.repo.GetActiveByNameLike,
		r.repo.GetActiveByNameFold,
	}

	for _, strategy := range strategies {
		rec, err := strategy(ctx, t, name)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, err
		}
		return &Resolution{Type: t, Record: *rec}, nil
	}

	return nil, ErrModelNotFound
}

// scanTables runs one strategy across all tables in fixed priority order.
// Returns (nil, nil) on a clean miss.
func (r *Resolver) scanTables(ctx context.Context, strategy lookup, name string) (*Resolution, error) {
	for _, t := range model.ResolutionOrder {
		rec, err := strategy(ctx, t, name)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, err
		}
		return &Resolution{Type: t, Record: *rec}, nil
	}
	return nil, nil
}

// Invalidate drops a cached resolution. Admin CRUD calls this after edits.
func (r *Resolver) Invalidate(ctx context.Context, displayName string) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Delete(ctx, cacheKey(CanonicalName(displayName)))
}

func (r *Resolver) cached(ctx context.Context, name string) (*Resolution, bool) {
	if r.cache == nil {
		return nil, false
	}
	var res Resolution
	if err := r.cache.Get(ctx, cacheKey(name), &res); err != nil {
		return nil, false
	}
	return &res, true
}

func (r *Resolver) remember(ctx context.Context, name string, res *Resolution) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Set(ctx, cacheKey(name), res, cacheTTL)
}

func cacheKey(name string) string {
	return "resolve:" + name
}
