package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veldt-labs/switchboard/internal/store/cache"
	"github.com/veldt-labs/switchboard/internal/store/cache/memory"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSetGet(t *testing.T) {
	c := memory.NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Name: "x", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, payload{Name: "x", Count: 3}, got)
}

func TestMiss(t *testing.T) {
	c := memory.NewMemoryCache()

	var got payload
	err := c.Get(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestExpiry(t *testing.T) {
	c := memory.NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Name: "x"}, -time.Second))

	var got payload
	err := c.Get(ctx, "k", &got)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestDelete(t *testing.T) {
	c := memory.NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Name: "x"}, time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	var got payload
	err := c.Get(ctx, "k", &got)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}
