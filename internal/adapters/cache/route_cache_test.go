package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhyangithub/eataway-router/internal/domain"
	"github.com/Zhyangithub/eataway-router/internal/platform/logger"
)

var warehouse = domain.Coordinate{Lat: "59.85", Lng: "17.66"}

func newTestCache(t *testing.T) (*RouteCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRouteCache(rdb, time.Minute, logger.New("test")), mr
}

func stops() []domain.Stop {
	return []domain.Stop{
		{Name: "Ica Söder", Lat: "59.26", Lng: "18.01"},
		{Name: "Coop Nord", Lat: "59.25", Lng: "17.98"},
	}
}

func TestRouteCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, stops(), warehouse)
	assert.False(t, ok)

	stats := domain.RouteStats{DurationMinutes: 42, DistanceKm: 13.5}
	require.NoError(t, c.Put(ctx, stops(), warehouse, []int{1, 0}, stats))

	cached, ok := c.Get(ctx, stops(), warehouse)
	require.True(t, ok)
	assert.Equal(t, []int{1, 0}, cached.Order)
	assert.Equal(t, stats, cached.Stats)
}

func TestRouteCacheKeyDependsOnStopOrder(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, stops(), warehouse, []int{0, 1}, domain.RouteStats{}))

	reversed := []domain.Stop{stops()[1], stops()[0]}
	_, ok := c.Get(ctx, reversed, warehouse)
	assert.False(t, ok)
}

func TestRouteCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, stops(), warehouse, []int{0, 1}, domain.RouteStats{}))

	mr.FastForward(2 * time.Minute)
	_, ok := c.Get(ctx, stops(), warehouse)
	assert.False(t, ok)
}

func TestRouteCacheNilIsNoop(t *testing.T) {
	var c *RouteCache
	ctx := context.Background()

	_, ok := c.Get(ctx, stops(), warehouse)
	assert.False(t, ok)
	assert.NoError(t, c.Put(ctx, stops(), warehouse, nil, domain.RouteStats{}))
}

func TestRouteCacheCorruptEntryIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, stops(), warehouse, []int{0, 1}, domain.RouteStats{}))
	for _, k := range mr.Keys() {
		mr.Set(k, "not json")
	}

	_, ok := c.Get(ctx, stops(), warehouse)
	assert.False(t, ok)
}
