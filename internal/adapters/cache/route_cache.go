// Package cache holds the optimized-route cache consulted by the
// directions client before calling the external service.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Zhyangithub/eataway-router/internal/domain"
)

// DefaultTTL bounds how long an optimized order is reused. Directions
// results depend on live traffic, so entries must not outlive the
// conditions they were computed under.
const DefaultTTL = 30 * time.Minute

// CachedRoute is the stored outcome of one optimization call: the
// service's waypoint permutation plus aggregate stats.
type CachedRoute struct {
	Order []int             `json:"order"`
	Stats domain.RouteStats `json:"stats"`
}

// RouteCache stores optimization results in Redis, keyed by a digest
// of the warehouse and the stop coordinates in their input order.
// Cache failures never fail an optimization: read errors count as
// misses, write errors are reported to the caller to log and move on.
type RouteCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func NewRouteCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RouteCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RouteCache{rdb: rdb, ttl: ttl, log: log}
}

func key(stops []domain.Stop, warehouse domain.Coordinate) string {
	var b strings.Builder
	b.WriteString(warehouse.String())
	for _, s := range stops {
		b.WriteByte('|')
		b.WriteString(s.Coordinate().String())
	}
	sum := sha256.Sum256([]byte(b.String()))
	return "route:" + hex.EncodeToString(sum[:])
}

// Get looks up a cached optimization for the given stop set.
func (c *RouteCache) Get(ctx context.Context, stops []domain.Stop, warehouse domain.Coordinate) (CachedRoute, bool) {
	if c == nil || c.rdb == nil {
		return CachedRoute{}, false
	}

	raw, err := c.rdb.Get(ctx, key(stops, warehouse)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("route cache read failed")
		}
		return CachedRoute{}, false
	}

	var cached CachedRoute
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.log.Warn().Err(err).Msg("route cache entry is corrupt")
		return CachedRoute{}, false
	}
	return cached, true
}

// Put stores an optimization result with the cache TTL.
func (c *RouteCache) Put(ctx context.Context, stops []domain.Stop, warehouse domain.Coordinate, order []int, stats domain.RouteStats) error {
	if c == nil || c.rdb == nil {
		return nil
	}

	raw, err := json.Marshal(CachedRoute{Order: order, Stats: stats})
	if err != nil {
		return fmt.Errorf("marshal cached route: %w", err)
	}
	if err := c.rdb.Set(ctx, key(stops, warehouse), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("store cached route: %w", err)
	}
	return nil
}
