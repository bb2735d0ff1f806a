// Package cache implements the Redis-backed read-through cache for job
// listings.
//
// Staleness is explicit: every cached key embeds the current epoch counter,
// and every job mutation bumps the epoch (Invalidate). Keys written under an
// old epoch are never read again and age out via TTL.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"gigboard/marketplace-service/internal/model"
)

const epochKey = "jobs:epoch"

// Listings caches job listing query results keyed by (epoch, filters).
type Listings struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewListings returns a Listings cache with the given entry TTL.
func NewListings(rdb *redis.Client, ttl time.Duration) *Listings {
	return &Listings{rdb: rdb, ttl: ttl}
}

// BuildKey derives the cache key for a filter combination under an epoch.
func BuildKey(epoch int64, category, status, search string) string {
	return fmt.Sprintf("jobs:v%d:cat=%s:status=%s:q=%s", epoch, category, status, search)
}

// Get returns the cached listing for the filters, or (nil, false) on a miss.
// Redis failures degrade to a miss so reads always fall back to SQL.
func (c *Listings) Get(ctx context.Context, category, status, search string) ([]model.Job, bool) {
	epoch, err := c.epoch(ctx)
	if err != nil {
		slog.Warn("listing cache epoch read failed", "err", err)
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, BuildKey(epoch, category, status, search)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("listing cache read failed", "err", err)
		}
		return nil, false
	}

	var jobs []model.Job
	if err := json.Unmarshal(raw, &jobs); err != nil {
		slog.Warn("listing cache entry corrupt", "err", err)
		return nil, false
	}
	return jobs, true
}

// Set stores a listing under the current epoch. Failures are non-fatal.
func (c *Listings) Set(ctx context.Context, category, status, search string, jobs []model.Job) {
	epoch, err := c.epoch(ctx)
	if err != nil {
		slog.Warn("listing cache epoch read failed", "err", err)
		return
	}

	raw, err := json.Marshal(jobs)
	if err != nil {
		slog.Warn("listing cache marshal failed", "err", err)
		return
	}

	if err := c.rdb.Set(ctx, BuildKey(epoch, category, status, search), raw, c.ttl).Err(); err != nil {
		slog.Warn("listing cache write failed", "err", err)
	}
}

// Invalidate bumps the epoch so every previously cached listing is dead.
// Called after each job mutation.
func (c *Listings) Invalidate(ctx context.Context) {
	if err := c.rdb.Incr(ctx, epochKey).Err(); err != nil {
		slog.Warn("listing cache invalidate failed", "err", err)
	}
}

func (c *Listings) epoch(ctx context.Context) (int64, error) {
	epoch, err := c.rdb.Get(ctx, epochKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return epoch, err
}
