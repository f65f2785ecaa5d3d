// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package persist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/food-poll/models"
)

// Cached puts a local cache in front of a primary (usually remote) store
type Cached struct {
	primary Persister
	cache   Persister
}

func NewCached(primary, cache Persister) *Cached {
	return &Cached{primary: primary, cache: cache}
}

// Load prefers the primary and refreshes the cache from it.
// When the primary fails, the cached copy is returned instead.
func (c *Cached) Load(ctx context.Context) (models.Snapshot, error) {
	snap, err := c.primary.Load(ctx)
	if err == nil {
		if cerr := c.cache.Save(ctx, snap); cerr != nil {
			slog.Warn("failed to refresh local cache", "error", cerr)
		}
		return snap, nil
	}

	slog.Warn("primary load failed, using local cache", "error", err)
	cached, cerr := c.cache.Load(ctx)
	if cerr != nil {
		return models.Snapshot{}, fmt.Errorf("primary: %w; cache: %v", err, cerr)
	}
	return cached, nil
}

// Save writes the cache first so a primary outage still leaves a local copy.
// The primary's error is the one returned.
func (c *Cached) Save(ctx context.Context, snap models.Snapshot) error {
	if err := c.cache.Save(ctx, snap); err != nil {
		slog.Warn("failed to write local cache", "error", err)
	}
	return c.primary.Save(ctx, snap)
}
