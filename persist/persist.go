// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package persist

import (
	"context"
	"errors"

	"github.com/danielhkuo/food-poll/models"
)

var ErrKeyNotFound = errors.New("key not found")

// Persister loads and saves the full set of collections.
// Every backend exchanges complete snapshots, never deltas.
type Persister interface {
	Load(ctx context.Context) (models.Snapshot, error)
	Save(ctx context.Context, snap models.Snapshot) error
}

// KV is a durable string key-value store
type KV interface {
	Get(ctx context.Context, key string) (string, error) // ErrKeyNotFound when absent
	Set(ctx context.Context, key, value string) error
}

// Storage keys used by the local store
const (
	KeyDeliveries = "deliveries"
	KeyFoods      = "foods"
	KeyVotes      = "votes"
)
