// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/food-poll/models"
)

// KVStore is the local strategy: each collection is an independent JSON blob
type KVStore struct {
	kv KV
}

func NewKVStore(kv KV) *KVStore {
	return &KVStore{kv: kv}
}

// Load reads the three blobs. A missing key is an empty collection.
func (s *KVStore) Load(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot

	if err := s.loadKey(ctx, KeyDeliveries, &snap.Deliveries); err != nil {
		return models.Snapshot{}, err
	}
	if err := s.loadKey(ctx, KeyFoods, &snap.Foods); err != nil {
		return models.Snapshot{}, err
	}
	if err := s.loadKey(ctx, KeyVotes, &snap.Votes); err != nil {
		return models.Snapshot{}, err
	}

	return snap.Normalize(), nil
}

// Save writes the three blobs one after another. The writes are independent;
// a failure part-way leaves earlier keys updated.
func (s *KVStore) Save(ctx context.Context, snap models.Snapshot) error {
	snap = snap.Normalize()

	if err := s.saveKey(ctx, KeyDeliveries, snap.Deliveries); err != nil {
		return err
	}
	if err := s.saveKey(ctx, KeyFoods, snap.Foods); err != nil {
		return err
	}
	return s.saveKey(ctx, KeyVotes, snap.Votes)
}

func (s *KVStore) loadKey(ctx context.Context, key string, v any) error {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) saveKey(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	slog.Debug("kv blob saved", "key", key, "size", humanize.Bytes(uint64(len(raw))))
	return nil
}
