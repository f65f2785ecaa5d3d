// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "food-poll:"

// RedisKV stores key-value pairs in Redis under a fixed prefix, without TTL
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV connects to Redis and verifies the connection
func NewRedisKV(addr string) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisKV{client: client}, nil
}

func (k *RedisKV) Get(ctx context.Context, key string) (string, error) {
	value, err := k.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	return value, err
}

func (k *RedisKV) Set(ctx context.Context, key, value string) error {
	return k.client.Set(ctx, redisKeyPrefix+key, value, 0).Err()
}

func (k *RedisKV) Close() error {
	return k.client.Close()
}
