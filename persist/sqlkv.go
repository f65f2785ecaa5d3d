// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package persist

import (
	"context"
	"database/sql"
	"errors"
)

// SQLKV stores key-value pairs in the kv table (SQLite or PostgreSQL)
type SQLKV struct {
	db *sql.DB
}

func NewSQLKV(db *sql.DB) *SQLKV {
	return &SQLKV{db: db}
}

func (k *SQLKV) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := k.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (k *SQLKV) Set(ctx context.Context, key, value string) error {
	_, err := k.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
