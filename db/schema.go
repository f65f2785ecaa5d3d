// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/food-poll/cliparse"
)

// Open connects to the configured database and verifies the connection
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	driver := "sqlite"
	if databaseType == cliparse.DatabasePostgres {
		driver = "postgres"
	}

	conn, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", databaseType, err)
	}

	if driver == "sqlite" {
		// A single writer avoids SQLITE_BUSY between the save worker and requests
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", databaseType, err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Deliveries (meal vendors)
CREATE TABLE IF NOT EXISTS delivery (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    position INTEGER NOT NULL
);

-- Foods
CREATE TABLE IF NOT EXISTS food (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    delivery_id TEXT NOT NULL REFERENCES delivery(id) ON DELETE CASCADE,
    is_available_today BOOLEAN NOT NULL DEFAULT TRUE,
    position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_food_delivery_id ON food(delivery_id);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    food_id TEXT NOT NULL REFERENCES food(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    additional_requests TEXT NOT NULL DEFAULT '',
    vote_date TEXT NOT NULL,
    position INTEGER NOT NULL,
    UNIQUE (food_id, user_id, vote_date)
);

CREATE INDEX IF NOT EXISTS idx_vote_date ON vote(vote_date);

-- Key-value blobs for the local store
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
