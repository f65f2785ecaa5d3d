// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connections

Open picks the driver from the database type (modernc.org/sqlite for
"sqlite", lib/pq for "postgres") and pings the connection:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

SQLite connections are limited to one open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on SQLite and PostgreSQL.

# Tables

  - delivery: meal vendors
  - food: foods per delivery with the daily availability flag
  - vote: one row per (food, user, day)
  - kv: JSON blobs keyed by collection name, used by the local store

Every entity table has a position column so collections load back in
insertion order.

# Relationships

	delivery 1──* food
	food     1──* vote

Foreign keys use ON DELETE CASCADE.
*/
package db
