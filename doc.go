// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Food Poll API server.

Food Poll collects a team's daily food order: admins keep a menu of
delivery places and their dishes and mark which dishes can be ordered
today, users vote for what they want (with optional notes), and at the end
the admin exports a plain-text order list grouped by dish.

# Starting the Server

Admin credentials are always required:

	ADMIN_PASSWORD=... ADMIN_TOKEN_SECRET=... go run .

Or with flags:

	go run . -p 3318 -admin-password ... -token-secret ...

A .env file in the working directory is loaded first if present.

# Configuration

Required settings:

  - ADMIN_PASSWORD (-admin-password): password for POST /admin/login
  - ADMIN_TOKEN_SECRET (-token-secret): HMAC key for admin session tokens

Storage settings:

  - STORE_BACKEND (-b): local (default), sql, remote, remote-cached
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): database file or connection string (default foodpoll.db)
  - KV_BACKEND (-kv): sql (default) or redis, for the local backend
  - REDIS_ADDR (-redis): Redis address (default localhost:6379)
  - REMOTE_URL (-r): base URL of another Food Poll server

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - EXPORT_DIR (-o): also write exported reports into this directory
  - ADMIN_TOKEN_TTL, SAVE_TIMEOUT, REMOTE_TIMEOUT: durations
  - LOG_LEVEL, LOG_FORMAT: slog level and text or json output

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (data, voting, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin guard, JSON helpers
  - store: In-memory state, vote toggle, menus, report export
  - persist: Load/save backends (key-value, SQL, remote, cached)
  - metrics: Prometheus counters served on /metrics
  - models: Domain and request/response types
  - auth: ID generation, admin password and tokens
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
