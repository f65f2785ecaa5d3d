// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p                Server port
	-b                Store backend (local, sql, remote, remote-cached)
	-d                Database URL
	-t                Database type (sqlite or postgres)
	-kv               Key-value backend for the local store (sql or redis)
	-redis            Redis address
	-r                Remote store base URL
	-o                Export directory
	-admin-password   Admin password
	-token-secret     Admin token signing secret

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p (default 3318)
	STORE_BACKEND      → -b (default local)
	DATABASE_URL       → -d (default foodpoll.db for sqlite)
	DATABASE_TYPE      → -t (default sqlite)
	KV_BACKEND         → -kv (default sql)
	REDIS_ADDR         → -redis (default localhost:6379)
	REMOTE_URL         → -r
	EXPORT_DIR         → -o
	ADMIN_PASSWORD     → -admin-password
	ADMIN_TOKEN_SECRET → -token-secret

Environment only:

	ADMIN_TOKEN_TTL  admin token lifetime (default 12h)
	SAVE_TIMEOUT     per-save timeout, 0 disables (default 0)
	REMOTE_TIMEOUT   HTTP client timeout for remote backends (default 10s)
	LOG_LEVEL        debug, info, warn, error (default info)
	LOG_FORMAT       text or json (default text)

CLI flags take precedence over environment variables. main loads a .env
file into the environment before ParseFlags runs.

# Validation

ParseFlags returns an error if:

  - ADMIN_PASSWORD or ADMIN_TOKEN_SECRET is missing
  - DATABASE_URL is missing with DATABASE_TYPE=postgres
  - REMOTE_URL is missing with a remote backend
  - an enum or duration value does not parse
*/
package cliparse
