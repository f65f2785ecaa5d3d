// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package persist implements the persistence backends behind one port.

# Persister

Every backend loads and saves complete snapshots:

	type Persister interface {
		Load(ctx context.Context) (models.Snapshot, error)
		Save(ctx context.Context, snap models.Snapshot) error
	}

Open builds the backend chosen by configuration:

	p, closer, err := persist.Open(cfg)
	defer closer.Close()

# Backends

  - KVStore (local): three independent JSON blobs under the keys
    "deliveries", "foods" and "votes". A missing key loads as an empty
    collection. The blobs live in a KV, either SQLKV (the kv table) or
    RedisKV.
  - SQLStore (sql): delivery, food and vote tables. Save replaces all rows
    in one transaction; Load reads them back by position.
  - Remote (remote): GET /api/fetchData and POST /api/saveData on another
    food-poll server.
  - Cached (remote-cached): Remote in front of a local KVStore. Load falls
    back to the cache when the remote is unreachable.

Concurrent writers are not coordinated; the last save wins.
*/
package persist
