// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package persist

import (
	"fmt"
	"io"

	"github.com/danielhkuo/food-poll/cliparse"
	"github.com/danielhkuo/food-poll/db"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the persister selected by cfg.Backend.
// The returned closer releases database or Redis connections.
func Open(cfg cliparse.Config) (Persister, io.Closer, error) {
	switch cfg.Backend {
	case cliparse.BackendLocal:
		return openLocal(cfg)

	case cliparse.BackendSQL:
		conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.CreateSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return NewSQLStore(conn), conn, nil

	case cliparse.BackendRemote:
		return NewRemote(cfg.RemoteURL, cfg.RemoteTimeout), nopCloser{}, nil

	case cliparse.BackendRemoteCached:
		cache, closer, err := openLocal(cfg)
		if err != nil {
			return nil, nil, err
		}
		return NewCached(NewRemote(cfg.RemoteURL, cfg.RemoteTimeout), cache), closer, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}

func openLocal(cfg cliparse.Config) (Persister, io.Closer, error) {
	if cfg.KVBackend == cliparse.KVBackendRedis {
		kv, err := NewRedisKV(cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return NewKVStore(kv), kv, nil
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return NewKVStore(NewSQLKV(conn)), conn, nil
}
