// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package persist

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/danielhkuo/food-poll/db"
	"github.com/danielhkuo/food-poll/models"
	"github.com/danielhkuo/food-poll/testutil"
)

// checkRoundTrip saves a snapshot, loads it back, and saves the loaded copy again
func checkRoundTrip(t *testing.T, p Persister) {
	t.Helper()
	ctx := context.Background()
	want := testutil.SampleSnapshot()

	if err := p.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Load() after Save() mismatch\n got: %+v\nwant: %+v", got, want)
	}

	// save(load()) leaves contents unchanged
	if err := p.Save(ctx, got); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}
	again, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if !reflect.DeepEqual(again, want) {
		t.Errorf("save(load()) changed contents\n got: %+v\nwant: %+v", again, want)
	}
}

func checkEmptyLoad(t *testing.T, p Persister) {
	t.Helper()
	snap, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() on empty store error = %v", err)
	}
	if snap.Deliveries == nil || snap.Foods == nil || snap.Votes == nil {
		t.Error("Expected empty, non-nil collections")
	}
	if len(snap.Deliveries)+len(snap.Foods)+len(snap.Votes) != 0 {
		t.Errorf("Expected empty snapshot, got %+v", snap)
	}
}

func TestKVStore_SQLite(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	p := NewKVStore(NewSQLKV(conn))

	checkEmptyLoad(t, p)
	checkRoundTrip(t, p)
}

func TestKVStore_IndependentKeys(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	kv := NewSQLKV(conn)
	ctx := context.Background()

	// Only deliveries present; the other keys are treated as empty
	if err := kv.Set(ctx, KeyDeliveries, `[{"id":"d1","name":"Pizza Place"}]`); err != nil {
		t.Fatal(err)
	}

	snap, err := NewKVStore(kv).Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(snap.Deliveries) != 1 || snap.Deliveries[0].Name != "Pizza Place" {
		t.Errorf("Unexpected deliveries: %+v", snap.Deliveries)
	}
	if len(snap.Foods) != 0 || len(snap.Votes) != 0 {
		t.Errorf("Expected empty foods and votes, got %+v", snap)
	}

	// Each collection is stored as its own JSON array
	if err := NewKVStore(kv).Save(ctx, testutil.SampleSnapshot()); err != nil {
		t.Fatal(err)
	}
	raw, err := kv.Get(ctx, KeyVotes)
	if err != nil {
		t.Fatal(err)
	}
	var votes []models.Vote
	if err := json.Unmarshal([]byte(raw), &votes); err != nil {
		t.Fatalf("votes blob is not a JSON array: %v", err)
	}
	if len(votes) != 4 {
		t.Errorf("Expected 4 votes in blob, got %d", len(votes))
	}
}

func TestKVStore_CorruptBlob(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	kv := NewSQLKV(conn)
	ctx := context.Background()

	if err := kv.Set(ctx, KeyFoods, "{not json"); err != nil {
		t.Fatal(err)
	}
	if _, err := NewKVStore(kv).Load(ctx); err == nil {
		t.Error("Expected decode error for corrupt blob")
	}
}

func TestSQLKV_GetMissing(t *testing.T) {
	kv := NewSQLKV(testutil.SetupTestDB(t))

	_, err := kv.Get(context.Background(), "nope")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestSQLKV_Overwrite(t *testing.T) {
	kv := NewSQLKV(testutil.SetupTestDB(t))
	ctx := context.Background()

	for _, v := range []string{"first", "second"} {
		if err := kv.Set(ctx, "k", v); err != nil {
			t.Fatalf("Set(%q) error = %v", v, err)
		}
	}
	got, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if got != "second" {
		t.Errorf("Expected overwritten value, got %q", got)
	}
}

func TestSQLStore_SQLite(t *testing.T) {
	p := NewSQLStore(testutil.SetupTestDB(t))

	checkEmptyLoad(t, p)
	checkRoundTrip(t, p)
}

func TestSQLStore_ReplacesContents(t *testing.T) {
	p := NewSQLStore(testutil.SetupTestDB(t))
	ctx := context.Background()

	if err := p.Save(ctx, testutil.SampleSnapshot()); err != nil {
		t.Fatal(err)
	}

	smaller := models.Snapshot{
		Deliveries: []models.Delivery{{ID: "d9", Name: "Salad Stop"}},
		Foods:      []models.Food{},
		Votes:      []models.Vote{},
	}
	if err := p.Save(ctx, smaller); err != nil {
		t.Fatal(err)
	}

	got, err := p.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, smaller) {
		t.Errorf("Expected full replacement, got %+v", got)
	}
}

func TestSQLStore_PreservesOrder(t *testing.T) {
	p := NewSQLStore(testutil.SetupTestDB(t))
	ctx := context.Background()

	// IDs sort opposite to insertion order
	snap := models.Snapshot{
		Deliveries: []models.Delivery{{ID: "z", Name: "Last ID"}, {ID: "a", Name: "First ID"}},
		Foods:      []models.Food{},
		Votes:      []models.Vote{},
	}
	if err := p.Save(ctx, snap); err != nil {
		t.Fatal(err)
	}
	got, err := p.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Deliveries[0].ID != "z" || got.Deliveries[1].ID != "a" {
		t.Errorf("Insertion order lost: %+v", got.Deliveries)
	}
}

func TestSQLStore_FailedSaveKeepsPreviousContents(t *testing.T) {
	p := NewSQLStore(testutil.SetupTestDB(t))
	ctx := context.Background()

	if err := p.Save(ctx, testutil.SampleSnapshot()); err != nil {
		t.Fatal(err)
	}

	// Duplicate primary key aborts the transaction
	bad := testutil.SampleSnapshot()
	bad.Deliveries = append(bad.Deliveries, bad.Deliveries[0])
	if err := p.Save(ctx, bad); err == nil {
		t.Fatal("Expected error for duplicate delivery ID")
	}

	got, err := p.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, testutil.SampleSnapshot()) {
		t.Errorf("Rolled-back save changed contents: %+v", got)
	}
}

func TestSQLStore_Postgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := db.Open("postgres", url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Exec(`DROP TABLE IF EXISTS vote, food, delivery, kv CASCADE`); err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		t.Fatal(err)
	}

	checkRoundTrip(t, NewSQLStore(conn))
	checkRoundTrip(t, NewKVStore(NewSQLKV(conn)))
}

func TestKVStore_Redis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	kv, err := NewRedisKV(addr)
	if err != nil {
		t.Fatalf("NewRedisKV() error = %v", err)
	}
	defer kv.Close()

	checkRoundTrip(t, NewKVStore(kv))

	_, err = kv.Get(context.Background(), "missing-key")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()

	for _, backend := range []string{"local", "sql"} {
		t.Run(backend, func(t *testing.T) {
			cfg := testutil.GetTestConfig()
			cfg.Backend = backend
			cfg.DatabaseURL = dir + "/" + backend + ".db"

			p, closer, err := Open(cfg)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer closer.Close()

			checkRoundTrip(t, p)
		})
	}

	t.Run("remote", func(t *testing.T) {
		cfg := testutil.GetTestConfig()
		cfg.Backend = "remote"
		cfg.RemoteURL = "http://127.0.0.1:1"

		p, closer, err := Open(cfg)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer closer.Close()
		if _, ok := p.(*Remote); !ok {
			t.Errorf("Expected *Remote, got %T", p)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := testutil.GetTestConfig()
		cfg.Backend = "tape"
		if _, _, err := Open(cfg); err == nil {
			t.Error("Expected error for unknown backend")
		}
	})
}
