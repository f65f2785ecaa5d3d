// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/food-poll/cliparse"
	"github.com/danielhkuo/food-poll/db"
	"github.com/danielhkuo/food-poll/models"
)

// Today is the calendar day used by fixed test clocks
const Today = "2024-01-02"

// SetupTestDB creates a fresh SQLite database in a temp dir with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		Backend:          cliparse.BackendLocal,
		DatabaseType:     cliparse.DatabaseSQLite,
		DatabaseURL:      "file:test.db",
		KVBackend:        cliparse.KVBackendSQL,
		AdminPassword:    "test-password",
		AdminTokenSecret: "test-token-secret",
		AdminTokenTTL:    time.Hour,
	}
}

// Clock is a settable clock for tests
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock fixed at midday UTC on the given YYYY-MM-DD day
func NewClock(day string) *Clock {
	c := &Clock{}
	c.SetDay(day)
	return c
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *Clock) SetDay(day string) {
	t, err := time.Parse(models.DateLayout, day)
	if err != nil {
		panic(err)
	}
	c.Set(t.Add(12 * time.Hour))
}

// MemoryPersister keeps snapshots in memory and records every save
type MemoryPersister struct {
	mu      sync.Mutex
	snap    models.Snapshot
	saves   int
	LoadErr error
	SaveErr error
}

func NewMemoryPersister(initial models.Snapshot) *MemoryPersister {
	return &MemoryPersister{snap: initial.Normalize()}
}

func (m *MemoryPersister) Load(ctx context.Context) (models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return models.Snapshot{}, m.LoadErr
	}
	return m.snap, nil
}

func (m *MemoryPersister) Save(ctx context.Context, snap models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.snap = snap
	return nil
}

// Saved returns the last successfully saved snapshot
func (m *MemoryPersister) Saved() models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// Saves returns how many times Save was called
func (m *MemoryPersister) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

var ErrInjected = errors.New("injected failure")

// SampleSnapshot returns two deliveries, three foods (one unavailable) and
// votes on Today and the previous day
func SampleSnapshot() models.Snapshot {
	return models.Snapshot{
		Deliveries: []models.Delivery{
			{ID: "d1", Name: "Pizza Place"},
			{ID: "d2", Name: "Noodle Bar"},
		},
		Foods: []models.Food{
			{ID: "f1", Name: "Margherita", DeliveryID: "d1", IsAvailableToday: true},
			{ID: "f2", Name: "Pepperoni", DeliveryID: "d1", IsAvailableToday: false},
			{ID: "f3", Name: "Ramen", DeliveryID: "d2", IsAvailableToday: true},
		},
		Votes: []models.Vote{
			{ID: "v1", FoodID: "f1", UserID: "alice", AdditionalRequests: "extra basil", Date: Today},
			{ID: "v2", FoodID: "f1", UserID: "bob", Date: Today},
			{ID: "v3", FoodID: "f2", UserID: "carol", Date: Today},
			{ID: "v4", FoodID: "f3", UserID: "alice", Date: "2024-01-01"},
		},
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
