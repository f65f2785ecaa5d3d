// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/danielhkuo/food-poll/auth"
	"github.com/danielhkuo/food-poll/metrics"
	"github.com/danielhkuo/food-poll/models"
	"github.com/danielhkuo/food-poll/persist"
)

var (
	ErrDeliveryNotFound = errors.New("delivery not found")
	ErrFoodNotFound     = errors.New("food not found")
	ErrFoodUnavailable  = errors.New("food is not available today")
	ErrInvalidSnapshot  = errors.New("invalid snapshot")
)

// Clock supplies the current time; "today" is its UTC calendar day
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock
var SystemClock Clock = systemClock{}

type Options struct {
	Clock       Clock                  // defaults to SystemClock
	NewID       func() (string, error) // defaults to auth.GenerateID
	SaveTimeout time.Duration          // 0 means no timeout
}

type queuedSave struct {
	version uint64
	snap    models.Snapshot
}

// Store holds deliveries, foods and votes in memory and persists every
// change through a Persister on a background worker.
//
// Collections are never modified in place: each mutation builds new slices,
// so a snapshot taken under the lock stays valid after it is released.
type Store struct {
	mu         sync.Mutex
	deliveries []models.Delivery
	foods      []models.Food
	votes      []models.Vote
	version    uint64
	closed     bool

	persister   persist.Persister
	clock       Clock
	newID       func() (string, error)
	saveTimeout time.Duration

	pending chan queuedSave
	done    chan struct{}

	saveMu    sync.Mutex // serializes Persister.Save calls
	lastSaved uint64
}

// Open loads the collections from p and starts the save worker.
// A failed load is logged and the store starts empty.
func Open(ctx context.Context, p persist.Persister, opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.NewID == nil {
		opts.NewID = auth.GenerateID
	}

	s := &Store{
		persister:   p,
		clock:       opts.Clock,
		newID:       opts.NewID,
		saveTimeout: opts.SaveTimeout,
		pending:     make(chan queuedSave, 1),
		done:        make(chan struct{}),
	}

	snap, err := p.Load(ctx)
	if err != nil {
		slog.Error("failed to load data, starting empty", "error", err)
		snap = models.Snapshot{}
	}
	snap = snap.Normalize()
	s.deliveries, s.foods, s.votes = snap.Deliveries, snap.Foods, snap.Votes

	slog.Info("store loaded",
		"deliveries", len(s.deliveries),
		"foods", len(s.foods),
		"votes", len(s.votes),
	)

	go s.saveLoop()
	return s
}

// Close stops accepting saves and waits for the pending one to finish
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.pending)
	s.mu.Unlock()

	<-s.done
}

// Today returns the current UTC calendar day as YYYY-MM-DD
func (s *Store) Today() string {
	return s.clock.Now().UTC().Format(models.DateLayout)
}

// Snapshot returns a copy of all three collections
func (s *Store) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.Snapshot{
		Deliveries: slices.Clone(s.deliveries),
		Foods:      slices.Clone(s.foods),
		Votes:      slices.Clone(s.votes),
	}.Normalize()
}

// Replace swaps in a complete snapshot after validating it, then saves it
// synchronously. The in-memory state stays replaced even if the save fails.
func (s *Store) Replace(ctx context.Context, snap models.Snapshot) error {
	snap = snap.Normalize()
	if err := Validate(snap); err != nil {
		return err
	}

	s.mu.Lock()
	s.deliveries = slices.Clone(snap.Deliveries)
	s.foods = slices.Clone(snap.Foods)
	s.votes = slices.Clone(snap.Votes)
	s.version++

	// Anything still queued is older than this snapshot
	select {
	case <-s.pending:
	default:
	}
	q := queuedSave{version: s.version, snap: s.snapshotLocked()}
	s.mu.Unlock()

	// Readers and writers proceed while the backend works; a newer change
	// saved first makes this save a no-op.
	return s.save(ctx, q)
}

// Validate checks ID uniqueness, references, and the one-vote-per-day rule
func Validate(snap models.Snapshot) error {
	deliveries := make(map[string]bool, len(snap.Deliveries))
	for _, d := range snap.Deliveries {
		if d.ID == "" || deliveries[d.ID] {
			return fmt.Errorf("%w: missing or duplicate delivery id %q", ErrInvalidSnapshot, d.ID)
		}
		deliveries[d.ID] = true
	}

	foods := make(map[string]bool, len(snap.Foods))
	for _, f := range snap.Foods {
		if f.ID == "" || foods[f.ID] {
			return fmt.Errorf("%w: missing or duplicate food id %q", ErrInvalidSnapshot, f.ID)
		}
		if !deliveries[f.DeliveryID] {
			return fmt.Errorf("%w: food %s references unknown delivery %q", ErrInvalidSnapshot, f.ID, f.DeliveryID)
		}
		foods[f.ID] = true
	}

	type voteKey struct{ food, user, date string }
	voteIDs := make(map[string]bool, len(snap.Votes))
	keys := make(map[voteKey]bool, len(snap.Votes))
	for _, v := range snap.Votes {
		if v.ID == "" || voteIDs[v.ID] {
			return fmt.Errorf("%w: missing or duplicate vote id %q", ErrInvalidSnapshot, v.ID)
		}
		if !foods[v.FoodID] {
			return fmt.Errorf("%w: vote %s references unknown food %q", ErrInvalidSnapshot, v.ID, v.FoodID)
		}
		if _, err := time.Parse(models.DateLayout, v.Date); err != nil {
			return fmt.Errorf("%w: vote %s has invalid date %q", ErrInvalidSnapshot, v.ID, v.Date)
		}
		k := voteKey{v.FoodID, v.UserID, v.Date}
		if keys[k] {
			return fmt.Errorf("%w: user %q voted twice for food %s on %s", ErrInvalidSnapshot, v.UserID, v.FoodID, v.Date)
		}
		voteIDs[v.ID] = true
		keys[k] = true
	}

	return nil
}

func (s *Store) snapshotLocked() models.Snapshot {
	return models.Snapshot{
		Deliveries: s.deliveries,
		Foods:      s.foods,
		Votes:      s.votes,
	}
}

// changed bumps the version and queues the new state for saving.
// Must be called with s.mu held.
func (s *Store) changed() {
	s.version++
	if s.closed {
		slog.Warn("store closed, change not persisted", "version", s.version)
		return
	}

	// Keep only the newest snapshot; the channel has room for one and only
	// holders of s.mu send, so the send below never blocks.
	select {
	case <-s.pending:
	default:
	}
	s.pending <- queuedSave{version: s.version, snap: s.snapshotLocked()}
}

func (s *Store) saveLoop() {
	defer close(s.done)
	for q := range s.pending {
		s.save(context.Background(), q)
	}
}

// save persists q unless a newer version was already saved
func (s *Store) save(ctx context.Context, q queuedSave) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if q.version <= s.lastSaved {
		return nil
	}
	s.lastSaved = q.version

	if s.saveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.saveTimeout)
		defer cancel()
	}

	start := time.Now()
	err := s.persister.Save(ctx, q.snap)
	metrics.SaveDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.Saves.WithLabelValues("error").Inc()
		slog.Error("failed to save data", "error", err, "version", q.version)
		return err
	}

	metrics.Saves.WithLabelValues("ok").Inc()
	slog.Debug("data saved", "version", q.version, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func appendCopy[T any](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}
