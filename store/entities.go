// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/danielhkuo/food-poll/models"
)

// Removed counts what a delete took out, cascades included
type Removed struct {
	Deliveries int
	Foods      int
	Votes      int
}

// AddDelivery appends a new delivery. The caller checks the name is non-empty.
func (s *Store) AddDelivery(name string) (models.Delivery, error) {
	id, err := s.newID()
	if err != nil {
		return models.Delivery{}, fmt.Errorf("failed to add delivery: %w", err)
	}
	d := models.Delivery{ID: id, Name: name}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.deliveries = appendCopy(s.deliveries, d)
	s.changed()

	slog.Info("delivery added", "delivery_id", d.ID, "name", d.Name)
	return d, nil
}

// DeleteDelivery removes the delivery, its foods, and their votes.
// Unknown IDs are a no-op.
func (s *Store) DeleteDelivery(id string) Removed {
	s.mu.Lock()
	defer s.mu.Unlock()

	deliveries := filter(s.deliveries, func(d models.Delivery) bool { return d.ID != id })
	if len(deliveries) == len(s.deliveries) {
		return Removed{}
	}

	doomed := make(map[string]bool)
	foods := filter(s.foods, func(f models.Food) bool {
		if f.DeliveryID == id {
			doomed[f.ID] = true
			return false
		}
		return true
	})
	votes := filter(s.votes, func(v models.Vote) bool { return !doomed[v.FoodID] })

	removed := Removed{
		Deliveries: len(s.deliveries) - len(deliveries),
		Foods:      len(s.foods) - len(foods),
		Votes:      len(s.votes) - len(votes),
	}
	s.deliveries, s.foods, s.votes = deliveries, foods, votes
	s.changed()

	slog.Info("delivery deleted", "delivery_id", id, "foods", removed.Foods, "votes", removed.Votes)
	return removed
}

// AddFood appends a food, available today, to an existing delivery
func (s *Store) AddFood(name, deliveryID string) (models.Food, error) {
	id, err := s.newID()
	if err != nil {
		return models.Food{}, fmt.Errorf("failed to add food: %w", err)
	}
	f := models.Food{ID: id, Name: name, DeliveryID: deliveryID, IsAvailableToday: true}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deliveryLocked(deliveryID); !ok {
		return models.Food{}, ErrDeliveryNotFound
	}

	s.foods = appendCopy(s.foods, f)
	s.changed()

	slog.Info("food added", "food_id", f.ID, "delivery_id", deliveryID, "name", name)
	return f, nil
}

// DeleteFood removes the food and its votes. Unknown IDs are a no-op.
func (s *Store) DeleteFood(id string) Removed {
	s.mu.Lock()
	defer s.mu.Unlock()

	foods := filter(s.foods, func(f models.Food) bool { return f.ID != id })
	if len(foods) == len(s.foods) {
		return Removed{}
	}
	votes := filter(s.votes, func(v models.Vote) bool { return v.FoodID != id })

	removed := Removed{
		Foods: len(s.foods) - len(foods),
		Votes: len(s.votes) - len(votes),
	}
	s.foods, s.votes = foods, votes
	s.changed()

	slog.Info("food deleted", "food_id", id, "votes", removed.Votes)
	return removed
}

// ToggleFoodAvailability flips isAvailableToday. It reports false, and
// changes nothing, when the food does not exist.
func (s *Store) ToggleFoodAvailability(foodID string) (models.Food, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, f := range s.foods {
		if f.ID == foodID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Food{}, false
	}

	foods := slices.Clone(s.foods)
	foods[idx].IsAvailableToday = !foods[idx].IsAvailableToday
	toggled := foods[idx]

	s.foods = foods
	s.changed()

	slog.Info("food availability toggled", "food_id", foodID, "available", toggled.IsAvailableToday)
	return toggled, true
}

// Delivery looks up a delivery by ID
func (s *Store) Delivery(id string) (models.Delivery, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deliveryLocked(id)
}

// Food looks up a food by ID
func (s *Store) Food(id string) (models.Food, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.foodLocked(id)
}

func (s *Store) deliveryLocked(id string) (models.Delivery, bool) {
	for _, d := range s.deliveries {
		if d.ID == id {
			return d, true
		}
	}
	return models.Delivery{}, false
}

func (s *Store) foodLocked(id string) (models.Food, bool) {
	for _, f := range s.foods {
		if f.ID == id {
			return f, true
		}
	}
	return models.Food{}, false
}
