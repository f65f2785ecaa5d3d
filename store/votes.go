// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"log/slog"

	"github.com/danielhkuo/food-poll/metrics"
	"github.com/danielhkuo/food-poll/models"
)

// CastOrRetractVote toggles the user's vote for a food today.
// If the user already voted for the food today the vote is removed and
// returned with cast=false; otherwise a new vote is added (cast=true).
// New votes need an existing, available food; retracting only needs the vote.
func (s *Store) CastOrRetractVote(foodID, userID, additionalRequests string) (models.Vote, bool, error) {
	// Generated up front so the ID source never runs under the lock
	id, err := s.newID()
	if err != nil {
		return models.Vote{}, false, fmt.Errorf("failed to cast vote: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.Today()

	for _, v := range s.votes {
		if v.FoodID == foodID && v.UserID == userID && v.Date == today {
			s.votes = filter(s.votes, func(o models.Vote) bool { return o.ID != v.ID })
			s.changed()

			metrics.VotesRetracted.Inc()
			slog.Info("vote retracted", "vote_id", v.ID, "food_id", foodID, "user_id", userID)
			return v, false, nil
		}
	}

	food, ok := s.foodLocked(foodID)
	if !ok {
		return models.Vote{}, false, ErrFoodNotFound
	}
	if !food.IsAvailableToday {
		return models.Vote{}, false, ErrFoodUnavailable
	}

	vote := models.Vote{
		ID:                 id,
		FoodID:             foodID,
		UserID:             userID,
		AdditionalRequests: additionalRequests,
		Date:               today,
	}
	s.votes = appendCopy(s.votes, vote)
	s.changed()

	metrics.VotesCast.Inc()
	slog.Info("vote cast", "vote_id", vote.ID, "food_id", foodID, "user_id", userID)
	return vote, true, nil
}

// ClearDailyVotes removes every vote dated today and keeps older ones.
// It returns today's date and how many votes were removed.
func (s *Store) ClearDailyVotes() (string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.Today()
	votes := filter(s.votes, func(v models.Vote) bool { return v.Date != today })
	removed := len(s.votes) - len(votes)
	if removed == 0 {
		return today, 0
	}

	s.votes = votes
	s.changed()

	metrics.VotesCleared.Add(float64(removed))
	slog.Info("daily votes cleared", "date", today, "removed", removed)
	return today, removed
}

// VotesForDay returns the votes dated day, in insertion order
func (s *Store) VotesForDay(day string) []models.Vote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filter(s.votes, func(v models.Vote) bool { return v.Date == day })
}
