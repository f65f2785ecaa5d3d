// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"github.com/danielhkuo/food-poll/models"
)

// VoterMenu lists deliveries with only their available foods. Deliveries
// without any available food are left out. HasVoted is set for userID.
func (s *Store) VoterMenu(userID string) models.Menu {
	s.mu.Lock()
	snap := s.snapshotLocked()
	today := s.Today()
	s.mu.Unlock()

	return buildMenu(snap, today, userID, true)
}

// AdminMenu lists every delivery and every food regardless of availability
func (s *Store) AdminMenu() models.Menu {
	s.mu.Lock()
	snap := s.snapshotLocked()
	today := s.Today()
	s.mu.Unlock()

	return buildMenu(snap, today, "", false)
}

func buildMenu(snap models.Snapshot, day, userID string, availableOnly bool) models.Menu {
	counts := make(map[string]int)
	voted := make(map[string]bool)
	for _, v := range snap.Votes {
		if v.Date != day {
			continue
		}
		counts[v.FoodID]++
		if userID != "" && v.UserID == userID {
			voted[v.FoodID] = true
		}
	}

	foodsByDelivery := make(map[string][]models.MenuFood)
	for _, f := range snap.Foods {
		if availableOnly && !f.IsAvailableToday {
			continue
		}
		foodsByDelivery[f.DeliveryID] = append(foodsByDelivery[f.DeliveryID], models.MenuFood{
			Food:      f,
			VoteCount: counts[f.ID],
			HasVoted:  voted[f.ID],
		})
	}

	menu := models.Menu{Date: day, Deliveries: []models.MenuDelivery{}}
	for _, d := range snap.Deliveries {
		foods := foodsByDelivery[d.ID]
		if availableOnly && len(foods) == 0 {
			continue
		}
		if foods == nil {
			foods = []models.MenuFood{}
		}
		menu.Deliveries = append(menu.Deliveries, models.MenuDelivery{Delivery: d, Foods: foods})
	}

	return menu
}
