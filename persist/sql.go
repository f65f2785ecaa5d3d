// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package persist

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/food-poll/models"
)

// SQLStore keeps the collections in the delivery, food and vote tables
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Load reads all three tables in insertion order
func (s *SQLStore) Load(ctx context.Context) (models.Snapshot, error) {
	snap := models.Snapshot{}.Normalize()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM delivery ORDER BY position`)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to query deliveries: %w", err)
	}
	for rows.Next() {
		var d models.Delivery
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			rows.Close()
			return models.Snapshot{}, fmt.Errorf("failed to scan delivery: %w", err)
		}
		snap.Deliveries = append(snap.Deliveries, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read deliveries: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT id, name, delivery_id, is_available_today
		FROM food
		ORDER BY position
	`)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to query foods: %w", err)
	}
	for rows.Next() {
		var f models.Food
		if err := rows.Scan(&f.ID, &f.Name, &f.DeliveryID, &f.IsAvailableToday); err != nil {
			rows.Close()
			return models.Snapshot{}, fmt.Errorf("failed to scan food: %w", err)
		}
		snap.Foods = append(snap.Foods, f)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read foods: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT id, food_id, user_id, additional_requests, vote_date
		FROM vote
		ORDER BY position
	`)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.FoodID, &v.UserID, &v.AdditionalRequests, &v.Date); err != nil {
			return models.Snapshot{}, fmt.Errorf("failed to scan vote: %w", err)
		}
		snap.Votes = append(snap.Votes, v)
	}
	if err := rows.Err(); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read votes: %w", err)
	}

	return snap, nil
}

// Save replaces the contents of all three tables in one transaction
func (s *SQLStore) Save(ctx context.Context, snap models.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Children first so foreign keys hold throughout
	for _, table := range []string{"vote", "food", "delivery"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, d := range snap.Deliveries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO delivery (id, name, position)
			VALUES ($1, $2, $3)
		`, d.ID, d.Name, i)
		if err != nil {
			return fmt.Errorf("failed to insert delivery %s: %w", d.ID, err)
		}
	}

	for i, f := range snap.Foods {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO food (id, name, delivery_id, is_available_today, position)
			VALUES ($1, $2, $3, $4, $5)
		`, f.ID, f.Name, f.DeliveryID, f.IsAvailableToday, i)
		if err != nil {
			return fmt.Errorf("failed to insert food %s: %w", f.ID, err)
		}
	}

	for i, v := range snap.Votes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO vote (id, food_id, user_id, additional_requests, vote_date, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, v.ID, v.FoodID, v.UserID, v.AdditionalRequests, v.Date, i)
		if err != nil {
			return fmt.Errorf("failed to insert vote %s: %w", v.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
