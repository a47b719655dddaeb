package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type PantryRepository struct {
	db *sql.DB
}

func NewPantryRepository(db *sql.DB) *PantryRepository {
	return &PantryRepository{db: db}
}

var _ Pantry = (*PantryRepository)(nil)

const (
	upsertPantrySQL = `
		INSERT INTO pantry (user_id, ingredients)
		VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET ingredients=excluded.ingredients
	`
	selectPantrySQL = `SELECT ingredients FROM pantry WHERE user_id = ?`
)

// Save replaces the user's pantry ingredient list.
func (r *PantryRepository) Save(ctx context.Context, userID int, ingredients []string) error {
	encoded, err := marshalList(ingredients)
	if err != nil {
		return fmt.Errorf("marshal pantry for user %d: %w", userID, err)
	}
	if _, err := r.db.ExecContext(ctx, upsertPantrySQL, userID, encoded); err != nil {
		return fmt.Errorf("upsert pantry for user %d: %w", userID, err)
	}
	return nil
}

// Load fetches the user's pantry. Returns nil if nothing was saved yet.
func (r *PantryRepository) Load(ctx context.Context, userID int) ([]string, error) {
	var encoded string
	err := r.db.QueryRowContext(ctx, selectPantrySQL, userID).Scan(&encoded)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select pantry for user %d: %w", userID, err)
	}
	items, err := unmarshalList(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode pantry for user %d: %w", userID, err)
	}
	return items, nil
}
