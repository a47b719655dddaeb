package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type FavoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

var _ Favorites = (*FavoriteRepository)(nil)

// Both statements are single atomic operations, so no check-then-act
// sequencing is needed around them.
const (
	insertFavoriteSQL = `INSERT OR IGNORE INTO favorites (user_id, recipe_id) VALUES (?, ?)`
	deleteFavoriteSQL = `DELETE FROM favorites WHERE user_id = ? AND recipe_id = ?`
)

// Add marks a recipe as a favorite. Favoriting twice is a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, userID, recipeID int) error {
	if _, err := r.db.ExecContext(ctx, insertFavoriteSQL, userID, recipeID); err != nil {
		return fmt.Errorf("insert favorite (%d,%d): %w", userID, recipeID, err)
	}
	return nil
}

// Remove deletes the favorite row if present. Removing a favorite that does
// not exist is not an error.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, recipeID int) error {
	if _, err := r.db.ExecContext(ctx, deleteFavoriteSQL, userID, recipeID); err != nil {
		return fmt.Errorf("delete favorite (%d,%d): %w", userID, recipeID, err)
	}
	return nil
}
