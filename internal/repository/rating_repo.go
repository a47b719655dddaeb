package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mealmatcher/internal/models"
)

type RatingRepository struct {
	db *sql.DB
}

func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

var _ Ratings = (*RatingRepository)(nil)

const insertRatingSQL = `INSERT INTO ratings (user_id, recipe_id, rating, created_at) VALUES (?, ?, ?, ?)`

// Add appends a rating row. Ratings are append-only: a user rating the same
// recipe again produces a second row.
func (r *RatingRepository) Add(ctx context.Context, rt models.Rating) error {
	_, err := r.db.ExecContext(ctx, insertRatingSQL, rt.UserID, rt.RecipeID, rt.Rating, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert rating %d for recipe %d: %w", rt.Rating, rt.RecipeID, err)
	}
	return nil
}
