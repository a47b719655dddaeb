package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"mealmatcher/internal/models"
)

type RecipeRepository struct {
	db *sql.DB
}

func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

var _ Recipes = (*RecipeRepository)(nil)

const (
	insertRecipeSQL = `INSERT INTO recipes (owner_id, title, ingredients, instructions, source) VALUES (?, ?, ?, ?, ?)`

	selectRecipesByOwnerSQL = `SELECT id, owner_id, title, ingredients, instructions, source FROM recipes WHERE owner_id = ? ORDER BY id ASC`

	deleteRecipeSQL = `DELETE FROM recipes WHERE owner_id = ? AND id = ?`

	searchRecipesSQL = `SELECT id, owner_id, title, ingredients, instructions, source FROM recipes WHERE title LIKE ? OR ingredients LIKE ? ORDER BY id ASC`
)

// marshalList converts a string slice to its JSON text column form.
// nil encodes as an empty array so columns stay NOT NULL.
func marshalList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalList(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Add inserts an owned recipe row and returns its generated id.
func (r *RecipeRepository) Add(ctx context.Context, rec models.Recipe) (int, error) {
	ingredients, err := marshalList(rec.Ingredients)
	if err != nil {
		return 0, fmt.Errorf("marshal ingredients: %w", err)
	}
	instructions, err := marshalList(rec.Instructions)
	if err != nil {
		return 0, fmt.Errorf("marshal instructions: %w", err)
	}

	res, err := r.db.ExecContext(ctx, insertRecipeSQL, rec.OwnerID, rec.Title, ingredients, instructions, rec.Source)
	if err != nil {
		return 0, fmt.Errorf("insert recipe %q: %w", rec.Title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for recipe %q: %w", rec.Title, err)
	}
	return int(lastID), nil
}

// ListByOwner returns every recipe the given user saved, in insertion order.
func (r *RecipeRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, selectRecipesByOwnerSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select recipes for owner %d: %w", ownerID, err)
	}
	defer rows.Close()
	return scanRecipes(rows)
}

// Delete removes an owned recipe. Deleting a row that does not exist (or is
// owned by someone else) is not an error.
func (r *RecipeRepository) Delete(ctx context.Context, ownerID, recipeID int) error {
	if _, err := r.db.ExecContext(ctx, deleteRecipeSQL, ownerID, recipeID); err != nil {
		return fmt.Errorf("delete recipe %d for owner %d: %w", recipeID, ownerID, err)
	}
	return nil
}

// Search matches the query against titles and the JSON-encoded ingredient
// lists of all users' recipes.
func (r *RecipeRepository) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	like := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx, searchRecipesSQL, like, like)
	if err != nil {
		return nil, fmt.Errorf("search recipes %q: %w", query, err)
	}
	defer rows.Close()
	return scanRecipes(rows)
}

func scanRecipes(rows *sql.Rows) ([]models.Recipe, error) {
	out := make([]models.Recipe, 0, 16)
	for rows.Next() {
		var (
			rec                        models.Recipe
			ingredients, instructions string
		)
		if err := rows.Scan(&rec.ID, &rec.OwnerID, &rec.Title, &ingredients, &instructions, &rec.Source); err != nil {
			return nil, err
		}
		var err error
		if rec.Ingredients, err = unmarshalList(ingredients); err != nil {
			return nil, fmt.Errorf("decode ingredients for recipe %d: %w", rec.ID, err)
		}
		if rec.Instructions, err = unmarshalList(instructions); err != nil {
			return nil, fmt.Errorf("decode instructions for recipe %d: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
