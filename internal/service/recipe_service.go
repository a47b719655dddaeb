package service

import (
	"context"
	"errors"
	"strings"

	"mealmatcher/internal/models"
	"mealmatcher/internal/repository"
)

var (
	ErrEmptyTitle    = errors.New("recipe title is required")
	ErrRatingRange   = errors.New("rating must be an integer between 1 and 5")
	ErrMissingRecipe = errors.New("recipe_id is required")
	ErrEmptySearch   = errors.New("search query is empty")
)

// RecipeService owns the rules around saved recipes, favorites, ratings and
// the pantry. Persistence failures pass through as errors for the HTTP layer
// to turn into 500s; they are never fatal.
type RecipeService struct {
	recipes   repository.Recipes
	ratings   repository.Ratings
	favorites repository.Favorites
	pantry    repository.Pantry
}

func NewRecipeService(recipes repository.Recipes, ratings repository.Ratings, favorites repository.Favorites, pantry repository.Pantry) *RecipeService {
	return &RecipeService{recipes: recipes, ratings: ratings, favorites: favorites, pantry: pantry}
}

var _ Recipes = (*RecipeService)(nil)

// Add saves a new owned recipe and returns its generated id.
func (s *RecipeService) Add(ctx context.Context, r models.Recipe) (int, error) {
	if strings.TrimSpace(r.Title) == "" {
		return 0, ErrEmptyTitle
	}
	return s.recipes.Add(ctx, r)
}

// List returns the owner's recipes, and only the owner's.
func (s *RecipeService) List(ctx context.Context, ownerID int) ([]models.Recipe, error) {
	return s.recipes.ListByOwner(ctx, ownerID)
}

// Remove deletes an owned recipe; removing one that is already gone is fine.
func (s *RecipeService) Remove(ctx context.Context, ownerID, recipeID int) error {
	if recipeID == 0 {
		return ErrMissingRecipe
	}
	return s.recipes.Delete(ctx, ownerID, recipeID)
}

// Search matches saved recipes of all users by title or ingredient.
func (s *RecipeService) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptySearch
	}
	return s.recipes.Search(ctx, query)
}

func (s *RecipeService) AddFavorite(ctx context.Context, userID, recipeID int) error {
	if recipeID == 0 {
		return ErrMissingRecipe
	}
	return s.favorites.Add(ctx, userID, recipeID)
}

// RemoveFavorite is idempotent: the underlying delete succeeds whether or
// not the row exists.
func (s *RecipeService) RemoveFavorite(ctx context.Context, userID, recipeID int) error {
	if recipeID == 0 {
		return ErrMissingRecipe
	}
	return s.favorites.Remove(ctx, userID, recipeID)
}

// SubmitRating validates the 1..5 range before anything reaches the store.
func (s *RecipeService) SubmitRating(ctx context.Context, userID, recipeID, rating int) error {
	if recipeID == 0 {
		return ErrMissingRecipe
	}
	if rating < 1 || rating > 5 {
		return ErrRatingRange
	}
	return s.ratings.Add(ctx, models.Rating{UserID: userID, RecipeID: recipeID, Rating: rating})
}

// SavePantry replaces the user's ingredient list, dropping blank entries.
func (s *RecipeService) SavePantry(ctx context.Context, userID int, ingredients []string) error {
	cleaned := make([]string, 0, len(ingredients))
	for _, in := range ingredients {
		if in = strings.TrimSpace(in); in != "" {
			cleaned = append(cleaned, in)
		}
	}
	return s.pantry.Save(ctx, userID, cleaned)
}

func (s *RecipeService) GetPantry(ctx context.Context, userID int) ([]string, error) {
	return s.pantry.Load(ctx, userID)
}
