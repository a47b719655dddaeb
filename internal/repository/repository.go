package repository

import (
	"context"
	"database/sql"

	"mealmatcher/internal/models"
)

type Users interface {
	Create(ctx context.Context, email, name, passwordHash string) (int, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetIDByEmail(ctx context.Context, email string) (int, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	Update(ctx context.Context, id int, email, name, dietaryPrefs, passwordHash string) error
}

type Recipes interface {
	Add(ctx context.Context, r models.Recipe) (int, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Recipe, error)
	Delete(ctx context.Context, ownerID, recipeID int) error
	Search(ctx context.Context, query string) ([]models.Recipe, error)
}

type Ratings interface {
	Add(ctx context.Context, r models.Rating) error
}

type Favorites interface {
	Add(ctx context.Context, userID, recipeID int) error
	Remove(ctx context.Context, userID, recipeID int) error
}

type Pantry interface {
	Save(ctx context.Context, userID int, ingredients []string) error
	Load(ctx context.Context, userID int) ([]string, error)
}

type Repository struct {
	Users     Users
	Recipes   Recipes
	Ratings   Ratings
	Favorites Favorites
	Pantry    Pantry
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:     NewUserRepository(db),
		Recipes:   NewRecipeRepository(db),
		Ratings:   NewRatingRepository(db),
		Favorites: NewFavoriteRepository(db),
		Pantry:    NewPantryRepository(db),
	}
}
