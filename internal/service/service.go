package service

import (
	"context"

	"mealmatcher/internal/models"
	"mealmatcher/internal/repository"
)

// Authorization covers accounts and bearer sessions: registration, login,
// guest provisioning, token issue/parse, identity resolution and profile
// updates.
type Authorization interface {
	Register(ctx context.Context, email, name, password string) (int, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Guest(ctx context.Context) (*models.User, string, error)
	ParseToken(accessToken string) (string, error)
	GetUserID(ctx context.Context, email string) (int, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int, upd models.ProfileUpdate) (*models.User, string, error)
}

// Recipes covers saved recipes, favorites, ratings and the pantry.
type Recipes interface {
	Add(ctx context.Context, r models.Recipe) (int, error)
	List(ctx context.Context, ownerID int) ([]models.Recipe, error)
	Remove(ctx context.Context, ownerID, recipeID int) error
	Search(ctx context.Context, query string) ([]models.Recipe, error)
	AddFavorite(ctx context.Context, userID, recipeID int) error
	RemoveFavorite(ctx context.Context, userID, recipeID int) error
	SubmitRating(ctx context.Context, userID, recipeID, rating int) error
	SavePantry(ctx context.Context, userID int, ingredients []string) error
	GetPantry(ctx context.Context, userID int) ([]string, error)
}

// Recommender asks the generative model for recipe suggestions.
type Recommender interface {
	Generate(ctx context.Context, ingredients, dietaryPrefs []string) ([]models.GeneratedRecipe, error)
}

// ModelClient is the outbound port to the generative model API.
type ModelClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Recipes
	Recommender
}

// NewService wires the repository layer and the model client into concrete
// services.
func NewService(repos *repository.Repository, model ModelClient, authCfg AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, authCfg),
		Recipes:       NewRecipeService(repos.Recipes, repos.Ratings, repos.Favorites, repos.Pantry),
		Recommender:   NewRecommendService(model),
	}
}
