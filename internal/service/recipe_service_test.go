package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"mealmatcher/internal/models"
)

type mockRecipeRepo struct {
	added   models.Recipe
	addID   int
	deleted []int
}

func (m *mockRecipeRepo) Add(_ context.Context, r models.Recipe) (int, error) {
	m.added = r
	return m.addID, nil
}

func (m *mockRecipeRepo) ListByOwner(_ context.Context, ownerID int) ([]models.Recipe, error) {
	return []models.Recipe{{ID: 1, OwnerID: ownerID}}, nil
}

func (m *mockRecipeRepo) Delete(_ context.Context, _, recipeID int) error {
	m.deleted = append(m.deleted, recipeID)
	return nil
}

func (m *mockRecipeRepo) Search(_ context.Context, query string) ([]models.Recipe, error) {
	return []models.Recipe{{ID: 2, Title: query}}, nil
}

type mockRatingRepo struct {
	rows []models.Rating
}

func (m *mockRatingRepo) Add(_ context.Context, r models.Rating) error {
	m.rows = append(m.rows, r)
	return nil
}

type mockFavoriteRepo struct {
	adds, removes int
}

func (m *mockFavoriteRepo) Add(_ context.Context, _, _ int) error    { m.adds++; return nil }
func (m *mockFavoriteRepo) Remove(_ context.Context, _, _ int) error { m.removes++; return nil }

type mockPantryRepo struct {
	saved []string
}

func (m *mockPantryRepo) Save(_ context.Context, _ int, ingredients []string) error {
	m.saved = ingredients
	return nil
}

func (m *mockPantryRepo) Load(_ context.Context, _ int) ([]string, error) {
	return m.saved, nil
}

func newTestRecipeService() (*RecipeService, *mockRecipeRepo, *mockRatingRepo, *mockFavoriteRepo, *mockPantryRepo) {
	recipes := &mockRecipeRepo{addID: 1}
	ratings := &mockRatingRepo{}
	favorites := &mockFavoriteRepo{}
	pantry := &mockPantryRepo{}
	return NewRecipeService(recipes, ratings, favorites, pantry), recipes, ratings, favorites, pantry
}

func TestRecipeService_Add(t *testing.T) {
	s, repo, _, _, _ := newTestRecipeService()

	if _, err := s.Add(context.Background(), models.Recipe{Title: "   "}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}

	id, err := s.Add(context.Background(), models.Recipe{OwnerID: 1, Title: "Soup"})
	if err != nil || id != 1 {
		t.Fatalf("got (%d, %v), want (1, nil)", id, err)
	}
	if repo.added.Title != "Soup" {
		t.Fatalf("unexpected stored recipe: %+v", repo.added)
	}
}

func TestRecipeService_Remove(t *testing.T) {
	s, repo, _, _, _ := newTestRecipeService()

	if err := s.Remove(context.Background(), 1, 0); !errors.Is(err, ErrMissingRecipe) {
		t.Fatalf("expected ErrMissingRecipe, got %v", err)
	}
	if err := s.Remove(context.Background(), 1, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != 5 {
		t.Fatalf("unexpected deletes: %v", repo.deleted)
	}
}

func TestRecipeService_Search(t *testing.T) {
	s, _, _, _, _ := newTestRecipeService()

	for _, q := range []string{"", "   "} {
		if _, err := s.Search(context.Background(), q); !errors.Is(err, ErrEmptySearch) {
			t.Fatalf("query %q: expected ErrEmptySearch, got %v", q, err)
		}
	}

	got, err := s.Search(context.Background(), "  chicken  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "chicken" {
		t.Fatalf("query not trimmed before the store: %+v", got)
	}
}

func TestRecipeService_SubmitRating(t *testing.T) {
	tests := []struct {
		name     string
		recipeID int
		rating   int
		wantErr  error
	}{
		{name: "below range", recipeID: 1, rating: 0, wantErr: ErrRatingRange},
		{name: "lower bound", recipeID: 1, rating: 1},
		{name: "upper bound", recipeID: 1, rating: 5},
		{name: "above range", recipeID: 1, rating: 6, wantErr: ErrRatingRange},
		{name: "missing recipe", recipeID: 0, rating: 3, wantErr: ErrMissingRecipe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, ratings, _, _ := newTestRecipeService()
			err := s.SubmitRating(context.Background(), 1, tt.recipeID, tt.rating)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if len(ratings.rows) != 0 {
					t.Fatal("invalid rating reached the store")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(ratings.rows) != 1 || ratings.rows[0].Rating != tt.rating {
				t.Fatalf("unexpected stored ratings: %+v", ratings.rows)
			}
		})
	}
}

func TestRecipeService_Favorites(t *testing.T) {
	s, _, _, favorites, _ := newTestRecipeService()

	if err := s.AddFavorite(context.Background(), 1, 0); !errors.Is(err, ErrMissingRecipe) {
		t.Fatalf("expected ErrMissingRecipe, got %v", err)
	}
	if err := s.AddFavorite(context.Background(), 1, 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.RemoveFavorite(context.Background(), 1, 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if favorites.adds != 1 || favorites.removes != 1 {
		t.Fatalf("unexpected calls: adds=%d removes=%d", favorites.adds, favorites.removes)
	}
}

func TestRecipeService_SavePantry_TrimsBlanks(t *testing.T) {
	s, _, _, _, pantry := newTestRecipeService()

	err := s.SavePantry(context.Background(), 1, []string{" tomato ", "", "  ", "rice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"tomato", "rice"}; !reflect.DeepEqual(pantry.saved, want) {
		t.Fatalf("saved %v, want %v", pantry.saved, want)
	}
}
