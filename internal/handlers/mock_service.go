package handlers

import (
	"context"
	"net/url"
	"strings"

	"mealmatcher/internal/models"
	"mealmatcher/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerID  int
	registerErr error

	loginUser  *models.User
	loginToken string
	loginErr   error

	guestUser  *models.User
	guestToken string
	guestErr   error

	parseEmail string
	parseErr   error

	userIDByEmail int
	userIDErr     error

	user    *models.User
	userErr error

	updatedUser  *models.User
	updatedToken string
	updateErr    error

	lastRegisterEmail    string
	lastRegisterPassword string
	lastLoginEmail       string
	lastParseToken       string
	lastUpdate           models.ProfileUpdate
}

func (m *mockAuth) Register(ctx context.Context, email, name, password string) (int, error) {
	m.lastRegisterEmail = email
	m.lastRegisterPassword = password
	return m.registerID, m.registerErr
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	m.lastLoginEmail = email
	return m.loginUser, m.loginToken, m.loginErr
}

func (m *mockAuth) Guest(ctx context.Context) (*models.User, string, error) {
	return m.guestUser, m.guestToken, m.guestErr
}

func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseEmail, m.parseErr
}

func (m *mockAuth) GetUserID(ctx context.Context, email string) (int, error) {
	return m.userIDByEmail, m.userIDErr
}

func (m *mockAuth) GetUser(ctx context.Context, id int) (*models.User, error) {
	return m.user, m.userErr
}

func (m *mockAuth) UpdateProfile(ctx context.Context, userID int, upd models.ProfileUpdate) (*models.User, string, error) {
	m.lastUpdate = upd
	return m.updatedUser, m.updatedToken, m.updateErr
}

type mockRecipes struct {
	addID  int
	addErr error

	list    []models.Recipe
	listErr error

	removeErr   error
	searchResp  []models.Recipe
	searchErr   error
	favAddErr   error
	favRmErr    error
	ratingErr   error
	pantrySave  error
	pantryItems []string
	pantryErr   error

	removeCalls  int
	favRmCalls   int
	lastRating   int
	lastRecipeID int
	lastAdded    models.Recipe
	lastPantry   []string
}

func (m *mockRecipes) Add(ctx context.Context, r models.Recipe) (int, error) {
	m.lastAdded = r
	return m.addID, m.addErr
}

func (m *mockRecipes) List(ctx context.Context, ownerID int) ([]models.Recipe, error) {
	return m.list, m.listErr
}

func (m *mockRecipes) Remove(ctx context.Context, ownerID, recipeID int) error {
	m.removeCalls++
	m.lastRecipeID = recipeID
	return m.removeErr
}

func (m *mockRecipes) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	if strings.TrimSpace(query) == "" {
		return nil, service.ErrEmptySearch
	}
	return m.searchResp, m.searchErr
}

func (m *mockRecipes) AddFavorite(ctx context.Context, userID, recipeID int) error {
	m.lastRecipeID = recipeID
	return m.favAddErr
}

func (m *mockRecipes) RemoveFavorite(ctx context.Context, userID, recipeID int) error {
	m.favRmCalls++
	m.lastRecipeID = recipeID
	return m.favRmErr
}

func (m *mockRecipes) SubmitRating(ctx context.Context, userID, recipeID, rating int) error {
	m.lastRecipeID = recipeID
	m.lastRating = rating
	return m.ratingErr
}

func (m *mockRecipes) SavePantry(ctx context.Context, userID int, ingredients []string) error {
	m.lastPantry = ingredients
	return m.pantrySave
}

func (m *mockRecipes) GetPantry(ctx context.Context, userID int) ([]string, error) {
	return m.pantryItems, m.pantryErr
}

type mockRecommender struct {
	resp []models.GeneratedRecipe
	err  error

	lastIngredients []string
	lastPrefs       []string
}

func (m *mockRecommender) Generate(ctx context.Context, ingredients, dietaryPrefs []string) ([]models.GeneratedRecipe, error) {
	m.lastIngredients = ingredients
	m.lastPrefs = dietaryPrefs
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// authedMock returns a mockAuth that lets bearer requests through as user 1.
func authedMock() *mockAuth {
	return &mockAuth{parseEmail: "a@x.com", userIDByEmail: 1, user: &models.User{ID: 1, Email: "a@x.com"}}
}

func formBody(values map[string]string) *strings.Reader {
	form := url.Values{}
	for k, v := range values {
		form.Set(k, v)
	}
	return strings.NewReader(form.Encode())
}
