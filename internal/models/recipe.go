package models

// Recipe is a saved, user-owned recipe.
type Recipe struct {
	ID           int      `json:"id"`
	OwnerID      int      `json:"-"`
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Source       string   `json:"source,omitempty"`
}

// Rating is a single 1–5 score a user gave a recipe. Repeat submissions
// accumulate; there is no uniqueness on (user, recipe).
type Rating struct {
	UserID   int `json:"user_id"`
	RecipeID int `json:"recipe_id"`
	Rating   int `json:"rating"`
}

// Favorite marks a recipe as liked by a user.
type Favorite struct {
	UserID   int `json:"user_id"`
	RecipeID int `json:"recipe_id"`
}

// GeneratedRecipe is one suggestion parsed out of the generative model's
// reply. The extra timing/difficulty fields only exist on generated
// recipes, not on saved ones.
type GeneratedRecipe struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Source       string   `json:"source"`
	PrepTime     string   `json:"prepTime"`
	CookTime     string   `json:"cookTime"`
	Difficulty   string   `json:"difficulty"` // Easy | Medium | Hard
}
