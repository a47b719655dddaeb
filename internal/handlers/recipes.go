package handlers

import (
	"errors"
	"net/http"

	"mealmatcher/internal/models"
	"mealmatcher/internal/service"

	"github.com/gin-gonic/gin"
)

type addRecipeRequest struct {
	Title        string   `json:"title" binding:"required"`
	Source       string   `json:"source"`
	Ingredients  []string `json:"ingredients" binding:"required"`
	Instructions []string `json:"instructions" binding:"required"`
}

type recipeIDRequest struct {
	RecipeID int `json:"recipe_id" binding:"required"`
}

type ratingRequest struct {
	RecipeID int `json:"recipe_id" binding:"required"`
	Rating   int `json:"rating" binding:"required"`
}

type ingredientsRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
}

// @Summary      Save a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        body  body  addRecipeRequest  true  "Recipe payload"
// @Success      200  {object}  map[string]interface{}  "message, recipe_id"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /add_recipe [post]
// @Security     BearerAuth
func (h *Handler) addRecipe(c *gin.Context) {
	var req addRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.services.Recipes.Add(c.Request.Context(), models.Recipe{
		OwnerID:      userID(c),
		Title:        req.Title,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Source:       req.Source,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to save recipe", "add_recipe_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe added successfully", "recipe_id": id})
}

// @Summary      List own recipes
// @Tags         recipes
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "recipes"
// @Failure      401  {object}  map[string]string
// @Router       /get_recipes [get]
// @Security     BearerAuth
func (h *Handler) getRecipes(c *gin.Context) {
	recipes, err := h.services.Recipes.List(c.Request.Context(), userID(c))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load recipes", "get_recipes_failed", err)
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// @Summary      Remove an own recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        body  body  recipeIDRequest  true  "Recipe id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /remove_recipe [post]
// @Security     BearerAuth
func (h *Handler) removeRecipe(c *gin.Context) {
	var req recipeIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id is required"})
		return
	}

	if err := h.services.Recipes.Remove(c.Request.Context(), userID(c), req.RecipeID); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to remove recipe", "remove_recipe_failed", err, "recipe_id", req.RecipeID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe removed"})
}

// @Summary      Rate a recipe
// @Description  Rating must be an integer from 1 to 5.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        body  body  ratingRequest  true  "Rating payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /rating [post]
// @Security     BearerAuth
func (h *Handler) submitRating(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id and rating are required"})
		return
	}

	err := h.services.Recipes.SubmitRating(c.Request.Context(), userID(c), req.RecipeID, req.Rating)
	if err != nil {
		if errors.Is(err, service.ErrRatingRange) || errors.Is(err, service.ErrMissingRecipe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to save rating", "rating_failed", err, "recipe_id", req.RecipeID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rating submitted"})
}

// @Summary      Add a favorite
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Param        body  body  recipeIDRequest  true  "Recipe id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /favorites/add [post]
// @Security     BearerAuth
func (h *Handler) addFavorite(c *gin.Context) {
	var req recipeIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id is required"})
		return
	}

	if err := h.services.Recipes.AddFavorite(c.Request.Context(), userID(c), req.RecipeID); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to add favorite", "favorite_add_failed", err, "recipe_id", req.RecipeID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorite added"})
}

// @Summary      Remove a favorite
// @Description  Idempotent: removing a favorite that does not exist still returns 200.
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Param        body  body  recipeIDRequest  true  "Recipe id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /favorites/remove [post]
// @Security     BearerAuth
func (h *Handler) removeFavorite(c *gin.Context) {
	var req recipeIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id is required"})
		return
	}

	if err := h.services.Recipes.RemoveFavorite(c.Request.Context(), userID(c), req.RecipeID); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to remove favorite", "favorite_remove_failed", err, "recipe_id", req.RecipeID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
}

// @Summary      Search saved recipes
// @Tags         recipes
// @Produce      json
// @Param        query  query  string  true  "Title or ingredient fragment"
// @Success      200  {object}  map[string]interface{}  "recipes"
// @Failure      400  {object}  map[string]string
// @Router       /search [get]
func (h *Handler) searchRecipes(c *gin.Context) {
	recipes, err := h.services.Recipes.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		if errors.Is(err, service.ErrEmptySearch) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to search recipes", "search_failed", err)
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// @Summary      Save pantry ingredients
// @Tags         pantry
// @Accept       json
// @Produce      json
// @Param        body  body  ingredientsRequest  true  "Ingredient list"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /ingredients [post]
// @Security     BearerAuth
func (h *Handler) saveIngredients(c *gin.Context) {
	var req ingredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients list is required"})
		return
	}

	if err := h.services.Recipes.SavePantry(c.Request.Context(), userID(c), req.Ingredients); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to save ingredients", "pantry_save_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredients saved"})
}

// @Summary      Get pantry ingredients
// @Tags         pantry
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "ingredients"
// @Router       /ingredients [get]
// @Security     BearerAuth
func (h *Handler) getIngredients(c *gin.Context) {
	items, err := h.services.Recipes.GetPantry(c.Request.Context(), userID(c))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load ingredients", "pantry_load_failed", err)
		return
	}
	if items == nil {
		items = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": items})
}
