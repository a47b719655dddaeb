package handlers

import (
	"mealmatcher/internal/logger"
	"mealmatcher/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Public endpoints
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.GET("/guest", h.guest)
	router.GET("/search", h.searchRecipes)

	// Protected endpoints (bearer token)
	h.registerProtectedRoutes(router)

	// Live "my recipes" feed (HTTP upgrade) — same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerProtectedRoutes(r *gin.Engine) {
	api := r.Group("/", h.identityMiddleware)
	{
		api.POST("/generate", h.generate)
		api.POST("/add_recipe", h.addRecipe)
		api.GET("/get_recipes", h.getRecipes)
		api.POST("/remove_recipe", h.removeRecipe)
		api.POST("/rating", h.submitRating)
		api.PUT("/profile", h.updateProfile)

		favorites := api.Group("/favorites")
		{
			favorites.POST("/add", h.addFavorite)
			favorites.POST("/remove", h.removeFavorite)
		}

		api.POST("/ingredients", h.saveIngredients)
		api.GET("/ingredients", h.getIngredients)
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(ctxRequestID)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
