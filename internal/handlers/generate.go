package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"mealmatcher/internal/service"

	"github.com/gin-gonic/gin"
)

// The client sends ingredients as one comma-separated string.
type generateRequest struct {
	Ingredients string `json:"ingredients" binding:"required"`
}

// splitCSV splits a comma-separated field into trimmed, non-empty items.
func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// @Summary      Generate recipe suggestions
// @Description  Asks the generative model for three recipes constrained to the given ingredients and the user's dietary preferences.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        body  body  generateRequest  true  "Comma-separated ingredients"
// @Success      200  {object}  map[string]interface{}  "recipes"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string  "error, raw_response"
// @Failure      504  {object}  map[string]string
// @Router       /generate [post]
// @Security     BearerAuth
func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients is required"})
		return
	}
	ingredients := splitCSV(req.Ingredients)
	if len(ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients is required"})
		return
	}

	ctx := c.Request.Context()

	u, err := h.services.GetUser(ctx, userID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user"})
		return
	}

	recipes, err := h.services.Recommender.Generate(ctx, ingredients, splitCSV(u.DietaryPrefs))
	if err != nil {
		h.respondGenerateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// respondGenerateError maps gateway failures onto distinct statuses: 504 for
// an exhausted/timed-out model call, 502 with the raw model text when the
// reply could not be parsed.
func (h *Handler) respondGenerateError(c *gin.Context, err error) {
	var pe *service.ParseError
	switch {
	case errors.As(err, &pe):
		if h.log != nil {
			h.log.Errorw("generate_parse_failed", "kind", pe.Kind, "request_id", c.GetString(ctxRequestID))
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": pe.Kind, "raw_response": pe.Raw})
	case errors.Is(err, context.DeadlineExceeded):
		h.logAndJSONError(c, http.StatusGatewayTimeout, "recipe generation timed out", "generate_timeout", err)
	default:
		h.logAndJSONError(c, http.StatusBadGateway, "failed to generate recipes", "generate_failed", err)
	}
}
