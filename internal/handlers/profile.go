package handlers

import (
	"errors"
	"net/http"

	"mealmatcher/internal/models"
	"mealmatcher/internal/service"

	"github.com/gin-gonic/gin"
)

// All fields optional; empty or absent fields leave the stored value as is.
type profileRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	DietaryPreferences string `json:"dietaryPreferences"`
	Password           string `json:"password"`
}

// @Summary      Update profile
// @Description  Updates the provided fields and returns the updated user plus a fresh token (the email may have changed).
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  profileRequest  true  "Fields to change"
// @Success      200  {object}  map[string]interface{}  "user, token"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /profile [put]
// @Security     BearerAuth
func (h *Handler) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Email != "" && !emailRE.MatchString(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email address"})
		return
	}
	if req.Password != "" && len(req.Password) < minPasswordLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 6 characters"})
		return
	}

	u, token, err := h.services.UpdateProfile(c.Request.Context(), userID(c), models.ProfileUpdate{
		Name:         req.Name,
		Email:        req.Email,
		DietaryPrefs: req.DietaryPreferences,
		Password:     req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to update profile", "profile_update_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
}
