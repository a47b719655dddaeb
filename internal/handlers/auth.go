package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"mealmatcher/internal/service"

	"github.com/gin-gonic/gin"
)

// The register/login bodies arrive as form fields (the mobile client posts
// forms, not JSON).
type registerForm struct {
	Email    string `form:"email" binding:"required"`
	Name     string `form:"name" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

const minPasswordLen = 6

var emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Input validation is the HTTP layer's job; the service assumes it was done.
func validCredentials(email, password string) (string, bool) {
	if !emailRE.MatchString(email) {
		return "invalid email address", false
	}
	if len(password) < minPasswordLen {
		return "password must be at least 6 characters", false
	}
	return "", true
}

// @Summary      Register a new account
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        email     formData  string  true  "Email address"
// @Param        name      formData  string  true  "Display name"
// @Param        password  formData  string  true  "Password (min 6 chars)"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerForm
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg, ok := validCredentials(input.Email, input.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if _, err := h.services.Register(c.Request.Context(), input.Email, input.Name, input.Password); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to register", "register_failed", err, "email", input.Email)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "You are registered"})
}

// @Summary      Log in
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        email     formData  string  true  "Email address"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  map[string]interface{}  "token, user"
// @Failure      401  {object}  map[string]string
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginForm
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, token, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		// One generic answer for unknown email and wrong password alike.
		if h.log != nil {
			h.log.Infow("login_failed", "email", input.Email)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

// @Summary      Create a guest session
// @Description  Provisions an anonymous account and returns its token.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "id, email, name, token"
// @Router       /guest [get]
func (h *Handler) guest(c *gin.Context) {
	u, token, err := h.services.Guest(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to create guest session", "guest_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"token": token,
	})
}
