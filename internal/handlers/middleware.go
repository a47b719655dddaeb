package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by identityMiddleware.
const (
	ctxUserID    = "userId"
	ctxUserEmail = "userEmail"
	ctxRequestID = "requestId"
)

const requestIDHeader = "X-Request-ID"

// requestIDMiddleware tags every request with an id for log correlation.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(ctxRequestID, id)
	c.Header(requestIDHeader, id)
	c.Next()
}

// identityMiddleware gates protected routes: it validates the bearer token,
// then resolves the token identity (email) to the internal numeric user id.
// A token whose account no longer resolves is rejected the same way as a bad
// token.
func (h *Handler) identityMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	email, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	userID, err := h.services.GetUserID(c.Request.Context(), email)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid user",
		})
		return
	}

	// store in Gin context
	c.Set(ctxUserID, userID)
	c.Set(ctxUserEmail, email)
	c.Next()
}

// userID reads the id placed in the context by identityMiddleware.
func userID(c *gin.Context) int {
	return c.GetInt(ctxUserID)
}
