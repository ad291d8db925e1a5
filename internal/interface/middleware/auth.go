package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/connectify-hq/connectify/internal/domain/repository"
	"github.com/connectify-hq/connectify/pkg/helpers"
	"github.com/connectify-hq/connectify/pkg/response"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserIDKey     = "userID"
	CtxUserNameKey   = "userName"
	CtxUserEmailKey  = "userEmail"
	CtxProfilePicKey = "userProfilePic"
)

// BearerToken extracts the token segment of an "Authorization: Bearer x"
// header; empty when the header is missing or has no token part.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Auth guards every state-mutating or identity-scoped route. It verifies
// the bearer assertion, confirms the identity still exists, and attaches
// a minimal projection to the request context.
func Auth(jwt *helpers.JWTManager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			response.AbortMessage(c, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}
		claims, err := jwt.Verify(token)
		if err != nil {
			response.AbortMessage(c, http.StatusBadRequest, "Invalid token")
			return
		}
		u, err := users.GetByID(claims.ID)
		if errors.Is(err, repository.ErrNotFound) {
			response.AbortMessage(c, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			response.AbortMessage(c, http.StatusInternalServerError, "Error verifying token")
			return
		}
		c.Set(CtxUserIDKey, u.ID.Hex())
		c.Set(CtxUserNameKey, u.Name)
		c.Set(CtxUserEmailKey, u.Email)
		c.Set(CtxProfilePicKey, u.ProfilePic)
		c.Next()
	}
}
