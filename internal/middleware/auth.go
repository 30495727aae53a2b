package middleware

import (
	"net/http"

	"github.com/Mithilesh71320/nextera-code/internal/ctxutil"
	"github.com/Mithilesh71320/nextera-code/internal/service"
	"github.com/Mithilesh71320/nextera-code/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthMiddleware validates the JWT access token from the Authorization header and
// attaches the admin to both the gin context and the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := utils.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortSessionMissing(c, "Authorization header required. Use: Bearer <token>")
			return
		}

		claims, err := utils.ValidateAccessToken(token)
		if err != nil {
			abortSessionMissing(c, "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Request = c.Request.WithContext(ctxutil.WithActorID(c.Request.Context(), claims.UserID))

		c.Next()
	}
}

// RequireAdmin checks if the authenticated user has admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			abortSessionMissing(c, "Authentication required")
			return
		}

		if role != "admin" {
			utils.ErrorResponse(c, http.StatusForbidden, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

func abortSessionMissing(c *gin.Context, message string) {
	utils.ErrorDetailResponse(c, http.StatusUnauthorized, message, gin.H{"code": service.KindSessionMissing})
	c.Abort()
}
