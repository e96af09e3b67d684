package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kmuchiri/jikoni-orders/utils"
)

// AdminRequired gates menu, order and settings mutations behind a valid,
// non-revoked admin session token.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		if !claims.Admin {
			utils.RespondError(c, http.StatusForbidden, errors.New("admin access required"))
			c.Abort()
			return
		}

		c.Set("admin", true)
		c.Set("token", tokenString)

		c.Next()
	}
}

// WebSocketAuthMiddleware marks the connection admin when a valid token is
// supplied as a query parameter; customers attach without one.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token != "" {
			if claims, err := utils.ParseToken(token); err == nil && claims.Admin {
				c.Set("admin", true)
			}
		}
		c.Next()
	}
}
