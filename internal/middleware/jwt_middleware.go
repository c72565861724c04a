package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veloralabs/storefront_api/internal/utils"
)

// JWTMiddleware guards routes that require an authenticated session.
type JWTMiddleware struct{}

// NewJWTMiddleware constructs a JWTMiddleware.
func NewJWTMiddleware() *JWTMiddleware {
	return &JWTMiddleware{}
}

// Handle validates the bearer token and stores the session identity on
// the request context.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, 401, "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(c, 401, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			utils.Error(c, 401, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("is_admin", claims.IsAdmin)
		c.Next()
	}
}

// RequireAdmin rejects sessions without the admin flag. Must run after
// Handle.
func (m *JWTMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_admin") {
			utils.Error(c, 403, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
