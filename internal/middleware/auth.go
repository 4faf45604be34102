package middleware

import (
	"strings"

	"educatif_backend/internal/config"
	"educatif_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and stores the claims under "user".
// Any failure yields a bare 401 with no further detail.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			util.Unauthorized(c, "No authorization header")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" || tokenString == authHeader {
			util.Unauthorized(c, "No token provided")
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil || claims.ID == 0 {
			util.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}
