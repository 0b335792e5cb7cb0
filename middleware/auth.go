package middleware

import (
	"strings"

	"productivity/utils"

	"github.com/gin-gonic/gin"
)

const SubjectKey = "subject"

// AuthMiddleware requires a bearer token signed with secret. An empty secret
// disables the check, which is how local single-user setups run.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.TrackError("auth", "missing_token")
			utils.Unauthorized(c, "Missing or invalid token")
			return
		}

		claims, err := utils.ParseAccessToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			utils.TrackError("auth", "invalid_token")
			utils.Unauthorized(c, "Invalid token")
			return
		}

		c.Set(SubjectKey, claims.Subject)
		if claims.IssuedAt != nil {
			c.Set("token_issued_at", claims.IssuedAt.Time)
		}
		c.Next()
	}
}
