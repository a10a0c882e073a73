package delivery

import (
	"strings"

	"blog-backend/internal/auth/usecase"
	"blog-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware extracts the bearer token, verifies it, and resolves it to a
// live user. The resolved identity is attached to the context; the password
// hash never leaves the domain struct's json:"-" field. Exactly one user
// lookup per request, no caching.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Error(apperror.NewAuthentication("Not authorized, no token provided."))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Error(apperror.NewAuthentication("Invalid authorization header format."))
			c.Abort()
			return
		}

		user, err := authUsecase.ResolveUser(parts[1])
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}
