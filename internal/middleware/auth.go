package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/patasfelizes/clinic-api/internal/handler"
	authsvc "github.com/patasfelizes/clinic-api/internal/service/auth"
	"github.com/patasfelizes/clinic-api/pkg/auth"
)

type AuthMiddleware struct {
	authService authsvc.AuthService
}

func NewAuthMiddleware(authService authsvc.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate verifies the bearer token, rejecting revoked or expired
// sessions, and stores the claims in both gin and request contexts.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Request = c.Request.WithContext(auth.ContextWithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Runs after
// Authenticate, which put the claims into the request context.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.ClaimsFromContext(c.Request.Context())
		if !ok {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
			c.Abort()
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, handler.NewErrorResponse("insufficient permissions"))
		c.Abort()
	}
}
