// internal/interfaces/http/middleware/admin.go
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

const AdminUserKey = "admin_username"

// TokenValidator checks admin bearer tokens
type TokenValidator interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
}

// AdminFlag reads the session's admin flag
type AdminFlag interface {
	IsAdmin(ctx context.Context, session string) (bool, error)
}

// AdminGate admits requests carrying a valid admin token or, unless
// tokenOnly is set, a session whose admin flag is raised
func AdminGate(tokens TokenValidator, flag AdminFlag, tokenOnly bool, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			token := auth.ExtractTokenFromHeader(header)
			claims, err := tokens.ValidateAccessToken(token)
			if token == "" || err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid or expired token",
				})
				return
			}
			c.Set(AdminUserKey, claims.Username)
			c.Next()
			return
		}

		if tokenOnly {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			return
		}

		ok, err := flag.IsAdmin(c.Request.Context(), SessionID(c))
		if err != nil {
			log.WithError(err).Error("failed to read admin flag")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Admin login required",
			})
			return
		}

		c.Next()
	}
}
