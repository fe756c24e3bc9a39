// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "session_id"
	SessionIDKey  = "session_id"
)

// Session resolves the visitor's session from its cookie, minting a new id
// when the cookie is missing or malformed
func Session(ttl time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}

		// Refreshed on every request so active sessions keep sliding
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, int(ttl.Seconds()), "/", "", secure, true)

		c.Set(SessionIDKey, id)
		c.Next()
	}
}

// SessionID returns the session resolved by Session
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
