// Package middleware provides HTTP middleware for the presentation layer.
package middleware

import (
	"net/http"

	"github.com/Engnr-Qasim/dreamers-app/internal/application/services"
	"github.com/Engnr-Qasim/dreamers-app/internal/domain/session"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/security"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/state"
	"github.com/Engnr-Qasim/dreamers-app/pkg/config"
	"github.com/gin-gonic/gin"
)

const sessionContextKey = "session"

// SessionMiddleware resolves the bearer token into an active session and
// rejects the request when none can be found. Gated sections of the app
// sit behind this middleware.
func SessionMiddleware(sessions *state.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := resolveSession(c, sessions)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":    services.LoginRequiredNotice,
				"redirect": string(session.ScreenLogin),
			})
			c.Abort()
			return
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// OptionalSessionMiddleware resolves the bearer token when one is present
// but never rejects the request. Navigation uses this so logged-out users
// still receive the redirect-to-login resolution instead of a bare 401.
func OptionalSessionMiddleware(sessions *state.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, ok := resolveSession(c, sessions); ok {
			c.Set(sessionContextKey, sess)
		}
		c.Next()
	}
}

func resolveSession(c *gin.Context, sessions *state.SessionStore) (*session.Session, bool) {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
		return nil, false
	}

	sessionID, err := security.SessionIDFromToken(authHeader[7:], config.JWTSecret)
	if err != nil {
		return nil, false
	}

	return sessions.Get(sessionID)
}

// GetSession retrieves the resolved session from the gin context.
func GetSession(c *gin.Context) (*session.Session, bool) {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, false
	}
	sess, ok := value.(*session.Session)
	return sess, ok
}
