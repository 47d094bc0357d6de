// Package security provides JWT session token utilities
package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidToken is returned when a session token fails validation.
var ErrInvalidToken = errors.New("invalid session token")

// GenerateSessionToken creates a signed token carrying a session identifier.
// The token is a transport handle for the in-memory session, not an
// authentication credential: anyone may log in with a name and location.
func GenerateSessionToken(sessionID, jwtSecret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sessionId": sessionID,
		"iat":       time.Now().UTC().Unix(),
		"exp":       time.Now().UTC().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// SessionIDFromToken validates a session token and extracts the session ID.
func SessionIDFromToken(tokenString, jwtSecret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	sessionID, ok := claims["sessionId"].(string)
	if !ok || sessionID == "" {
		return "", ErrInvalidToken
	}

	return sessionID, nil
}
