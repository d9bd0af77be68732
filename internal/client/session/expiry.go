package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry returns the moment c stops being valid. ok is false for a session
// cookie whose value carries no readable "exp" claim.
func Expiry(c *http.Cookie) (t time.Time, ok bool) {
	if c == nil {
		return time.Time{}, false
	}
	if !c.Expires.IsZero() {
		return c.Expires, true
	}
	return tokenExpiry(c.Value)
}

func tokenExpiry(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(value, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
