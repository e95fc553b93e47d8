package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// WellFormed reports whether token has the header.payload.signature shape.
// The signature is not checked; that is the backend's job.
func WellFormed(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}

// checkPersisted classifies a stored token. Tokens whose claims cannot be
// decoded, or that carry no exp, are accepted as long as they are well formed.
func checkPersisted(token string, now time.Time) error {
	if !WellFormed(token) {
		return ErrMalformedPersistedToken
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	if claims.ExpiresAt != nil && !claims.ExpiresAt.Time.After(now) {
		return ErrPersistedTokenExpired
	}
	return nil
}
