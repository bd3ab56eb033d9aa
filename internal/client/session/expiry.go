package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// The client cannot verify it and only uses the value for display. ok is false
// when token is not a JWT or carries no expiry.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expiry returns the expiry of the persisted token, if it has one.
func (s *Session) Expiry(ctx context.Context) (time.Time, bool) {
	token, err := s.tokens.Token(ctx)
	if err != nil || token == "" {
		return time.Time{}, false
	}
	return TokenExpiry(token)
}
