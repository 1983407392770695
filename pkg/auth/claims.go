// Package auth supplies bearer tokens for the Vuet API and refreshes them
// before they expire.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a Vuet access token. Tokens are issued by the
// API itself; the client only reads them to learn the user and the expiry.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int    `json:"user_id"`
	TokenType string `json:"token_type,omitempty"` // "access" or "refresh"
}

// ParseClaims decodes a token without verifying its signature. The API
// verifies tokens on every request, so the client never needs the key.
func ParseClaims(token string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	parsed, _, err := parser.ParseUnverified(token, &Claims{})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("invalid claims type in token")
	}
	return claims, nil
}

// Expiry returns the token expiry, or the zero time when the token has no exp.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
