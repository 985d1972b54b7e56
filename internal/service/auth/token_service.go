// Package auth provides token issuance/verification and password hashing
// for the API's authentication pipeline.
package auth

import (
	"context"
	"time"
)

// TokenService defines operations for managing JWT authentication tokens.
type TokenService interface {
	// GenerateToken creates a signed JWT access token for the user.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, userID string) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns ErrExpiredToken, ErrTokenNotYetValid, or
	// ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated claims of an access token.
type Claims struct {
	// UserID is the store reference of the user the token was issued for.
	UserID string

	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
