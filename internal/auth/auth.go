// Package auth implements bearer-token authentication and the shared
// ownership guard used by every mutation handler.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gigboard/marketplace-service/internal/model"
)

const tokenTTL = 72 * time.Hour

// Auth issues and verifies HS256 bearer tokens.
type Auth struct {
	secret []byte
}

// New returns an Auth signing with the given secret.
func New(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

// IssueToken signs a token whose subject is the user id.
func (a *Auth) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a token, returning the user id it carries.
func (a *Auth) VerifyToken(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return "", model.ErrUnauthorized
	}
	if claims.Subject == "" {
		return "", model.ErrUnauthorized
	}
	return claims.Subject, nil
}

// RequireOwner is the single ownership check for jobs, comments and replies:
// the stored owner/author id must match the caller's id.
func RequireOwner(ownerID, callerID string) error {
	if ownerID != callerID {
		return model.ErrForbidden
	}
	return nil
}
