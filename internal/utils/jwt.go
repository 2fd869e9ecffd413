package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IDTokenClaims is the subset of provider ID-token claims the client cares
// about. The token is parsed without signature verification: the provider
// verifies its own tokens server-side, and the client only reads display
// data and the expiry from it.
type IDTokenClaims struct {
	// AccountID is the "sub" claim — the provider-assigned account id.
	AccountID string

	// Email is the "email" claim when present.
	Email string

	// Name is the "name" claim when present.
	Name string

	// ExpiresAt is the "exp" claim; zero when the token carries none.
	ExpiresAt time.Time
}

type idTokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// ParseIDToken extracts [IDTokenClaims] from a compact JWS string without
// verifying the signature.
//
// Returns an error if the token cannot be parsed or carries no subject.
func ParseIDToken(tokenString string) (IDTokenClaims, error) {
	var claims idTokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return IDTokenClaims{}, fmt.Errorf("error parsing ID token: %w", err)
	}

	if claims.Subject == "" {
		return IDTokenClaims{}, errors.New("ID token carries no subject claim")
	}

	out := IDTokenClaims{
		AccountID: claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}

	return out, nil
}

// ParseBearerToken extracts the token part of an "Authorization: Bearer ..."
// header value.
func ParseBearerToken(header string) (string, error) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return "", errors.New("malformed Authorization header")
	}
	return header[len(prefix):], nil
}
