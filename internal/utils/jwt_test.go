package utils

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestParseIDToken_AllClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := signedToken(t, jwt.MapClaims{
		"sub":   "acc-42",
		"email": "user@example.com",
		"name":  "Test User",
		"exp":   exp.Unix(),
	})

	claims, err := ParseIDToken(raw)

	require.NoError(t, err)
	assert.Equal(t, "acc-42", claims.AccountID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "Test User", claims.Name)
	assert.True(t, claims.ExpiresAt.Equal(exp))
}

func TestParseIDToken_NoExpiry(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{"sub": "acc-42"})

	claims, err := ParseIDToken(raw)

	require.NoError(t, err)
	assert.Equal(t, "acc-42", claims.AccountID)
	assert.True(t, claims.ExpiresAt.IsZero())
}

func TestParseIDToken_MissingSubject(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{"email": "user@example.com"})

	_, err := ParseIDToken(raw)

	require.Error(t, err)
}

func TestParseIDToken_Garbage(t *testing.T) {
	_, err := ParseIDToken("not-a-jwt")
	require.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ParseBearerToken("abc.def.ghi")
	require.Error(t, err)

	_, err = ParseBearerToken("Bearer ")
	require.Error(t, err)
}

func TestGetAccountIDFromContext(t *testing.T) {
	ctx := WithAccountID(context.Background(), "acc-42")

	got, ok := GetAccountIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "acc-42", got)

	_, ok = GetAccountIDFromContext(context.Background())
	assert.False(t, ok)
}
