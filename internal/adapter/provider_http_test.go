package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadwatch/roadwatch/internal/config"
	"github.com/roadwatch/roadwatch/internal/logger"
)

func newTestProvider(t *testing.T, handler http.Handler) (IdentityProvider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider, err := NewHTTPIdentityProvider(config.Provider{
		BaseURL:        srv.URL,
		APIKey:         "test-key",
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	return provider, srv
}

func testIDToken(t *testing.T, accountID, email string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": accountID, "email": email}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("provider-key"))
	require.NoError(t, err)
	return token
}

func TestAuthenticate_Success(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	idToken := testIDToken(t, "acc-42", "user@example.com", exp)

	provider, _ := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/sessions", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user@example.com", body["email"], "credential must be normalized")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id_token": idToken})
	}))

	result, err := provider.Authenticate(context.Background(), "  User@Example.COM ", "secret")

	require.NoError(t, err)
	assert.Equal(t, "acc-42", result.AccountID)
	assert.Equal(t, "user@example.com", result.Email)
	assert.True(t, result.ExpiresAt.Equal(exp))
	assert.Equal(t, "acc-42", provider.CurrentAccountID())
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound} {
		provider, _ := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", status)
		}))

		_, err := provider.Authenticate(context.Background(), "user@example.com", "wrong")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCredentials, "status %d", status)
		assert.Empty(t, provider.CurrentAccountID())
	}
}

func TestAuthenticate_NetworkFailure(t *testing.T) {
	provider, srv := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from now on

	_, err := provider.Authenticate(context.Background(), "user@example.com", "secret")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestAuthenticate_UnrecognizedStatus(t *testing.T) {
	provider, _ := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))

	_, err := provider.Authenticate(context.Background(), "user@example.com", "secret")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrNetwork)
}

func TestCredentialExists(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		want       bool
		wantErr    error
		wantNilErr bool
	}{
		{name: "registered", status: http.StatusOK, body: `{"registered": true}`, want: true, wantNilErr: true},
		{name: "not registered", status: http.StatusOK, body: `{"registered": false}`, want: false, wantNilErr: true},
		{name: "not found means unregistered", status: http.StatusNotFound, body: "", want: false, wantNilErr: true},
		{name: "unsupported", status: http.StatusNotImplemented, body: "", wantErr: ErrLookupUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, _ := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/v1/accounts/lookup", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			got, err := provider.CredentialExists(context.Background(), "user@example.com")

			if tt.wantNilErr {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSignOut_ClearsLocalStateEvenOnFailure(t *testing.T) {
	calls := 0
	provider, _ := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/sessions" {
			idToken := testIDToken(t, "acc-42", "user@example.com", time.Now().Add(time.Hour))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"id_token": idToken})
			return
		}
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := provider.Authenticate(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)

	err = provider.SignOut(context.Background())

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, provider.CurrentAccountID(), "local token cleared despite remote failure")

	// Second sign-out is a no-op: no token left to revoke.
	require.NoError(t, provider.SignOut(context.Background()))
	assert.Equal(t, 1, calls)
}
