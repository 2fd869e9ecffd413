// Package adapter holds the client-side adapters for external services,
// currently the remote identity provider's REST API.
package adapter

import (
	"context"
	"time"
)

// AuthResult is what a successful authentication yields.
type AuthResult struct {
	// AccountID is the provider-assigned stable account identifier.
	AccountID string

	// Email is the account email as the provider knows it.
	Email string

	// Name is the display name when the provider carries one.
	Name string

	// ExpiresAt is the provider session expiry derived from the ID token,
	// zero when the token carries no usable expiry.
	ExpiresAt time.Time
}

// IdentityProvider is the remote identity provider consumed by the login
// orchestrator. It verifies credentials and owns the real (server-side)
// session; the provider has no concept of this application's lockout policy.
//
// Error classes returned by Authenticate:
//   - [ErrNetwork] — connectivity failure, the attempt must not be charged;
//   - [ErrInvalidCredentials] — wrong secret, unknown account, or malformed
//     email, collapsed into one category;
//   - anything else — an unrecognized provider failure.
type IdentityProvider interface {
	// Authenticate verifies the credential/secret pair.
	Authenticate(ctx context.Context, credential, secret string) (AuthResult, error)

	// CredentialExists reports whether the credential is registered with the
	// provider, independently of authenticating it. Returns
	// [ErrLookupUnsupported] when the provider build does not expose the
	// capability; callers fall back to the identity index.
	CredentialExists(ctx context.Context, credential string) (bool, error)

	// SignOut invalidates the provider-side session, if any.
	SignOut(ctx context.Context) error

	// CurrentAccountID returns the account id of the currently authenticated
	// provider session, or an empty string when signed out.
	CurrentAccountID() string
}
