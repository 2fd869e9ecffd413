package models

import (
	"strings"
	"time"
)

// IdentityRecord maps a normalized credential (lowercased email) to the
// stable account identifier assigned by the identity provider. One record
// per credential; refreshed opportunistically on every successful login.
type IdentityRecord struct {
	// Credential is the normalized email, primary key of the index.
	Credential string `json:"credential"`

	// AccountID is the provider-assigned account identifier.
	AccountID string `json:"account_id"`

	// UpdatedAt is the server-assigned write time.
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeCredential trims surrounding whitespace and lowercases the
// user-entered credential. All index reads and writes go through this so
// "User@Example.com " and "user@example.com" resolve to the same record.
func NormalizeCredential(credential string) string {
	return strings.ToLower(strings.TrimSpace(credential))
}
