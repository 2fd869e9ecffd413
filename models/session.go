package models

import "time"

// SessionUser is the denormalized display descriptor stored alongside the
// session so the UI can render the signed-in user without a remote read.
type SessionUser struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
}

// Session is the device-local login session. It is a cache, not a security
// boundary: the identity provider's own session is the real credential, and
// the local record is safe to wipe at any time.
type Session struct {
	// Token is an opaque string identifying the session. In this system it
	// is the account identifier itself, not a cryptographic credential.
	Token string `json:"token"`

	// ExpiresAt is the device-local expiry time.
	ExpiresAt time.Time `json:"expires_at"`

	// User describes the signed-in account for display purposes.
	User SessionUser `json:"user"`
}

// Expired reports whether the session has passed its device-local expiry.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
