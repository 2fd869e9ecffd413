package models

import "time"

// LockThreshold is the number of consecutive failed login attempts after
// which an account is locked.
const LockThreshold = 3

// LockStatus is the derived state of a lockout record.
type LockStatus string

const (
	// LockStatusActive means the account may attempt to authenticate.
	LockStatusActive LockStatus = "active"
	// LockStatusLocked means the account has reached [LockThreshold]
	// consecutive failures and must be unlocked by staff.
	LockStatusLocked LockStatus = "locked"
)

// LockoutRecord is the per-account document tracked by the lockout ledger.
// The record is created lazily on the first recorded attempt and is only
// ever mutated through the remote store's atomic transaction primitive.
type LockoutRecord struct {
	// AccountID is the provider-assigned account identifier, primary key.
	AccountID string `json:"account_id"`

	// Status is derived: locked iff ConsecutiveFailedAttempts >= LockThreshold.
	Status LockStatus `json:"status"`

	// ConsecutiveFailedAttempts is reset to zero only by a successful
	// authentication. Never negative.
	ConsecutiveFailedAttempts int `json:"consecutive_failed_attempts"`

	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	LastAttemptAt time.Time `json:"last_attempt_at"`
}

// Locked reports whether the record's status is [LockStatusLocked].
func (r LockoutRecord) Locked() bool {
	return r.Status == LockStatusLocked
}

// FailureResult is what a recorded failed attempt yields, computed inside
// the same transaction that persisted the increment so the caller sees a
// value consistent with what was durably written.
type FailureResult struct {
	// Locked is true when this failure reached the lock threshold.
	Locked bool

	// RemainingAttempts is how many further failures the account can absorb
	// before locking: max(0, LockThreshold - newCount).
	RemainingAttempts int
}
