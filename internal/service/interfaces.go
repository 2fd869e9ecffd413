// Package service implements the client core: identity index, lockout
// ledger, login orchestration, differential report sync and best-effort
// push-token fan-out.
package service

import (
	"context"

	"github.com/roadwatch/roadwatch/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// IdentityIndex maps normalized credentials to account identifiers in the
// shared remote store. Writes are best-effort; reads conflate absence with
// transient failure.
type IdentityIndex interface {
	// Upsert merge-writes the credential → accountID mapping. Empty
	// arguments are a silent no-op; write failures are logged and swallowed.
	Upsert(ctx context.Context, credential, accountID string)

	// Lookup resolves the credential to an account id, or "" when the
	// record is absent or the read failed. The two cases are deliberately
	// indistinguishable to the caller.
	Lookup(ctx context.Context, credential string) string
}

// LockoutLedger tracks consecutive failed login attempts per account in the
// shared remote store. All mutations run inside the store's atomic
// read-modify-write transaction; mutation failures propagate (never
// best-effort).
type LockoutLedger interface {
	// RecordSuccess resets the account to active with zero failures.
	// Idempotent.
	RecordSuccess(ctx context.Context, accountID string) error

	// RecordFailure increments the consecutive-failure count and returns
	// whether this failure locked the account, together with the attempts
	// that remain. Both values are computed inside the transaction.
	RecordFailure(ctx context.Context, accountID string) (models.FailureResult, error)

	// Status returns the account's current lockout record. Absence of a
	// ledger document reads as active with zero failures.
	Status(ctx context.Context, accountID string) (models.LockoutRecord, error)
}

// AuthState is a snapshot of the device's auth condition, published to
// subscribers whenever it changes.
type AuthState struct {
	SignedIn bool
	User     models.SessionUser
}

// AuthService is the login orchestrator exposed to the UI layer.
type AuthService interface {
	// Login runs the full pre-check / authenticate / post-check sequence
	// and either persists a local session or returns a *LoginError.
	Login(ctx context.Context, credential, secret string) (models.Session, error)

	// Logout signs out remotely (best-effort) and clears the local session.
	Logout(ctx context.Context) error

	// Session returns the persisted local session or ErrNoSession.
	Session(ctx context.Context) (models.Session, error)

	// SubscribeAuthState registers cb for auth-state changes. cb is invoked
	// immediately with the current state, then on every transition.
	SubscribeAuthState(cb func(AuthState)) (unsubscribe func())
}

// SyncService is the differential report sync engine.
type SyncService interface {
	// FetchAll reads the full remote report collection, persists the
	// snapshot to the local cache and returns it. A malformed document is
	// skipped, never fatal.
	FetchAll(ctx context.Context) ([]models.Report, error)

	// Subscribe opens the live diff stream. onDiffs receives non-empty
	// batches only; onError receives stream failures. The engine does not
	// retry the stream.
	Subscribe(ctx context.Context, onDiffs func([]models.ReportDiff), onError func(error)) (unsubscribe func(), err error)

	// ApplyDiffs folds diffs into current, persists the result to the local
	// cache and returns the new snapshot. Pure with respect to current;
	// idempotent under replay.
	ApplyDiffs(ctx context.Context, current map[string]models.Report, diffs []models.ReportDiff) ([]models.Report, error)

	// CachedReports returns the locally persisted snapshot, optionally
	// filtered by category and status.
	CachedReports(ctx context.Context, category, status string) ([]models.Report, error)
}

// PushTokenService stores the device push token and forwards it to the
// remote store when a session exists. Every failure past local persistence
// is swallowed.
type PushTokenService interface {
	Register(ctx context.Context, token string)
}
