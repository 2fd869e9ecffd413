// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roadwatch/roadwatch/internal/adapter"
	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/internal/store"
	"github.com/roadwatch/roadwatch/models"
)

type authService struct {
	provider adapter.IdentityProvider
	index    IdentityIndex
	ledger   LockoutLedger
	sessions store.SessionRepository
	logger   *logger.Logger

	sessionTTL time.Duration
	now        func() time.Time

	mu          sync.Mutex
	state       AuthState
	subscribers map[string]func(AuthState)
}

// NewAuthService builds the login orchestrator. sessionTTL bounds the local
// session lifetime when the provider's ID token carries no usable expiry.
func NewAuthService(
	provider adapter.IdentityProvider,
	index IdentityIndex,
	ledger LockoutLedger,
	sessions store.SessionRepository,
	sessionTTL time.Duration,
	logger *logger.Logger,
) AuthService {
	return &authService{
		provider:    provider,
		index:       index,
		ledger:      ledger,
		sessions:    sessions,
		logger:      logger,
		sessionTTL:  sessionTTL,
		now:         time.Now,
		subscribers: map[string]func(AuthState){},
	}
}

// Login implements [AuthService]. The sequence is strictly ordered:
// PRE_CHECK resolves (or is skipped) before the provider is contacted, and
// POST_CHECK runs on every provider success. At most one ledger mutation
// happens per invocation.
func (a *authService) Login(ctx context.Context, credential, secret string) (models.Session, error) {
	normalized := models.NormalizeCredential(credential)

	// PRE_CHECK: the provider has no concept of the application lockout
	// policy and would happily authenticate a locked account, so a known
	// locked account is rejected before the provider sees the attempt.
	// Every step here is best-effort; any failure falls through to the
	// provider, with POST_CHECK as the backstop.
	knownAccountID := a.index.Lookup(ctx, normalized)
	if knownAccountID != "" {
		record, err := a.ledger.Status(ctx, knownAccountID)
		switch {
		case err != nil:
			a.logger.Warn().Err(err).Str("func", "Login").
				Msg("lockout pre-check unavailable, proceeding to provider")
		case record.Locked():
			a.forceSignOut(ctx)
			return models.Session{}, newLoginError(CodeAccountLocked, nil)
		}
	}

	// AUTHENTICATING
	result, err := a.provider.Authenticate(ctx, normalized, secret)
	switch {
	case err == nil:
	case errors.Is(err, adapter.ErrNetwork):
		// Connectivity problems are never charged as failed attempts.
		return models.Session{}, newLoginError(CodeNetworkError, err)
	case errors.Is(err, adapter.ErrInvalidCredentials):
		return models.Session{}, a.rejectedCredentials(ctx, normalized, knownAccountID, err)
	default:
		return models.Session{}, newLoginError(CodeUnknownError, err)
	}

	// POST_CHECK: a provider-level success does not override an
	// application-level lock.
	a.index.Upsert(ctx, normalized, result.AccountID)

	record, err := a.ledger.Status(ctx, result.AccountID)
	if err != nil {
		return models.Session{}, newLoginError(CodeUnknownError, err)
	}
	if record.Locked() {
		a.forceSignOut(ctx)
		return models.Session{}, newLoginError(CodeAccountLocked, nil)
	}

	if err = a.ledger.RecordSuccess(ctx, result.AccountID); err != nil {
		return models.Session{}, newLoginError(CodeUnknownError, err)
	}

	session := a.buildSession(result)
	if err = a.sessions.Save(ctx, session); err != nil {
		// The local session is disposable derived state; a persistence
		// failure downgrades to "absent after restart", not a failed login.
		a.logger.Err(err).Str("func", "Login").Msg("local session write failed")
	}

	a.publish(AuthState{SignedIn: true, User: session.User})
	return session, nil
}

// rejectedCredentials handles the only branch that may record a failed
// attempt. The attempt is charged only when the credential is independently
// confirmed to exist and resolves to an account id; typos against
// nonexistent accounts never create ledger documents.
func (a *authService) rejectedCredentials(ctx context.Context, normalized, knownAccountID string, cause error) error {
	exists, err := a.provider.CredentialExists(ctx, normalized)
	if err != nil {
		if !errors.Is(err, adapter.ErrLookupUnsupported) {
			a.logger.Warn().Err(err).Str("func", "rejectedCredentials").
				Msg("provider existence check inconclusive, falling back to identity index")
		}
		exists = knownAccountID != "" || a.index.Lookup(ctx, normalized) != ""
	}
	if !exists {
		return newLoginError(CodeInvalidCredentials, cause)
	}

	accountID := knownAccountID
	if accountID == "" {
		accountID = a.index.Lookup(ctx, normalized)
	}
	if accountID == "" {
		// Existence confirmed but no account id resolvable: the attempt
		// cannot be attributed, so no ledger write and no attempt count
		// for the UI.
		return newLoginError(CodeInvalidCredentials, cause)
	}

	result, err := a.ledger.RecordFailure(ctx, accountID)
	if err != nil {
		return newLoginError(CodeUnknownError, err)
	}
	if result.Locked {
		a.forceSignOut(ctx)
		return newLoginError(CodeAccountLocked, cause)
	}

	remaining := result.RemainingAttempts
	return &LoginError{Code: CodeInvalidCredentials, RemainingAttempts: &remaining, Err: cause}
}

// Logout implements [AuthService]. The remote sign-out is best-effort; the
// local session is cleared regardless.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.provider.SignOut(ctx); err != nil {
		a.logger.Warn().Err(err).Str("func", "Logout").
			Msg("remote sign-out failed, clearing local session anyway")
	}
	err := a.sessions.Clear(ctx)
	a.publish(AuthState{})
	return err
}

// Session implements [AuthService]. An expired session is cleared and
// reported as absent.
func (a *authService) Session(ctx context.Context) (models.Session, error) {
	session, err := a.sessions.Get(ctx)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.Session{}, ErrNoSession
		}
		return models.Session{}, err
	}
	if session.Expired(a.now()) {
		_ = a.sessions.Clear(ctx)
		a.publish(AuthState{})
		return models.Session{}, ErrNoSession
	}
	a.publish(AuthState{SignedIn: true, User: session.User})
	return session, nil
}

// SubscribeAuthState implements [AuthService].
func (a *authService) SubscribeAuthState(cb func(AuthState)) func() {
	a.mu.Lock()
	id := uuid.NewString()
	a.subscribers[id] = cb
	current := a.state
	a.mu.Unlock()

	cb(current)

	return func() {
		a.mu.Lock()
		delete(a.subscribers, id)
		a.mu.Unlock()
	}
}

// forceSignOut is the lock-path teardown: best-effort provider sign-out,
// unconditional local session clear, signed-out state published. Its own
// failures never mask the LOCKED result.
func (a *authService) forceSignOut(ctx context.Context) {
	if err := a.provider.SignOut(ctx); err != nil {
		a.logger.Warn().Err(err).Str("func", "forceSignOut").
			Msg("provider sign-out failed on locked account")
	}
	if err := a.sessions.Clear(ctx); err != nil {
		a.logger.Warn().Err(err).Str("func", "forceSignOut").
			Msg("local session clear failed on locked account")
	}
	a.publish(AuthState{})
}

func (a *authService) buildSession(result adapter.AuthResult) models.Session {
	now := a.now()
	expiresAt := result.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = now.Add(a.sessionTTL)
	}
	return models.Session{
		Token:     result.AccountID,
		ExpiresAt: expiresAt,
		User: models.SessionUser{
			AccountID: result.AccountID,
			Email:     result.Email,
			Name:      result.Name,
		},
	}
}

func (a *authService) publish(state AuthState) {
	a.mu.Lock()
	changed := a.state != state
	a.state = state
	callbacks := make([]func(AuthState), 0, len(a.subscribers))
	for _, cb := range a.subscribers {
		callbacks = append(callbacks, cb)
	}
	a.mu.Unlock()

	if !changed {
		return
	}
	for _, cb := range callbacks {
		cb(state)
	}
}
