package service

import (
	"errors"
	"fmt"
)

// LoginCode is the terminal classification of one login attempt.
type LoginCode string

const (
	// CodeNetworkError — connectivity failure; the attempt is never charged.
	CodeNetworkError LoginCode = "NETWORK_ERROR"
	// CodeInvalidCredentials — wrong secret, unknown account or malformed
	// email, collapsed into one category.
	CodeInvalidCredentials LoginCode = "INVALID_CREDENTIALS"
	// CodeAccountLocked — application-level lock; always accompanied by a
	// forced local sign-out.
	CodeAccountLocked LoginCode = "ACCOUNT_LOCKED"
	// CodeUnknownError — unrecognized provider or ledger failure.
	CodeUnknownError LoginCode = "UNKNOWN_ERROR"
)

// LoginError is the typed failure returned by the login orchestrator.
type LoginError struct {
	Code LoginCode

	// RemainingAttempts is set only on INVALID_CREDENTIALS results where the
	// failed attempt was attributed to a concrete account. Nil means the UI
	// must not claim a specific number.
	RemainingAttempts *int

	// Err is the underlying cause, when one exists.
	Err error
}

func (e *LoginError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("login failed: %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("login failed: %s", e.Code)
}

func (e *LoginError) Unwrap() error { return e.Err }

// AsLoginError extracts a *LoginError from an error chain.
func AsLoginError(err error) (*LoginError, bool) {
	var loginErr *LoginError
	ok := errors.As(err, &loginErr)
	return loginErr, ok
}

func newLoginError(code LoginCode, err error) *LoginError {
	return &LoginError{Code: code, Err: err}
}

var (
	// ErrNoSession is returned when an operation needs a signed-in session
	// and none exists.
	ErrNoSession = errors.New("no active session")
)
