package docstore

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification indicates whether a failed store operation should be
// retried or abandoned.
type ErrorClassification int

const (
	// NonRetryable is the default for unrecognised errors, constraint
	// violations, and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable covers transient connection loss and transactions rolled
	// back by a serialization conflict or deadlock.
	Retryable
)

// ClassifyError attempts to unwrap err as a *pgconn.PgError and maps the
// PostgreSQL error code to a classification. Non-PostgreSQL errors are
// NonRetryable.
func ClassifyError(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return NonRetryable
	}

	switch pgErr.Code {
	// Class 08 — connection exceptions
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure:
		return Retryable

	// Class 40 — transaction rollback
	case pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected:
		return Retryable

	// Class 57 — operator intervention
	case pgerrcode.CannotConnectNow:
		return Retryable

	// Writers racing to create the same document collide on the primary
	// key; the loser retries and observes the winner's insert.
	case pgerrcode.UniqueViolation:
		return Retryable
	}

	return NonRetryable
}
