// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/roadwatch/roadwatch/internal/docstore"
	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/models"
)

// collectionLoginAttempts holds one lockout document per account.
const collectionLoginAttempts = "login_attempts"

type lockoutLedger struct {
	remote docstore.Store
	logger *logger.Logger
}

// NewLockoutLedger builds the failed-attempt ledger over the shared remote
// store. Every mutation goes through the store's transaction primitive so
// two devices incrementing the same counter are linearized by the store,
// never lost to a read-then-write race.
func NewLockoutLedger(remote docstore.Store, logger *logger.Logger) LockoutLedger {
	return &lockoutLedger{remote: remote, logger: logger}
}

// RecordSuccess implements [LockoutLedger]. Resetting an already-active
// account is a merge of the same values, so the call is idempotent.
func (l *lockoutLedger) RecordSuccess(ctx context.Context, accountID string) error {
	err := l.remote.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		doc, err := tx.Get(ctx, collectionLoginAttempts, accountID)
		if err != nil && !errors.Is(err, docstore.ErrNotFound) {
			return err
		}

		update := docstore.Document{
			"account_id":                  accountID,
			"status":                      string(models.LockStatusActive),
			"consecutive_failed_attempts": 0,
			"updated_at":                  docstore.ServerTimestamp,
			"last_attempt_at":             docstore.ServerTimestamp,
		}
		if doc == nil {
			update["created_at"] = docstore.ServerTimestamp
		}
		return tx.Set(ctx, collectionLoginAttempts, accountID, update)
	})
	if err != nil {
		l.logger.Err(err).Str("func", "RecordSuccess").Str("account_id", accountID).
			Msg("lockout ledger reset failed")
		return fmt.Errorf("record login success for %s: %w", accountID, err)
	}
	return nil
}

// RecordFailure implements [LockoutLedger]. The new count, the lock decision
// and the remaining attempts are all derived from the value read inside the
// transaction, so the caller always sees a result consistent with what was
// durably written.
func (l *lockoutLedger) RecordFailure(ctx context.Context, accountID string) (models.FailureResult, error) {
	var result models.FailureResult

	err := l.remote.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		doc, err := tx.Get(ctx, collectionLoginAttempts, accountID)
		if err != nil && !errors.Is(err, docstore.ErrNotFound) {
			return err
		}

		next := documentAttempts(doc) + 1
		status := models.LockStatusActive
		if next >= models.LockThreshold {
			status = models.LockStatusLocked
		}

		remaining := models.LockThreshold - next
		if remaining < 0 {
			remaining = 0
		}
		result = models.FailureResult{
			Locked:            status == models.LockStatusLocked,
			RemainingAttempts: remaining,
		}

		update := docstore.Document{
			"account_id":                  accountID,
			"status":                      string(status),
			"consecutive_failed_attempts": next,
			"updated_at":                  docstore.ServerTimestamp,
			"last_attempt_at":             docstore.ServerTimestamp,
		}
		if doc == nil {
			update["created_at"] = docstore.ServerTimestamp
		}
		return tx.Set(ctx, collectionLoginAttempts, accountID, update)
	})
	if err != nil {
		l.logger.Err(err).Str("func", "RecordFailure").Str("account_id", accountID).
			Msg("lockout ledger increment failed")
		return models.FailureResult{}, fmt.Errorf("record login failure for %s: %w", accountID, err)
	}
	return result, nil
}

// Status implements [LockoutLedger]. A missing document reads as an active
// account with zero failures, so first-time users need no provisioning.
func (l *lockoutLedger) Status(ctx context.Context, accountID string) (models.LockoutRecord, error) {
	doc, err := l.remote.Get(ctx, collectionLoginAttempts, accountID)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.LockoutRecord{
			AccountID: accountID,
			Status:    models.LockStatusActive,
		}, nil
	}
	if err != nil {
		return models.LockoutRecord{}, fmt.Errorf("read lockout status for %s: %w", accountID, err)
	}
	return decodeLockoutRecord(accountID, doc), nil
}

func decodeLockoutRecord(accountID string, doc docstore.Document) models.LockoutRecord {
	record := models.LockoutRecord{
		AccountID:                 accountID,
		Status:                    models.LockStatusActive,
		ConsecutiveFailedAttempts: documentAttempts(doc),
		CreatedAt:                 docstore.ParseTime(doc["created_at"]),
		UpdatedAt:                 docstore.ParseTime(doc["updated_at"]),
		LastAttemptAt:             docstore.ParseTime(doc["last_attempt_at"]),
	}
	if status, ok := doc["status"].(string); ok && models.LockStatus(status) == models.LockStatusLocked {
		record.Status = models.LockStatusLocked
	}
	return record
}

// documentAttempts reads the failure counter tolerating both the int the
// memory store keeps and the float64/json.Number a decoded wire document
// carries. Nil or malformed reads as zero.
func documentAttempts(doc docstore.Document) int {
	if doc == nil {
		return 0
	}
	switch v := doc["consecutive_failed_attempts"].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
