package store

import (
	"context"

	"github.com/roadwatch/roadwatch/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KVRepository is the low-level local key-value storage. Values are opaque
// strings; callers own the serialization.
type KVRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// ReportRepository persists the report snapshot produced by the sync engine.
// ReplaceAll overwrites the whole snapshot; the local cache is derived state
// and is never merged.
type ReportRepository interface {
	ReplaceAll(ctx context.Context, reports []models.Report) error
	GetAll(ctx context.Context) ([]models.Report, error)
	GetFiltered(ctx context.Context, category, status string) ([]models.Report, error)
}

// SessionRepository is the durable store of the device's current session.
type SessionRepository interface {
	// Save persists the session, replacing any previous one.
	Save(ctx context.Context, session models.Session) error
	// Get returns the stored session or [ErrSessionNotFound]. Corrupt or
	// unreadable content is reported as absence, not as an error.
	Get(ctx context.Context) (models.Session, error)
	// Clear removes the stored session. Clearing an absent session is a no-op.
	Clear(ctx context.Context) error
}
