package store

import (
	"context"
	"fmt"

	"github.com/roadwatch/roadwatch/internal/config"
	"github.com/roadwatch/roadwatch/internal/logger"
)

// ClientStorages groups all device-local repositories into a single value
// passed to the service layer.
type ClientStorages struct {
	// KV is the generic key-value storage (push token, misc device state).
	KV KVRepository

	// Reports is the persisted report snapshot maintained by the sync engine.
	Reports ReportRepository

	// Session is the durable device session record.
	Session SessionRepository
}

// NewClientStorages initialises the local cache. It opens the SQLite file
// (creating it when absent), runs pending schema migrations, and wires the
// repositories.
func NewClientStorages(cfg config.Storage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	kv := NewKVRepository(db, logger)
	return &ClientStorages{
		KV:      kv,
		Reports: NewReportRepository(db, logger),
		Session: NewSessionRepository(kv, logger),
	}, nil
}
