package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roadwatch/roadwatch/internal/logger"
)

type kvRepository struct {
	*DB
	logger *logger.Logger
}

func NewKVRepository(db *DB, logger *logger.Logger) KVRepository {
	return &kvRepository{DB: db, logger: logger}
}

func (r *kvRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.DB.QueryRowContext(ctx, getKV, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", key, ErrKeyNotFound)
	}
	if err != nil {
		r.logger.Err(err).Str("key", key).Msg("failed to read local kv entry")
		return "", fmt.Errorf("failed to read local kv entry %s: %w", key, err)
	}
	return value, nil
}

func (r *kvRepository) Set(ctx context.Context, key, value string) error {
	if _, err := r.DB.ExecContext(ctx, setKV, key, value); err != nil {
		r.logger.Err(err).Str("key", key).Msg("failed to write local kv entry")
		return fmt.Errorf("failed to write local kv entry %s: %w", key, err)
	}
	return nil
}

func (r *kvRepository) Remove(ctx context.Context, key string) error {
	if _, err := r.DB.ExecContext(ctx, removeKV, key); err != nil {
		r.logger.Err(err).Str("key", key).Msg("failed to remove local kv entry")
		return fmt.Errorf("failed to remove local kv entry %s: %w", key, err)
	}
	return nil
}
