package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/models"
)

// sessionKey is the kv key holding the serialized device session.
const sessionKey = "session"

type sessionRepository struct {
	kv     KVRepository
	logger *logger.Logger
}

// NewSessionRepository builds a [SessionRepository] on top of the local
// key-value storage.
func NewSessionRepository(kv KVRepository, logger *logger.Logger) SessionRepository {
	return &sessionRepository{kv: kv, logger: logger}
}

// Save implements [SessionRepository].
func (r *sessionRepository) Save(ctx context.Context, session models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err = r.kv.Set(ctx, sessionKey, string(payload)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Get implements [SessionRepository]. Storage failures and corrupt payloads
// both degrade to [ErrSessionNotFound]: a session that cannot be read is a
// session that does not exist, never a crash.
func (r *sessionRepository) Get(ctx context.Context) (models.Session, error) {
	payload, err := r.kv.Get(ctx, sessionKey)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			r.logger.Warn().Err(err).Msg("local session unreadable, treating as absent")
		}
		return models.Session{}, ErrSessionNotFound
	}

	var session models.Session
	if err = json.Unmarshal([]byte(payload), &session); err != nil {
		r.logger.Warn().Err(err).Msg("local session corrupt, clearing")
		_ = r.kv.Remove(ctx, sessionKey)
		return models.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// Clear implements [SessionRepository].
func (r *sessionRepository) Clear(ctx context.Context) error {
	return r.kv.Remove(ctx, sessionKey)
}
