package service

import (
	"context"

	"github.com/roadwatch/roadwatch/internal/docstore"
	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/internal/store"
)

const (
	// collectionPushTokens holds one document per account with the device
	// tokens used for staff notifications.
	collectionPushTokens = "push_tokens"

	// pushTokenKey is the local kv key remembering the last forwarded token.
	pushTokenKey = "push_token"
)

type pushTokenService struct {
	remote   docstore.Store
	kv       store.KVRepository
	sessions store.SessionRepository
	logger   *logger.Logger
}

// NewPushTokenService builds the store-then-forward push-token fan-out.
func NewPushTokenService(remote docstore.Store, kv store.KVRepository, sessions store.SessionRepository, logger *logger.Logger) PushTokenService {
	return &pushTokenService{remote: remote, kv: kv, sessions: sessions, logger: logger}
}

// Register implements [PushTokenService]. The token is persisted locally
// first; the remote write is skipped when the token is unchanged and only
// attempted when a session identifies the account. Nothing here escalates:
// a push token the backend never learns about costs a notification, not a
// login.
func (p *pushTokenService) Register(ctx context.Context, token string) {
	if token == "" {
		return
	}

	previous, err := p.kv.Get(ctx, pushTokenKey)
	if err == nil && previous == token {
		return
	}

	if err = p.kv.Set(ctx, pushTokenKey, token); err != nil {
		p.logger.Warn().Err(err).Str("func", "Register").
			Msg("push token local write failed")
	}

	session, err := p.sessions.Get(ctx)
	if err != nil {
		p.logger.Debug().Str("func", "Register").
			Msg("no session, push token kept local only")
		return
	}

	doc := docstore.Document{
		"token":      token,
		"updated_at": docstore.ServerTimestamp,
	}
	if err = p.remote.MergeSet(ctx, collectionPushTokens, session.User.AccountID, doc); err != nil {
		p.logger.Warn().Err(err).Str("func", "Register").
			Msg("push token forward failed, will retry on next registration")
	}
}
