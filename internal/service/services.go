package service

import (
	"time"

	"github.com/roadwatch/roadwatch/internal/adapter"
	"github.com/roadwatch/roadwatch/internal/docstore"
	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/internal/store"
)

// Services is the assembled client core handed to the façade and workers.
type Services struct {
	Auth      AuthService
	Sync      SyncService
	PushToken PushTokenService
	Index     IdentityIndex
	Ledger    LockoutLedger
}

// NewServices wires the service layer over the remote store, the identity
// provider and the local cache.
func NewServices(
	remote docstore.Store,
	provider adapter.IdentityProvider,
	storages *store.ClientStorages,
	sessionTTL time.Duration,
	logger *logger.Logger,
) *Services {
	index := NewIdentityIndex(remote, logger)
	ledger := NewLockoutLedger(remote, logger)

	return &Services{
		Auth:      NewAuthService(provider, index, ledger, storages.Session, sessionTTL, logger),
		Sync:      NewSyncService(remote, storages.Reports, logger),
		PushToken: NewPushTokenService(remote, storages.KV, storages.Session, logger),
		Index:     index,
		Ledger:    ledger,
	}
}
