// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"

	"github.com/roadwatch/roadwatch/internal/docstore"
	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/models"
)

// collectionIdentityIndex holds one document per normalized credential.
const collectionIdentityIndex = "identity_index"

type identityIndex struct {
	remote docstore.Store
	logger *logger.Logger
}

// NewIdentityIndex builds the credential → account-id index over the shared
// remote store.
func NewIdentityIndex(remote docstore.Store, logger *logger.Logger) IdentityIndex {
	return &identityIndex{remote: remote, logger: logger}
}

// Upsert implements [IdentityIndex]. The write is opportunistic: it runs on
// every successful login so the index heals itself over time, and a failure
// must never surface to the login flow.
func (i *identityIndex) Upsert(ctx context.Context, credential, accountID string) {
	normalized := models.NormalizeCredential(credential)
	if normalized == "" || accountID == "" {
		return
	}

	doc := docstore.Document{
		"account_id": accountID,
		"updated_at": docstore.ServerTimestamp,
	}
	if err := i.remote.MergeSet(ctx, collectionIdentityIndex, normalized, doc); err != nil {
		i.logger.Err(err).Str("func", "Upsert").Str("credential", normalized).
			Msg("identity index upsert failed, continuing")
	}
}

// Lookup implements [IdentityIndex]. Absence and read failure both return
// "": a transient remote outage can therefore under-attribute failed
// attempts, which is accepted over blocking the login flow on the index.
func (i *identityIndex) Lookup(ctx context.Context, credential string) string {
	normalized := models.NormalizeCredential(credential)
	if normalized == "" {
		return ""
	}

	doc, err := i.remote.Get(ctx, collectionIdentityIndex, normalized)
	if err != nil {
		if !errors.Is(err, docstore.ErrNotFound) {
			i.logger.Warn().Err(err).Str("func", "Lookup").
				Msg("identity index read failed, treating as absent")
		}
		return ""
	}

	accountID, _ := doc["account_id"].(string)
	return accountID
}
