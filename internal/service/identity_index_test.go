package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadwatch/roadwatch/internal/docstore"
	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/internal/service"
)

func TestIdentityIndex_UpsertThenLookup(t *testing.T) {
	remote := docstore.NewMemoryStore()
	index := service.NewIdentityIndex(remote, logger.Nop())
	ctx := context.Background()

	index.Upsert(ctx, "jane@example.com", "acc-1")

	assert.Equal(t, "acc-1", index.Lookup(ctx, "jane@example.com"))
}

func TestIdentityIndex_NormalizesCredential(t *testing.T) {
	remote := docstore.NewMemoryStore()
	index := service.NewIdentityIndex(remote, logger.Nop())
	ctx := context.Background()

	index.Upsert(ctx, "  Jane@Example.COM ", "acc-1")

	assert.Equal(t, "acc-1", index.Lookup(ctx, "jane@example.com"))
	assert.Equal(t, "acc-1", index.Lookup(ctx, "JANE@EXAMPLE.COM"))
}

func TestIdentityIndex_EmptyArgumentsAreNoOps(t *testing.T) {
	remote := docstore.NewMemoryStore()
	index := service.NewIdentityIndex(remote, logger.Nop())
	ctx := context.Background()

	index.Upsert(ctx, "", "acc-1")
	index.Upsert(ctx, "jane@example.com", "")
	index.Upsert(ctx, "   ", "acc-1")

	docs, err := remote.GetAll(ctx, "identity_index")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestIdentityIndex_LookupAbsentReturnsEmpty(t *testing.T) {
	remote := docstore.NewMemoryStore()
	index := service.NewIdentityIndex(remote, logger.Nop())

	assert.Empty(t, index.Lookup(context.Background(), "nobody@example.com"))
}

func TestIdentityIndex_UpsertOverwritesAccountID(t *testing.T) {
	remote := docstore.NewMemoryStore()
	index := service.NewIdentityIndex(remote, logger.Nop())
	ctx := context.Background()

	index.Upsert(ctx, "jane@example.com", "acc-1")
	index.Upsert(ctx, "jane@example.com", "acc-2")

	assert.Equal(t, "acc-2", index.Lookup(ctx, "jane@example.com"))
}
