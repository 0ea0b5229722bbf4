package redis_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jhoicas/avatax-connector/internal/infrastructure/redis"
	"github.com/jhoicas/avatax-connector/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requiere un Redis real: REDIS_TEST_ADDR=localhost:6379 go test ./internal/infrastructure/redis/...
func newStore(t *testing.T) *redis.ErrorFlagStore {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR no definido")
	}
	client, err := redis.NewClient(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewErrorFlagStore(client)
}

func TestErrorFlagStore_RaiseClear(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	storeID := "test-" + uuid.NewString()

	raised, err := store.IsRaised(ctx, storeID)
	require.NoError(t, err)
	assert.False(t, raised)

	require.NoError(t, store.Raise(ctx, storeID))
	require.NoError(t, store.Raise(ctx, storeID))
	raised, err = store.IsRaised(ctx, storeID)
	require.NoError(t, err)
	assert.True(t, raised)

	cleared, err := store.Clear(ctx, storeID)
	require.NoError(t, err)
	assert.True(t, cleared)

	cleared, err = store.Clear(ctx, storeID)
	require.NoError(t, err)
	assert.False(t, cleared, "segundo Clear no borra nada")
}

func TestErrorFlagStore_NilClient(t *testing.T) {
	var store *redis.ErrorFlagStore
	ctx := context.Background()
	assert.Error(t, store.Raise(ctx, "s"))
	_, err := store.Clear(ctx, "s")
	assert.Error(t, err)
	_, err = store.IsRaised(ctx, "s")
	assert.Error(t, err)
}
