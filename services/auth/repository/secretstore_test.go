package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquashield/crm/internal/pkg/database"
)

func setupSecretStoreTest(t *testing.T) (*SecretStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := database.NewRedisClientFromClient(redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	}))

	return NewSecretStore(client), mr
}

func TestSecretStoreGet_AbsentKey(t *testing.T) {
	store, _ := setupSecretStoreTest(t)

	value, found, err := store.Get(context.Background(), "otp:nobody")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestSecretStoreSetAndGet(t *testing.T) {
	store, mr := setupSecretStoreTest(t)
	ctx := context.Background()

	require.NoError(t, store.SetWithTTL(ctx, "otp:john", "hashed", 10*time.Minute))

	value, found, err := store.Get(ctx, "otp:john")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "hashed", value)

	mr.FastForward(11 * time.Minute)

	_, found, err = store.Get(ctx, "otp:john")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSecretStoreDelete(t *testing.T) {
	store, _ := setupSecretStoreTest(t)
	ctx := context.Background()

	require.NoError(t, store.SetWithTTL(ctx, "otp:john", "hashed", time.Minute))
	require.NoError(t, store.Delete(ctx, "otp:john"))

	_, found, err := store.Get(ctx, "otp:john")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting an absent key is fine.
	assert.NoError(t, store.Delete(ctx, "otp:john"))
}

func TestSecretStoreIncrementWithTTL(t *testing.T) {
	store, mr := setupSecretStoreTest(t)
	ctx := context.Background()

	count, err := store.IncrementWithTTL(ctx, "throttle:login|john", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// The TTL is attached on creation and survives further increments.
	assert.Equal(t, time.Minute, mr.TTL("throttle:login|john"))

	mr.FastForward(30 * time.Second)

	count, err = store.IncrementWithTTL(ctx, "throttle:login|john", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 30*time.Second, mr.TTL("throttle:login|john"))

	// After expiry the counter restarts.
	mr.FastForward(31 * time.Second)
	count, err = store.IncrementWithTTL(ctx, "throttle:login|john", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSecretStoreTTL(t *testing.T) {
	store, _ := setupSecretStoreTest(t)
	ctx := context.Background()

	require.NoError(t, store.SetWithTTL(ctx, "otp:john", "hashed", 5*time.Minute))

	ttl, err := store.TTL(ctx, "otp:john")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, ttl)
}
