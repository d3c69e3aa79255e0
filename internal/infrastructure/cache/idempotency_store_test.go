package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisStore(t *testing.T) (*RedisIdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisIdempotencyStore(client, "")
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

// storeContract runs the behaviour every IdempotencyStore must share.
func storeContract(t *testing.T, store shared.IdempotencyStore) {
	ctx := context.Background()

	first, err := store.MarkProcessed(ctx, "key-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := store.MarkProcessed(ctx, "key-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, again)

	seen, err := store.IsProcessed(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = store.IsProcessed(ctx, "never")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, store.Forget(ctx, "key-1"))
	retried, err := store.MarkProcessed(ctx, "key-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, retried)

	require.NoError(t, store.Forget(ctx, "unknown"))
}

func TestIdempotencyStores(t *testing.T) {
	t.Run("in-memory", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()
		storeContract(t, store)
	})

	t.Run("redis", func(t *testing.T) {
		store, _ := newMiniredisStore(t)
		storeContract(t, store)
	})
}

func TestInMemoryIdempotencyStore_Expiry(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "k", time.Minute)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	seen, err := store.IsProcessed(ctx, "k")
	require.NoError(t, err)
	assert.False(t, seen)

	store.sweep()
	assert.Equal(t, 0, store.Len())

	isNew, err := store.MarkProcessed(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, isNew)
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}

func TestRedisIdempotencyStore_TTLAndPrefix(t *testing.T) {
	store, mr := newMiniredisStore(t)
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "abc", 30*time.Second)
	require.NoError(t, err)

	assert.True(t, mr.Exists(DefaultKeyPrefix+"abc"))
	assert.Equal(t, 30*time.Second, mr.TTL(DefaultKeyPrefix+"abc"))

	mr.FastForward(31 * time.Second)
	seen, err := store.IsProcessed(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestRedisIdempotencyStore_ServerDown(t *testing.T) {
	store, mr := newMiniredisStore(t)
	mr.Close()

	_, err := store.MarkProcessed(context.Background(), "k", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mark idempotency key")
}

func TestNewIdempotencyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled redis gives in-memory store", func(t *testing.T) {
		store, err := NewIdempotencyStore(ctx, config.RedisConfig{}, nil)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("reachable redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.RedisConfig{Enabled: true, Host: mr.Host(), Port: port(t, mr)}

		store, err := NewIdempotencyStore(ctx, cfg, nil)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &RedisIdempotencyStore{}, store)
	})

	t.Run("unreachable redis is an error", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.RedisConfig{Enabled: true, Host: mr.Host(), Port: port(t, mr)}
		mr.Close()

		_, err := NewIdempotencyStore(ctx, cfg, nil)
		require.Error(t, err)
	})
}

func port(t *testing.T, mr *miniredis.Miniredis) int {
	t.Helper()
	p, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	return p
}
