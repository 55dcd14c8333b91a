package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStore(rdb, ttl), mr
}

func TestRedisStore_ReserveCompleteLookup(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Hour)

	ok, err := s.Reserve(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Reserve(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok, "second reserve must fail")

	v, err := s.Lookup(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, Pending, v)

	require.NoError(t, s.Complete(ctx, "k1", "order-1"))
	v, err = s.Lookup(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", v)

	got, err := mr.Get("idem:order:k1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", got)
	assert.Equal(t, time.Hour, mr.TTL("idem:order:k1"), "complete keeps the expiry")
}

func TestRedisStore_ReleaseAndExpiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Minute)

	_, err := s.Lookup(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Reserve(ctx, "k")
	require.NoError(t, err)
	require.NoError(t, s.Release(ctx, "k"))
	_, err = s.Lookup(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := s.Reserve(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)
	ok, err = s.Reserve(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok, "expired keys can be reserved again")
}

func TestRedisStore_Unavailable(t *testing.T) {
	s, mr := newRedisStore(t, time.Minute)
	mr.Close()

	_, err := s.Reserve(context.Background(), "k")
	assert.Error(t, err)
}
