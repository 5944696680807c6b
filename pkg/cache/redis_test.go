package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewWithClient(client), mr
}

func TestNewRedisClient(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	c, err := NewRedisClient(&Config{Addr: mr.Addr()})
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}

func TestAcquireAndReleaseLock(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	ok, err := c.AcquireLock(ctx, "lock:stock:a", "token-1", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.AcquireLock(ctx, "lock:stock:a", "token-2", time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	// wrong token does not release
	require.NoError(t, c.ReleaseLock(ctx, "lock:stock:a", "token-2"))
	assert.True(t, mr.Exists("lock:stock:a"))

	require.NoError(t, c.ReleaseLock(ctx, "lock:stock:a", "token-1"))
	assert.False(t, mr.Exists("lock:stock:a"))
}

func TestWithLock(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	called := false
	err := c.WithLock(ctx, "lock:x", "v", time.Second, 3, time.Millisecond, func() error {
		called = true
		assert.True(t, mr.Exists("lock:x"))
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.False(t, mr.Exists("lock:x"))
}

func TestWithLock_Busy(t *testing.T) {
	c, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("lock:busy", "someone"))

	err := c.WithLock(context.Background(), "lock:busy", "me", time.Second, 2, time.Millisecond, func() error {
		t.Fatal("must not run")
		return nil
	})
	assert.True(t, errors.Is(err, ErrLocked))
}

func TestJSONRoundTripAndPatternDelete(t *testing.T) {
	c, _ := setupTestRedis(t)
	ctx := context.Background()

	type payload struct {
		Name string
		N    int
	}

	var out payload
	assert.ErrorIs(t, c.GetJSON(ctx, "products:list:a", &out), ErrMiss)

	require.NoError(t, c.SetJSON(ctx, "products:list:a", payload{Name: "x", N: 2}, time.Minute))
	require.NoError(t, c.SetJSON(ctx, "products:list:b", payload{Name: "y"}, time.Minute))
	require.NoError(t, c.SetJSON(ctx, "rooms:list:a", payload{}, time.Minute))

	require.NoError(t, c.GetJSON(ctx, "products:list:a", &out))
	assert.Equal(t, payload{Name: "x", N: 2}, out)

	n, err := c.DeleteByPattern(ctx, "products:list:*")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, c.GetJSON(ctx, "products:list:b", &out), ErrMiss)
	assert.NoError(t, c.GetJSON(ctx, "rooms:list:a", &out))
}
