package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobbcode/pkg/cache"
	"github.com/yaklabco/gobbcode/pkg/config"
)

func setupRedis(t *testing.T, ttl time.Duration) (*cache.Redis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.NewRedisWithClient(client, "test:", ttl)
	t.Cleanup(func() { _ = c.Close() })

	return c, mr
}

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cache.Key("a", "b"), cache.Key("a", "b"))
	assert.NotEqual(t, cache.Key("ab", "c"), cache.Key("a", "bc"))
	assert.NotEqual(t, cache.Key("a"), cache.Key("a", ""))
	assert.Len(t, cache.Key("x"), 64)
}

func TestRedis_GetSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, mr := setupRedis(t, time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "<em>x</em>"))
	assert.True(t, mr.Exists("test:k"))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<em>x</em>", got)
}

func TestRedis_TTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, mr := setupRedis(t, time.Minute)

	require.NoError(t, c.Set(ctx, "k", "v"))
	assert.Equal(t, time.Minute, mr.TTL("test:k"))

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_CorruptEntry(t *testing.T) {
	t.Parallel()

	c, mr := setupRedis(t, time.Minute)
	require.NoError(t, mr.Set("test:k", "not json"))

	_, _, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestRedis_Clear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, mr := setupRedis(t, time.Minute)

	require.NoError(t, c.Set(ctx, "a", "1"))
	require.NoError(t, c.Set(ctx, "b", "2"))
	require.NoError(t, mr.Set("other:c", "3"))

	require.NoError(t, c.Clear(ctx))
	assert.False(t, mr.Exists("test:a"))
	assert.False(t, mr.Exists("test:b"))
	assert.True(t, mr.Exists("other:c"))
}

func TestRedis_Ping(t *testing.T) {
	t.Parallel()

	c, mr := setupRedis(t, time.Minute)
	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}

func TestNew(t *testing.T) {
	t.Parallel()

	memory, err := cache.New(config.ServerConfig{})
	require.NoError(t, err)
	assert.IsType(t, &cache.Memory{}, memory)

	mr := miniredis.RunT(t)
	shared, err := cache.New(config.ServerConfig{RedisURL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = shared.Close() })
	assert.IsType(t, &cache.Redis{}, shared)

	require.NoError(t, shared.Set(context.Background(), "k", "v"))
	assert.True(t, mr.Exists(config.DefaultCachePrefix+"k"))

	_, err = cache.New(config.ServerConfig{RedisURL: "::not a url"})
	assert.Error(t, err)
}
