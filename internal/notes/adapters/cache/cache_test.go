package cache_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"technotes/internal/notes/adapters/cache"
	"technotes/internal/notes/config"
	cachePorts "technotes/internal/notes/ports/cache"
)

func mockRedisServer(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func redisConfig(t *testing.T, addr string) *config.RedisConfig {
	t.Helper()

	host, portStr, ok := strings.Cut(addr, ":")
	require.True(t, ok)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return &config.RedisConfig{
		Host:           host,
		Port:           port,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    3 * time.Second,
		WriteTimeout:   3 * time.Second,
		PoolSize:       10,
		MinIdle:        2,
		DefaultTTL:     15 * time.Minute,
	}
}

func TestNewRedisCache_Success(t *testing.T) {
	s := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, redisConfig(t, s.Addr()))

	require.NoError(t, err)
	require.NotNil(t, redisCache)

	_, ok := redisCache.(cachePorts.Cache)
	assert.True(t, ok, "should implement Cache interface")

	assert.NoError(t, redisCache.Close(), "should close without errors")
}

func TestNewRedisCache_ConnectionFailure(t *testing.T) {
	ctx := context.Background()

	cfg := &config.RedisConfig{
		Host:           "nonexistent.host",
		Port:           12345,
		ConnectTimeout: 100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
	}

	redisCache, err := cache.NewRedisCache(ctx, cfg)

	assert.Error(t, err)
	assert.Nil(t, redisCache)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisCache_GetSet(t *testing.T) {
	s := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, redisConfig(t, s.Addr()))
	require.NoError(t, err)
	defer func() { require.NoError(t, redisCache.Close()) }()

	t.Run("missing key is not an error", func(t *testing.T) {
		value, err := redisCache.Get(ctx, "user:username:unknown")

		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		require.NoError(t, redisCache.Set(ctx, "user:username:u1", "alice", 0))

		value, err := redisCache.Get(ctx, "user:username:u1")

		require.NoError(t, err)
		assert.Equal(t, "alice", value)
	})

	t.Run("zero ttl falls back to default", func(t *testing.T) {
		require.NoError(t, redisCache.Set(ctx, "user:username:u2", "bob", 0))

		ttl := s.TTL("user:username:u2")
		assert.Equal(t, 15*time.Minute, ttl)
	})

	t.Run("value expires after ttl", func(t *testing.T) {
		require.NoError(t, redisCache.Set(ctx, "user:username:u3", "carol", time.Minute))

		s.FastForward(2 * time.Minute)

		value, err := redisCache.Get(ctx, "user:username:u3")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("delete removes the key", func(t *testing.T) {
		require.NoError(t, redisCache.Set(ctx, "user:username:u4", "dave", 0))
		require.NoError(t, redisCache.Delete(ctx, "user:username:u4"))

		value, err := redisCache.Get(ctx, "user:username:u4")
		require.NoError(t, err)
		assert.Empty(t, value)
	})
}
