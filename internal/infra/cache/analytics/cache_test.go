package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type report struct {
	Total   float64  `json:"total"`
	Buckets []string `json:"buckets"`
}

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	return New(client, ttl), srv
}

func TestCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	key := ProviderKey(42, "month")
	stored := report{Total: 123.5, Buckets: []string{"2026-08-01", "2026-08-02"}}

	require.NoError(t, cache.Set(ctx, key, stored))

	var loaded report
	hit, err := cache.Get(ctx, key, &loaded)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, stored, loaded)
}

func TestCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	var loaded report
	hit, err := cache.Get(context.Background(), PlatformKey("year"), &loaded)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_Expiry(t *testing.T) {
	cache, srv := newTestCache(t, time.Second)
	ctx := context.Background()

	key := PlatformKey("week")
	require.NoError(t, cache.Set(ctx, key, report{Total: 1}))

	srv.FastForward(2 * time.Second)

	var loaded report
	hit, err := cache.Get(ctx, key, &loaded)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_CorruptedEntryIsAMiss(t *testing.T) {
	cache, srv := newTestCache(t, time.Minute)

	key := ProviderKey(7, "quarter")
	require.NoError(t, srv.Set(key, "{not json"))

	var loaded report
	hit, err := cache.Get(context.Background(), key, &loaded)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "analytics:provider:42:month", ProviderKey(42, "month"))
	assert.Equal(t, "analytics:platform:year", PlatformKey("year"))
}
