package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client, err := NewRedisClient(&Config{Addr: srv.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, srv
}

func TestGetMissingKeyIsCacheMiss(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Get(context.Background(), "catalog:list")

	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestSetThenGet(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "catalog:product:1", []byte(`{"id":1}`), time.Minute))

	got, err := client.Get(ctx, "catalog:product:1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":1}`), got)
	assert.Equal(t, time.Minute, srv.TTL("catalog:product:1"))
}

func TestSetExpires(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "catalog:list", []byte(`[]`), time.Second))
	srv.FastForward(2 * time.Second)

	_, err := client.Get(ctx, "catalog:list")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestDeleteByPattern(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	// More keys than one SCAN page.
	for i := 0; i < 250; i++ {
		require.NoError(t, srv.Set(fmt.Sprintf("catalog:search:%d", i), "[]"))
	}
	require.NoError(t, srv.Set("catalog:list", "[]"))
	require.NoError(t, srv.Set("catalog:product:1", "{}"))

	require.NoError(t, client.DeleteByPattern(ctx, "catalog:search:*"))

	assert.Equal(t, []string{"catalog:list", "catalog:product:1"}, srv.Keys())
}

func TestDeleteByPatternWithoutMatches(t *testing.T) {
	client, srv := newTestClient(t)
	require.NoError(t, srv.Set("catalog:list", "[]"))

	require.NoError(t, client.DeleteByPattern(context.Background(), "catalog:search:*"))

	assert.True(t, srv.Exists("catalog:list"))
}

func TestNewRedisClientFailsWhenUnreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := NewRedisClient(&Config{Addr: addr})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping redis")
}
