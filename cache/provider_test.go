package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemCachePutAndGet(t *testing.T) {
	c := NewMemCache()
	ctx := context.Background()

	err := c.Put(ctx, "key", time.Now().Add(time.Hour), []byte("value"))
	require.NoError(t, err)

	bytes, ok, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("value"), bytes)
}

func TestMemCacheMiss(t *testing.T) {
	c := NewMemCache()

	_, ok, err := c.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemCacheExpiredEntryIsAMiss(t *testing.T) {
	c := NewMemCache()
	ctx := context.Background()

	err := c.Put(ctx, "key", time.Now().Add(-time.Second), []byte("value"))
	require.NoError(t, err)

	_, ok, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemCachePutOverwrites(t *testing.T) {
	c := NewMemCache()
	ctx := context.Background()
	expires := time.Now().Add(time.Hour)

	require.NoError(t, c.Put(ctx, "key", expires, []byte("first")))
	require.NoError(t, c.Put(ctx, "key", expires, []byte("second")))

	bytes, ok, err := c.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("second"), bytes)
}

func TestMemCachePurge(t *testing.T) {
	c := NewMemCache()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "key", time.Now().Add(time.Hour), []byte("value")))
	require.NoError(t, c.Purge(ctx, "key"))

	_, ok, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
}
