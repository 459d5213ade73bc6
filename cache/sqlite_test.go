package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestSQLite(t *testing.T) SQLiteCache {
	c, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	return c
}

func TestSQLiteCachePutAndGet(t *testing.T) {
	c := setupTestSQLite(t)
	ctx := context.Background()

	err := c.Put(ctx, "key", time.Now().Add(time.Hour), []byte("value"))
	require.NoError(t, err)

	bytes, ok, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("value"), bytes)
}

func TestSQLiteCacheMiss(t *testing.T) {
	c := setupTestSQLite(t)

	_, ok, err := c.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteCacheExpiredEntryIsAMiss(t *testing.T) {
	c := setupTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "key", time.Now().Add(-2*time.Second), []byte("value")))

	_, ok, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteCachePutOverwrites(t *testing.T) {
	c := setupTestSQLite(t)
	ctx := context.Background()
	expires := time.Now().Add(time.Hour)

	require.NoError(t, c.Put(ctx, "key", expires, []byte("first")))
	require.NoError(t, c.Put(ctx, "key", expires, []byte("second")))

	bytes, ok, err := c.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("second"), bytes)
}

func TestSQLiteCachePurge(t *testing.T) {
	c := setupTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "key", time.Now().Add(time.Hour), []byte("value")))
	require.NoError(t, c.Purge(ctx, "key"))

	_, ok, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
}
