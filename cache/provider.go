package cache

import (
	"context"
	"sync"
	"time"
)

// Provider is an interface for a cache storage backend.
// It stores and retrieves []byte values, which represent serialized
// bundle responses. It also keeps track of expiration times of cache
// entries.
//
// Implementations must be thread-safe!
type Provider interface {
	// Get returns the cached bytes for the given key, if they exist.
	// It also returns a boolean indicating whether retrieval was
	// successful. If the cache entry has expired, the boolean should
	// be false.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put stores the given bytes in the cache under the given key.
	// It also sets an expiration time for the entry. Repeated puts
	// with the same key overwrite the previous entry.
	Put(ctx context.Context, key string, expires time.Time, bytes []byte) error
	// Purge removes the cache entry for the given key.
	Purge(ctx context.Context, key string) error
}

type memCacheEntry struct {
	expires time.Time
	bytes   []byte
}

// MemCache is an in-process Provider backed by a map.
type MemCache struct {
	mutex *sync.RWMutex
	db    map[string]memCacheEntry
}

func NewMemCache() MemCache {
	return MemCache{
		mutex: &sync.RWMutex{},
		db:    make(map[string]memCacheEntry),
	}
}

func (m MemCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	entry, ok := m.db[key]
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expires) {
		return nil, false, nil
	}
	return entry.bytes, true, nil
}

func (m MemCache) Put(ctx context.Context, key string, expires time.Time, bytes []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.db[key] = memCacheEntry{expires, bytes}
	return nil
}

func (m MemCache) Purge(ctx context.Context, key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.db, key)
	return nil
}
