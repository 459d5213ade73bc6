package bundlecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bundlecache/bundlecache/cache"
	cachekey "github.com/bundlecache/bundlecache/pkg/cache-key"

	"github.com/rs/zerolog"
)

// ErrCacheMiss indicates the requested key was not found in cache.
// It is distinguishable from a storage failure, so the pipeline can
// degrade to build-and-serve when the store itself is unavailable.
var ErrCacheMiss = errors.New("cache miss")

// gateway is a thin contract over the storage provider. It owns the
// (de)serialization of responses and nothing else.
type gateway struct {
	provider cache.Provider
	ttl      time.Duration
	log      zerolog.Logger
}

// getResponse returns the cached response for the key.
// Corrupted entries are purged and reported as a miss.
func (g *gateway) getResponse(ctx context.Context, key cachekey.Key) (*Response, error) {
	data, ok, err := g.provider.Get(ctx, key.String())
	if err != nil {
		cacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if !ok {
		cacheMisses.Inc()
		return nil, ErrCacheMiss
	}
	var res Response
	if err := json.Unmarshal(data, &res); err != nil {
		// in case we have a corrupted cache entry, we delete it and treat it as a miss
		g.log.Error().Err(err).Str("key", key.String()).Msg("Could not read from cache")
		if err := g.provider.Purge(ctx, key.String()); err != nil {
			cacheErrors.WithLabelValues("purge").Inc()
		}
		cacheMisses.Inc()
		return nil, ErrCacheMiss
	}
	cacheHits.Inc()
	return &res, nil
}

// putResponse stores the response under the key. Repeated puts with
// the same key and content are safe.
func (g *gateway) putResponse(ctx context.Context, key cachekey.Key, res *Response) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	if err := g.provider.Put(ctx, key.String(), time.Now().Add(g.ttl), data); err != nil {
		cacheErrors.WithLabelValues("put").Inc()
		return fmt.Errorf("cache put: %w", err)
	}
	g.log.Trace().Str("key", key.String()).Int("bytes", len(data)).Msg("Cache write")
	return nil
}
