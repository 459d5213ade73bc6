// Package bundlecache serves generated, cacheable asset bundles over
// HTTP. It resolves a request to a bundle, derives a cache key,
// coordinates a single-flight build on a cache miss, and serves the
// result with conditional-GET and client-cache semantics.
package bundlecache

import (
	"errors"
	"net/http"
	"time"

	"github.com/bundlecache/bundlecache/cache"
	cachekey "github.com/bundlecache/bundlecache/pkg/cache-key"
	keylock "github.com/bundlecache/bundlecache/pkg/key-lock"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// lockNamespace isolates this pipeline's build locks from unrelated
// users of a shared lock manager.
const lockNamespace = "bundlecache:build:"

// DefaultCacheTTL is the server-side lifetime of cached responses when
// the config does not set one.
const DefaultCacheTTL = 24 * time.Hour

type Config struct {
	// Storage for built responses.
	Cache cache.Provider
	// Resolver maps request paths to bundle definitions.
	Resolver Resolver
	// Builder generates bundle content on a cache miss.
	Builder Builder
	// Authorizer decides whether the caller may use validation mode.
	// If nil, validation mode is never unlocked.
	Authorizer func(*http.Request) bool
	// ClientCache enables long-lived Cache-Control headers on responses.
	ClientCache bool
	// CacheTTL is the server-side cache lifetime. DefaultCacheTTL if zero.
	CacheTTL time.Duration
	// Keyer overrides the default cache key deriver.
	Keyer *cachekey.Deriver
	// Logger to use. The global zerolog logger is used if nil.
	Logger *zerolog.Logger
}

// BundleCache is the bundle-serving middleware.
type BundleCache struct {
	resolver    Resolver
	gateway     *gateway
	invoker     *invoker
	locker      *keylock.Locker
	deriver     cachekey.Deriver
	authorizer  func(*http.Request) bool
	clientCache bool
	log         zerolog.Logger
}

// New initializes the bundle cache instance.
func New(config Config) *BundleCache {
	// use the global logger if not specified in config
	logger := log.Logger
	if config.Logger != nil {
		logger = *config.Logger
	}

	ttl := config.CacheTTL
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}

	deriver := cachekey.NewDeriver()
	if config.Keyer != nil {
		deriver = *config.Keyer
	}

	authorizer := config.Authorizer
	if authorizer == nil {
		authorizer = func(*http.Request) bool { return false }
	}

	return &BundleCache{
		resolver: config.Resolver,
		gateway: &gateway{
			provider: config.Cache,
			ttl:      ttl,
			log:      logger,
		},
		invoker: &invoker{
			builder: config.Builder,
			log:     logger,
		},
		locker:      keylock.New(),
		deriver:     deriver,
		authorizer:  authorizer,
		clientCache: config.ClientCache,
		log:         logger,
	}
}

// Middleware wraps the next handler with bundle serving. Requests that
// do not resolve to a bundle, and builds that produce no content, are
// handed to next with nothing written.
func (b *BundleCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bundle, ok := b.resolver.Resolve(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		if !b.serveBundle(w, r, bundle) {
			next.ServeHTTP(w, r)
		}
	})
}

// serveBundle runs the request pipeline for a resolved bundle. It
// returns false when nothing was written and the request should fall
// through to the rest of the hosting pipeline.
func (b *BundleCache) serveBundle(w http.ResponseWriter, r *http.Request, bundle Bundle) bool {
	ctx := r.Context()
	logger := b.log.With().Str("route", bundle.Route).Logger()

	// Validation mode only exists for authorized callers; for everyone
	// else the validate parameter is not a variance factor at all.
	validate := r.URL.Query().Has(b.deriver.ValidateParam) && b.authorizer(r)
	key := b.deriver.Derive(bundle.Route, r, validate)

	if key.IsValidationMode() {
		return b.serveValidation(w, r, bundle, key)
	}

	if res, err := b.gateway.getResponse(ctx, key); err == nil {
		logger.Trace().Str("key", key.String()).Msg("Cache hit and serving")
		b.writeResponse(w, r, res, key, false)
		return true
	} else if !errors.Is(err, ErrCacheMiss) {
		// a broken store must not prevent serving freshly built content
		logger.Error().Err(err).Msg("Could not read from cache")
	}

	handled := true
	err := b.locker.WithLock(ctx, lockNamespace+key.String(), func() error {
		// another request may have built and cached the response while
		// this one was waiting for the lock
		if res, err := b.gateway.getResponse(ctx, key); err == nil {
			logger.Trace().Str("key", key.String()).Msg("Cache hit after lock wait")
			b.writeResponse(w, r, res, key, false)
			return nil
		} else if !errors.Is(err, ErrCacheMiss) {
			logger.Error().Err(err).Msg("Could not read from cache")
		}

		res, err := b.invoker.build(ctx, bundle, key)
		if err != nil {
			b.writeBuildError(w, err, bundle)
			return nil
		}
		if res == nil {
			handled = false
			return nil
		}
		if err := b.gateway.putResponse(ctx, key, res); err != nil {
			logger.Error().Err(err).Msg("Could not write to cache")
		}
		b.writeResponse(w, r, res, key, false)
		return nil
	})
	if err != nil {
		// the client went away while waiting for the lock; any other
		// waiter proceeds on its own
		logger.Debug().Err(err).Str("key", key.String()).Msg("Abandoned lock wait")
		return true
	}
	return handled
}
