package bundlecache

import (
	"context"
	"time"

	cachekey "github.com/bundlecache/bundlecache/pkg/cache-key"

	"github.com/rs/zerolog"
)

// Builder generates the content of a bundle. It is the external
// content-generation collaborator: the pipeline only invokes it and
// consumes its result.
//
// A build may be slow and must be treated as fallible. Returning
// (nil, nil) means the builder has nothing to serve for the bundle,
// and the request is deferred to the rest of the hosting pipeline.
// Implementations must be stateless across calls.
type Builder interface {
	Build(ctx context.Context, bundle Bundle, key cachekey.Key) (*Response, error)
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(ctx context.Context, bundle Bundle, key cachekey.Key) (*Response, error)

func (f BuilderFunc) Build(ctx context.Context, bundle Bundle, key cachekey.Key) (*Response, error) {
	return f(ctx, bundle, key)
}

// invoker wraps the Builder with timing and diagnostics.
type invoker struct {
	builder Builder
	log     zerolog.Logger
}

// build runs one build and records its duration. Failures are logged
// with the bundle route and returned unwrapped, so the error payload
// shown to the client is exactly the builder's message chain.
func (i *invoker) build(ctx context.Context, bundle Bundle, key cachekey.Key) (*Response, error) {
	start := time.Now()
	res, err := i.builder.Build(ctx, bundle, key)
	elapsed := time.Since(start)
	buildDuration.WithLabelValues(bundle.Route).Observe(elapsed.Seconds())
	if err != nil {
		buildFailures.Inc()
		i.log.Error().Err(err).Str("route", bundle.Route).Dur("elapsed", elapsed).Msg("Bundle build failed")
		return nil, err
	}
	if res == nil {
		i.log.Trace().Str("route", bundle.Route).Dur("elapsed", elapsed).Msg("Builder produced no content")
		return nil, nil
	}
	i.log.Debug().Str("route", bundle.Route).Dur("elapsed", elapsed).Int("bytes", len(res.Content)).Msg("Bundle built")
	return res, nil
}
