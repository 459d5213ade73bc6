package bundlecache

import (
	"net/http"

	cachekey "github.com/bundlecache/bundlecache/pkg/cache-key"
)

// serveValidation handles a validation-mode request: an uncached
// rebuild with the bundle's step list restricted to its validating
// steps, so privileged callers can check source correctness without
// serving optimized output. The shared cache is neither read nor
// written, and the response bypasses client caching regardless of the
// configured policy.
func (b *BundleCache) serveValidation(w http.ResponseWriter, r *http.Request, bundle Bundle, key cachekey.Key) bool {
	b.log.Debug().Str("route", bundle.Route).Msg("Validation mode rebuild")

	restricted := bundle.WithSteps(bundle.ValidationSteps())
	res, err := b.invoker.build(r.Context(), restricted, key)
	if err != nil {
		b.writeBuildError(w, err, bundle)
		return true
	}
	if res == nil {
		return false
	}
	b.writeResponse(w, r, res, key, true)
	return true
}
