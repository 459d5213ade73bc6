package bundlecache

import (
	"net/http"
	"strings"

	cachekey "github.com/bundlecache/bundlecache/pkg/cache-key"
)

// clientCacheMaxAge is the lifetime set on client-cacheable responses.
// Bundle content only changes when its key changes, so a year is
// effectively permanent.
const clientCacheMaxAge = "max-age=31536000"

// writeResponse writes a built or cached response to the client,
// applying cache-control headers, conditional-GET evaluation and the
// transport compression mode. With bypassCaching set, only the content
// type and body are written; validation mode uses this regardless of
// the configured policy.
func (b *BundleCache) writeResponse(w http.ResponseWriter, r *http.Request, res *Response, key cachekey.Key, bypassCaching bool) {
	if res.ContentType != "" {
		w.Header().Set("Content-Type", res.ContentType)
	}

	if !bypassCaching {
		if b.clientCache {
			cc := "public, " + clientCacheMaxAge
			if key.HasVersion() {
				// version-stamped URLs never change content
				cc += ", immutable"
			}
			w.Header().Set("Cache-Control", cc)
		}
		if res.Hash != "" {
			w.Header().Set("ETag", `"`+res.Hash+`"`)
			if lm := res.lastModifiedHeader(); lm != "" {
				w.Header().Set("Last-Modified", lm)
			}
			if requestIsFresh(r, res) {
				notModified.Inc()
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	if !res.HasContent() {
		// valid for e.g. empty bundles
		return
	}

	// The compression codec itself is the transport's concern; signal
	// that the representation varies so shared caches stay correct.
	w.Header().Add("Vary", "Accept-Encoding")
	if _, err := w.Write(res.Content); err != nil {
		b.log.Error().Err(err).Msg("Could not write response body to client")
	}
}

// requestIsFresh evaluates the request's conditional-GET validators
// against the response. Entity-tag matching takes precedence over
// modification-time matching.
//
// If-Modified-Since is compared as an exact string match against the
// previously emitted Last-Modified value, not with full timestamp-range
// semantics. That matches the weaker of the two validator mechanisms.
func requestIsFresh(r *http.Request, res *Response) bool {
	if inm := r.Header.Get("If-None-Match"); inm != "" {
		return strings.Trim(inm, `"`) == res.Hash
	}
	if ims := r.Header.Get("If-Modified-Since"); ims != "" {
		if lm := res.lastModifiedHeader(); lm != "" {
			return ims == lm
		}
	}
	return false
}
