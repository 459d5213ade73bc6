package cachekey

import (
	"net/http"
	"strings"
)

const (
	keyNamespace   = "bundle"
	fieldSeparator = ":"
)

// Key identifies one cacheable variant of a bundle.
// It captures the bundle route plus every request-side factor that
// legitimately varies the output. Two requests with identical variance
// factors always derive equal keys.
type Key struct {
	route    string
	theme    string
	culture  string
	version  string
	validate bool
}

// String returns the deterministic cache key string.
// The field order is fixed, so equal keys always serialize identically.
func (k Key) String() string {
	validate := "0"
	if k.validate {
		validate = "1"
	}
	return strings.Join([]string{
		keyNamespace,
		k.route,
		"t=" + k.theme,
		"c=" + k.culture,
		"v=" + k.version,
		"validate=" + validate,
	}, fieldSeparator)
}

// Route returns the bundle route the key was derived for.
func (k Key) Route() string {
	return k.route
}

// IsValidationMode reports whether the key was derived for a
// validation-mode request.
func (k Key) IsValidationMode() bool {
	return k.validate
}

// HasVersion reports whether the request carried an explicit version
// marker. Versioned responses may be served as immutable.
func (k Key) HasVersion() bool {
	return k.version != ""
}

// Deriver computes cache keys for bundle requests.
// Derivation is a pure function of the bundle route and the request:
// no clocks, no counters.
type Deriver struct {
	// VersionParam is the query parameter signalling an immutable,
	// version-stamped variant. Its value is not interpreted beyond
	// varying the key.
	VersionParam string
	// ThemeParam is the query parameter selecting a theme variant.
	ThemeParam string
	// ValidateParam is the query parameter requesting validation mode.
	ValidateParam string
	// Theme overrides theme extraction when set.
	Theme func(*http.Request) string
	// Culture overrides culture extraction when set.
	Culture func(*http.Request) string
}

// NewDeriver returns a Deriver with the default parameter names.
func NewDeriver() Deriver {
	return Deriver{
		VersionParam:  "v",
		ThemeParam:    "theme",
		ValidateParam: "validate",
	}
}

// Derive computes the cache key for a request to the given bundle route.
// The validate flag is decided by the caller, since authorization of
// validation mode is not this package's concern.
func (d Deriver) Derive(route string, r *http.Request, validate bool) Key {
	query := r.URL.Query()
	return Key{
		route:    route,
		theme:    d.theme(r),
		culture:  d.culture(r),
		version:  query.Get(d.VersionParam),
		validate: validate,
	}
}

func (d Deriver) theme(r *http.Request) string {
	if d.Theme != nil {
		return d.Theme(r)
	}
	return r.URL.Query().Get(d.ThemeParam)
}

// culture returns the primary Accept-Language tag.
// Only the first tag varies the key; full content negotiation is the
// transport's business.
func (d Deriver) culture(r *http.Request) string {
	if d.Culture != nil {
		return d.Culture(r)
	}
	lang := r.Header.Get("Accept-Language")
	if lang == "" {
		return ""
	}
	if i := strings.IndexAny(lang, ",;"); i >= 0 {
		lang = lang[:i]
	}
	return strings.ToLower(strings.TrimSpace(lang))
}
