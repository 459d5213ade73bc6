package bundlecache

import (
	"net/http"
	"strings"
)

// commentStyle wraps diagnostic text in a comment syntax that is inert
// for a given content type, so a bundle that fails to build still
// returns syntactically harmless content to the consuming page.
type commentStyle struct {
	open  string
	close string
}

func (s commentStyle) wrap(message string) string {
	return s.open + "\n" + message + "\n" + s.close
}

var commentStyles = map[string]commentStyle{
	"text/css":               {"/*", "*/"},
	"text/javascript":        {"/*", "*/"},
	"application/javascript": {"/*", "*/"},
	"text/html":              {"<!--", "-->"},
	"image/svg+xml":          {"<!--", "-->"},
}

var defaultCommentStyle = commentStyle{"/*", "*/"}

// commentStyleFor looks up the comment syntax for a content type,
// ignoring media type parameters like charset.
func commentStyleFor(contentType string) commentStyle {
	mediaType := contentType
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if style, ok := commentStyles[mediaType]; ok {
		return style
	}
	return defaultCommentStyle
}

// writeBuildError converts a build failure into a well-formed error
// response: the bundle's declared content type, status 500, and the
// full error message wrapped in a comment valid for that type.
// Error responses are never cached.
func (b *BundleCache) writeBuildError(w http.ResponseWriter, err error, bundle Bundle) {
	if bundle.ContentType != "" {
		w.Header().Set("Content-Type", bundle.ContentType)
	}
	w.WriteHeader(http.StatusInternalServerError)
	body := commentStyleFor(bundle.ContentType).wrap(err.Error())
	if _, werr := w.Write([]byte(body)); werr != nil {
		b.log.Error().Err(werr).Msg("Could not write error response to client")
	}
}
