package bundlecache

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"time"
)

// Response is a built bundle ready to serve. It is immutable once
// created: built exactly once per successful build, served possibly
// many times.
type Response struct {
	// Content is the exact body bytes. Multi-byte characters are
	// preserved because the stored bytes are written verbatim.
	Content []byte `json:"content"`
	// ContentType is the media type the content is served as.
	ContentType string `json:"content_type"`
	// Hash is the hex SHA-256 digest of Content. It doubles as the
	// entity tag and never changes without the content changing.
	Hash string `json:"hash"`
	// LastModified is when the content was generated.
	LastModified time.Time `json:"last_modified"`
}

// NewResponse creates a response for freshly built content.
// LastModified is truncated to whole seconds so that it survives the
// HTTP date format round trip.
func NewResponse(content []byte, contentType string) *Response {
	return &Response{
		Content:      content,
		ContentType:  contentType,
		Hash:         hashContent(content),
		LastModified: time.Now().UTC().Truncate(time.Second),
	}
}

// HasContent reports whether there is a body to write.
// Empty bundles are valid and complete without a body write.
func (r *Response) HasContent() bool {
	return len(r.Content) > 0
}

// lastModifiedHeader returns the Last-Modified header value, or the
// empty string when the generation time is unknown.
func (r *Response) lastModifiedHeader() string {
	if r.LastModified.IsZero() {
		return ""
	}
	return r.LastModified.UTC().Format(http.TimeFormat)
}

func hashContent(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}
