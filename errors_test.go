package bundlecache

import "testing"

func TestCommentStyleFor(t *testing.T) {
	tests := []struct {
		contentType string
		message     string
		want        string
	}{
		{"text/css", "syntax error at line 4", "/*\nsyntax error at line 4\n*/"},
		{"text/javascript", "oops", "/*\noops\n*/"},
		{"text/css; charset=utf-8", "oops", "/*\noops\n*/"},
		{"text/html", "oops", "<!--\noops\n-->"},
		{"image/svg+xml", "oops", "<!--\noops\n-->"},
		// unknown types fall back to the default style
		{"application/x-custom", "oops", "/*\noops\n*/"},
		{"", "oops", "/*\noops\n*/"},
	}
	for _, tt := range tests {
		if got := commentStyleFor(tt.contentType).wrap(tt.message); got != tt.want {
			t.Errorf("wrap(%q, %q) = %q, want %q", tt.contentType, tt.message, got, tt.want)
		}
	}
}
