// Package builder provides a filesystem-backed bundle builder that
// concatenates source files and applies simple processing steps.
package builder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bundlecache/bundlecache"
	cachekey "github.com/bundlecache/bundlecache/pkg/cache-key"
)

// Step names understood by the FS builder.
const (
	StepConcat   = "concat"
	StepMinify   = "minify"
	StepValidate = "validate"
)

// FS builds bundles by reading and concatenating their source files
// from a root directory, in the order the bundle declares them.
type FS struct {
	// Root is the directory source files are resolved against.
	Root string
}

// Build implements bundlecache.Builder. A bundle without files yields
// no content, deferring the request to the rest of the pipeline.
func (f FS) Build(ctx context.Context, bundle bundlecache.Bundle, key cachekey.Key) (*bundlecache.Response, error) {
	if len(bundle.Files) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	for _, name := range bundle.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(f.Root, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		buf.Write(data)
		if !bytes.HasSuffix(data, []byte("\n")) {
			buf.WriteByte('\n')
		}
	}

	content := buf.Bytes()
	for _, step := range bundle.Steps {
		switch step.Name {
		case StepConcat:
			// concatenation already happened above
		case StepMinify:
			content = minify(content)
		case StepValidate:
			if err := validate(content); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unknown processing step %q", step.Name)
		}
	}

	return bundlecache.NewResponse(content, bundle.ContentType), nil
}

// minify strips blank lines and leading indentation. It is not a real
// minifier; swap in a dedicated Builder for production-grade output.
func minify(content []byte) []byte {
	lines := strings.Split(string(content), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return []byte(strings.Join(out, "\n"))
}

// validate performs strict checks of the authored source.
func validate(content []byte) error {
	if !utf8.Valid(content) {
		return fmt.Errorf("source is not valid UTF-8")
	}
	return nil
}
