package bundlecache

import "net/http"

// Step is one stage of a bundle's processing pipeline, identified by
// name. The pipeline itself does not interpret step names; they are
// the Builder's business.
type Step struct {
	Name string `json:"name" yaml:"name"`
	// Validating marks steps that check source correctness rather than
	// transform it. Validation mode runs only these steps.
	Validating bool `json:"validating" yaml:"validating"`
}

// Bundle is a logical, named generated artifact: an ordered list of
// source files with a declared content type and processing pipeline.
// Bundles are immutable values; derive variants with WithSteps.
type Bundle struct {
	// Route is the request path the bundle is served under.
	Route string
	// ContentType is the declared media type of the built content.
	ContentType string
	// Files are the source files making up the bundle, in order.
	Files []string
	// Steps are the processing steps applied by the Builder, in order.
	Steps []Step
}

// WithSteps returns a copy of the bundle with the given step list.
// The receiver is left untouched, so concurrent requests never observe
// each other's step overrides.
func (b Bundle) WithSteps(steps []Step) Bundle {
	clone := b
	clone.Steps = make([]Step, len(steps))
	copy(clone.Steps, steps)
	return clone
}

// ValidationSteps returns only the validating steps of the bundle.
func (b Bundle) ValidationSteps() []Step {
	var steps []Step
	for _, step := range b.Steps {
		if step.Validating {
			steps = append(steps, step)
		}
	}
	return steps
}

// Resolver maps an incoming request to a bundle definition.
// A false return means the request is not for a bundle and should be
// handled by the rest of the hosting pipeline.
type Resolver interface {
	Resolve(r *http.Request) (Bundle, bool)
}

// StaticResolver resolves bundles from a fixed route table.
type StaticResolver struct {
	bundles map[string]Bundle
}

func NewStaticResolver(bundles ...Bundle) *StaticResolver {
	m := make(map[string]Bundle, len(bundles))
	for _, b := range bundles {
		m[b.Route] = b
	}
	return &StaticResolver{bundles: m}
}

func (s *StaticResolver) Resolve(r *http.Request) (Bundle, bool) {
	bundle, ok := s.bundles[r.URL.Path]
	return bundle, ok
}
