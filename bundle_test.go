package bundlecache

import (
	"net/http/httptest"
	"testing"
)

func TestWithStepsDoesNotMutateOriginal(t *testing.T) {
	original := cssBundle()
	restricted := original.WithSteps(original.ValidationSteps())

	if len(restricted.Steps) != 1 || restricted.Steps[0].Name != "validate" {
		t.Fatalf("Restricted steps are %v", restricted.Steps)
	}
	if len(original.Steps) != 3 {
		t.Fatalf("Original bundle mutated: %v", original.Steps)
	}

	restricted.Steps[0].Name = "changed"
	if original.Steps[1].Name != "validate" {
		t.Fatal("Step lists share backing storage")
	}
}

func TestValidationStepsEmptyWithoutValidatingSteps(t *testing.T) {
	bundle := Bundle{Steps: []Step{{Name: "concat"}, {Name: "minify"}}}
	if steps := bundle.ValidationSteps(); steps != nil {
		t.Fatalf("Validation steps are %v", steps)
	}
}

func TestStaticResolverMatchesByPath(t *testing.T) {
	resolver := NewStaticResolver(cssBundle())

	if _, ok := resolver.Resolve(httptest.NewRequest("GET", "/assets/site.css?v=1", nil)); !ok {
		t.Fatal("Bundle not resolved with query string present")
	}
	if _, ok := resolver.Resolve(httptest.NewRequest("GET", "/assets/other.css", nil)); ok {
		t.Fatal("Unknown path resolved")
	}
}
