package bundlecache

import (
	"encoding/json"
	"testing"
)

func TestHashIsPureFunctionOfContent(t *testing.T) {
	a := NewResponse([]byte("body{}"), "text/css")
	b := NewResponse([]byte("body{}"), "text/css")
	c := NewResponse([]byte("body{color:red}"), "text/css")

	if a.Hash != b.Hash {
		t.Fatalf("Same content hashed differently: %s vs %s", a.Hash, b.Hash)
	}
	if a.Hash == c.Hash {
		t.Fatal("Different content hashed identically")
	}
}

func TestResponseSurvivesSerialization(t *testing.T) {
	// multi-byte characters must round-trip byte for byte
	original := NewResponse([]byte("/* ääkköset 日本語 */"), "text/css")

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatal(err)
	}
	var restored Response
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatal(err)
	}

	if string(restored.Content) != string(original.Content) {
		t.Fatalf("Content is %q", restored.Content)
	}
	if restored.Hash != original.Hash {
		t.Fatalf("Hash is %s", restored.Hash)
	}
	if restored.lastModifiedHeader() != original.lastModifiedHeader() {
		t.Fatalf("Last-Modified is %s", restored.lastModifiedHeader())
	}
}
