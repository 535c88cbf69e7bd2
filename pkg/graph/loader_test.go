package graph

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadFile_People(t *testing.T) {
	store, err := LoadFile(filepath.Join("testdata", "people.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	alice := store.Resource(store.Expand("ex:alice"))
	wantTypes := []Identifier{"http://xmlns.com/foaf/0.1/Person", "http://example.org/Author"}
	if diff := cmp.Diff(wantTypes, alice.Types()); diff != "" {
		t.Fatalf("alice types mismatch (-want +got):\n%s", diff)
	}

	label, ok := Label(store, alice)
	if !ok || label != "Alice" {
		t.Fatalf("want label Alice, got %q (ok=%v)", label, ok)
	}

	age := store.Objects(alice.IRI, "http://example.org/age")
	if len(age) != 1 {
		t.Fatalf("want 1 age, got %d", len(age))
	}
	if diff := cmp.Diff(Literal{Value: "42", Datatype: XSDInteger}, age[0]); diff != "" {
		t.Fatalf("age mismatch (-want +got):\n%s", diff)
	}

	knows := store.Objects(alice.IRI, "http://xmlns.com/foaf/0.1/knows")
	if len(knows) != 1 || !knows[0].IsResource() || knows[0].String() != "http://example.org/bob" {
		t.Fatalf("unexpected foaf:knows objects: %v", knows)
	}

	untyped := store.Resource(store.Expand("ex:untyped"))
	if got := untyped.Types(); len(got) != 0 {
		t.Fatalf("want no types for ex:untyped, got %v", got)
	}
}

func TestLoadFS_MatchesLoadFile(t *testing.T) {
	store, err := LoadFS(os.DirFS("testdata"), "people.yaml")
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if got := len(store.Subjects()); got != 3 {
		t.Fatalf("want 3 subjects, got %d", got)
	}
}

func TestLoadYAML_RejectsBadValues(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("resources:\n  urn:x:\n    urn:p: {nope: 1}\n"))
	if err == nil {
		t.Fatalf("expected error for object map without id/value")
	}
	if !strings.Contains(err.Error(), "graph:") {
		t.Fatalf("expected graph prefix in error, got %v", err)
	}
}

func TestLoadYAML_Empty(t *testing.T) {
	store, err := LoadYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("want empty store, got %d triples", store.Len())
	}
}
