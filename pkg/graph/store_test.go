package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStore_ContainsAndTypes(t *testing.T) {
	store := NewStore()
	alice := Identifier("http://example.org/alice")
	store.Assert(alice, RDFType, NewResource("http://xmlns.com/foaf/0.1/Person", nil))
	store.Assert(alice, RDFSLabel, NewLiteral("Alice"))

	node := store.Resource(alice)
	if !store.Contains(node, RDFSLabel) {
		t.Fatalf("expected alice to carry rdfs:label")
	}
	if store.Contains(node, SKOSPrefLabel) {
		t.Fatalf("did not expect skos:prefLabel")
	}

	want := []Identifier{"http://xmlns.com/foaf/0.1/Person"}
	if diff := cmp.Diff(want, node.Types()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_LiteralsHaveNoProperties(t *testing.T) {
	store := NewStore()
	lit := NewLiteral("plain")
	if store.Contains(lit, RDFSLabel) {
		t.Fatalf("literals never contain properties")
	}
	if diff := cmp.Diff([]Identifier{XSDString}, store.Types(lit)); diff != "" {
		t.Fatalf("literal types mismatch (-want +got):\n%s", diff)
	}
	tagged := Literal{Value: "hi", Lang: "en"}
	if got := tagged.Types(); len(got) != 1 || got[0] != RDFLangString {
		t.Fatalf("want rdf:langString, got %v", got)
	}
}

func TestStore_ObjectsRebindResources(t *testing.T) {
	store := NewStore()
	store.Assert("urn:a", "urn:knows", NewResource("urn:b", nil))
	store.Assert("urn:b", RDFType, NewResource("urn:Thing", nil))

	objects := store.Objects("urn:a", "urn:knows")
	if len(objects) != 1 {
		t.Fatalf("want 1 object, got %d", len(objects))
	}
	if SourceOf(objects[0]) != DataSource(store) {
		t.Fatalf("expected object to be bound to the store")
	}
	if diff := cmp.Diff([]Identifier{"urn:Thing"}, objects[0].Types()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
}

func TestLabel_TriesAlternateProperties(t *testing.T) {
	store := NewStore()
	store.Assert("urn:bob", SKOSPrefLabel, NewLiteral("Bob"))

	node := store.Resource("urn:bob")
	if !HasLabel(store, node) {
		t.Fatalf("expected skos:prefLabel to count as a label")
	}
	label, ok := Label(store, node)
	if !ok || label != "Bob" {
		t.Fatalf("want label %q, got %q (ok=%v)", "Bob", label, ok)
	}
	if HasLabel(nil, node) {
		t.Fatalf("nil source must not report labels")
	}
}

func TestPrefixes_ExpandAndCompact(t *testing.T) {
	prefixes := DefaultPrefixes().Merge(Prefixes{"ex:": "http://example.org/"})

	cases := []struct {
		term string
		want Identifier
	}{
		{term: "rdfs:label", want: RDFSLabel},
		{term: "ex:alice", want: "http://example.org/alice"},
		{term: "<urn:x>", want: "urn:x"},
		{term: "http://example.org/raw", want: "http://example.org/raw"},
		{term: "unknown:thing", want: "unknown:thing"},
	}
	for _, tc := range cases {
		if got := prefixes.Expand(tc.term); got != tc.want {
			t.Fatalf("expand %q: want %q, got %q", tc.term, tc.want, got)
		}
	}

	if got := prefixes.Compact(RDFSLabel); got != "rdfs:label" {
		t.Fatalf("compact: want %q, got %q", "rdfs:label", got)
	}
}
