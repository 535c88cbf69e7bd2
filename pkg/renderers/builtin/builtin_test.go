package builtin

import (
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-nodeview/pkg/graph"
	"github.com/goliatone/go-nodeview/pkg/render"
)

func newRegistry(t *testing.T) *render.Registry {
	t.Helper()
	reg := render.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register builtins: %v", err)
	}
	return reg
}

func TestRegister_NamesAndIdempotence(t *testing.T) {
	reg := newRegistry(t)
	want := []string{"fallback_renderer", "literal_renderer", "label_renderer"}
	if diff := cmp.Diff(want, reg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if err := Register(reg); err != nil {
		t.Fatalf("second register: %v", err)
	}
	if reg.Len() != len(want) {
		t.Fatalf("register must skip existing variants, got %d", reg.Len())
	}
	if err := Register(nil); err == nil {
		t.Fatalf("expected error for nil registry")
	}
}

func TestLabelRenderer_Accept(t *testing.T) {
	store := graph.NewStore()
	store.Assert("urn:labelled", graph.RDFSLabel, graph.NewLiteral("L"))
	store.Assert("urn:pref", graph.SKOSPrefLabel, graph.NewLiteral("P"))

	r := LabelRenderer{}
	cases := []struct {
		name   string
		node   graph.Node
		source graph.DataSource
		want   bool
	}{
		{name: "rdfs label", node: store.Resource("urn:labelled"), source: store, want: true},
		{name: "skos prefLabel", node: store.Resource("urn:pref"), source: store, want: true},
		{name: "unlabelled", node: store.Resource("urn:other"), source: store, want: false},
		{name: "nil source", node: store.Resource("urn:labelled"), source: nil, want: false},
		{name: "literal", node: graph.NewLiteral("x"), source: store, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Accept(tc.node, tc.source, render.ContextAny, nil, nil); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
	if r.Priority() != 10 {
		t.Fatalf("label renderer priority must be 10, got %d", r.Priority())
	}
	if got := render.TemplateIdentifier(r); got != "label_renderer" {
		t.Fatalf("want template label_renderer, got %q", got)
	}
}

func TestSelect_LabelBeatsFallback(t *testing.T) {
	reg := newRegistry(t)
	store := graph.NewStore()
	store.Assert("urn:alice", graph.RDFSLabel, graph.NewLiteral("Alice"))

	winner, ok := reg.Select(render.Selection{Node: store.Resource("urn:alice"), Source: store, Context: render.ContextAny})
	if !ok || render.Name(winner) != "label_renderer" {
		t.Fatalf("want label_renderer, got %v (ok=%v)", winner, ok)
	}

	winner, ok = reg.Select(render.Selection{Node: store.Resource("urn:bob"), Source: store, Context: render.ContextAny})
	if !ok || render.Name(winner) != "fallback_renderer" {
		t.Fatalf("want fallback_renderer, got %v (ok=%v)", winner, ok)
	}

	winner, ok = reg.Select(render.Selection{Node: graph.NewLiteral("5"), Source: store, Context: render.ContextAny})
	if !ok || render.Name(winner) != "literal_renderer" {
		t.Fatalf("want literal_renderer, got %v (ok=%v)", winner, ok)
	}
}

func TestLiteralRenderer_CallbackEscapes(t *testing.T) {
	result := render.Resolve(LiteralRenderer{}, nil)
	if !result.IsCallback() {
		t.Fatalf("literal renderer must bypass templates")
	}
	if got := result.Callback(render.Options{render.KeyNode: graph.NewLiteral("a<b")}); got != "a&lt;b" {
		t.Fatalf("want escaped literal, got %q", got)
	}
	tagged := graph.Literal{Value: "bonjour", Lang: "fr"}
	if got := result.Callback(render.Options{render.KeyNode: tagged}); got != `<span lang="fr">bonjour</span>` {
		t.Fatalf("unexpected tagged literal output %q", got)
	}
}

func TestTemplatesFS_HasBuiltinTemplates(t *testing.T) {
	for _, r := range Renderers() {
		if render.Resolve(r, nil).IsCallback() {
			continue
		}
		name := render.TemplateIdentifier(r) + ".tpl"
		if _, err := fs.Stat(TemplatesFS(), name); err != nil {
			t.Fatalf("missing embedded template %s: %v", name, err)
		}
	}
}
