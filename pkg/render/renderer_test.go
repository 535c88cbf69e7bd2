package render

import (
	"testing"

	"github.com/goliatone/go-nodeview/pkg/graph"
)

type LabelRenderer struct{ Base }

type HTMLSnippetRenderer struct{ Base }

type overriddenTemplate struct{ Base }

func (overriddenTemplate) TemplateIdentifier() string { return "custom/tpl" }

type callbackRenderer struct{ Base }

func (callbackRenderer) Render(Options) Result {
	return Func(func(opts Options) string { return "direct:" + opts.String("name") })
}

func TestSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "LabelRenderer", want: "label_renderer"},
		{in: "HTMLRenderer", want: "html_renderer"},
		{in: "builtin.LabelRenderer", want: "label_renderer"},
		{in: "Views::PersonCard", want: "person_card"},
		{in: "*render.Base", want: "base"},
		{in: "Renderer2D", want: "renderer2_d"},
		{in: "Generic[int]", want: "generic"},
		{in: "already_snake", want: "already_snake"},
	}
	for _, tc := range cases {
		if got := Slug(tc.in); got != tc.want {
			t.Fatalf("slug %q: want %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestName_DerivedFromType(t *testing.T) {
	if got := Name(&LabelRenderer{}); got != "label_renderer" {
		t.Fatalf("pointer receiver: want label_renderer, got %q", got)
	}
	if got := Name(HTMLSnippetRenderer{}); got != "html_snippet_renderer" {
		t.Fatalf("value receiver: want html_snippet_renderer, got %q", got)
	}
	if got := Name(NewFunc("card", 3, nil, nil)); got != "card" {
		t.Fatalf("named renderer: want card, got %q", got)
	}
}

func TestBase_Defaults(t *testing.T) {
	var b Base
	if b.Priority() != DefaultPriority {
		t.Fatalf("want default priority %d, got %d", DefaultPriority, b.Priority())
	}
	if !b.Accept(nil, nil, ContextAny, nil, nil) {
		t.Fatalf("base strategy must accept everything")
	}
}

func TestResolve(t *testing.T) {
	if got := Resolve(LabelRenderer{}, nil); got.IsCallback() || got.Template != "label_renderer" {
		t.Fatalf("default resolve: want template label_renderer, got %+v", got)
	}
	if got := Resolve(overriddenTemplate{}, nil); got.Template != "custom/tpl" {
		t.Fatalf("identified resolve: want custom/tpl, got %q", got.Template)
	}

	result := Resolve(callbackRenderer{}, nil)
	if !result.IsCallback() {
		t.Fatalf("expected callback result")
	}
	if out := result.Callback(Options{"name": "ada"}); out != "direct:ada" {
		t.Fatalf("callback output: want %q, got %q", "direct:ada", out)
	}
}

func TestFuncRenderer(t *testing.T) {
	fn := NewFunc("typed", 4, func(_ graph.Node, _ graph.DataSource, _ Context, types []graph.Identifier, _ Options) bool {
		return graph.HasType(types, "urn:A")
	}, nil)

	if fn.Accept(nil, nil, ContextAny, []graph.Identifier{"urn:B"}, nil) {
		t.Fatalf("did not expect urn:B to match")
	}
	if !fn.Accept(nil, nil, ContextAny, []graph.Identifier{"urn:A"}, nil) {
		t.Fatalf("expected urn:A to match")
	}
	if got := fn.Render(nil).Template; got != "typed" {
		t.Fatalf("nil result falls back to name, got %q", got)
	}
	if NewFunc("never", 1, nil, nil).Accept(nil, nil, ContextAny, nil, nil) {
		t.Fatalf("nil accept must never match")
	}
}
