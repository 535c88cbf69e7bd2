package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-nodeview/pkg/graph"
)

func acceptAll(graph.Node, graph.DataSource, Context, []graph.Identifier, Options) bool {
	return true
}

func acceptType(want graph.Identifier) func(graph.Node, graph.DataSource, Context, []graph.Identifier, Options) bool {
	return func(_ graph.Node, _ graph.DataSource, _ Context, types []graph.Identifier, _ Options) bool {
		return graph.HasType(types, want)
	}
}

func selectName(t *testing.T, reg *Registry, sel Selection, options ...SelectOption) string {
	t.Helper()
	winner, ok := reg.Select(sel, options...)
	if !ok {
		return ""
	}
	return Name(winner)
}

func TestSelect_CatchAllWhenNothingHigherAccepts(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(
		Base{},
		NewFunc("typed", 10, acceptType("urn:A"), nil),
	)

	if got := selectName(t, reg, Selection{Types: []graph.Identifier{"urn:B"}}); got != "base" {
		t.Fatalf("want base, got %q", got)
	}
	if got := selectName(t, reg, Selection{}); got != "base" {
		t.Fatalf("empty types should fall back to base, got %q", got)
	}
	if got := selectName(t, reg, Selection{Types: []graph.Identifier{"urn:A"}}); got != "typed" {
		t.Fatalf("want typed, got %q", got)
	}
}

func TestSelect_EqualPriorityFirstRegisteredWins(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(
		NewFunc("first", 5, acceptAll, nil),
		NewFunc("second", 5, acceptAll, nil),
	)

	for i := 0; i < 20; i++ {
		if got := selectName(t, reg, Selection{}); got != "first" {
			t.Fatalf("iteration %d: want first, got %q", i, got)
		}
	}
}

func TestSelect_HigherPriorityWinsRegardlessOfOrder(t *testing.T) {
	orders := map[string][]Renderer{
		"low first": {
			NewFunc("low", 2, acceptAll, nil),
			NewFunc("high", 10, acceptAll, nil),
		},
		"high first": {
			NewFunc("high", 10, acceptAll, nil),
			NewFunc("low", 2, acceptAll, nil),
		},
	}
	for name, renderers := range orders {
		t.Run(name, func(t *testing.T) {
			reg := NewRegistry()
			reg.MustRegister(renderers...)
			if got := selectName(t, reg, Selection{}); got != "high" {
				t.Fatalf("want high, got %q", got)
			}
		})
	}
}

func TestSelect_NoAcceptorReturnsFalse(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(NewFunc("typed", 3, acceptType("urn:A"), nil))

	winner, ok := reg.Select(Selection{})
	if ok || winner != nil {
		t.Fatalf("expected no renderer, got %v", winner)
	}
	if _, ok := NewRegistry().Select(Selection{}); ok {
		t.Fatalf("empty registry never selects")
	}
}

func TestSelect_PassesSelectionToEveryPredicateOnce(t *testing.T) {
	source := graph.NewStore()
	node := source.Resource("urn:n")
	calls := map[string]int{}
	record := func(name string) func(graph.Node, graph.DataSource, Context, []graph.Identifier, Options) bool {
		return func(n graph.Node, s graph.DataSource, ctx Context, _ []graph.Identifier, opts Options) bool {
			calls[name]++
			if n != graph.Node(node) || s != graph.DataSource(source) || ctx != "detail" || opts["extra"] != 1 {
				t.Errorf("%s received unexpected selection", name)
			}
			return false
		}
	}

	reg := NewRegistry()
	reg.MustRegister(NewFunc("a", 1, record("a"), nil), NewFunc("b", 2, record("b"), nil))
	reg.Select(Selection{Node: node, Source: source, Context: "detail", Options: Options{"extra": 1}})

	if calls["a"] != 1 || calls["b"] != 1 {
		t.Fatalf("each predicate should run exactly once, got %v", calls)
	}
}

func TestSelect_PanickingPredicateIsIsolated(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(
		Base{},
		NewFunc("broken", 50, func(graph.Node, graph.DataSource, Context, []graph.Identifier, Options) bool {
			panic("boom")
		}, nil),
	)

	var (
		panicked string
		buf      bytes.Buffer
	)
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	got := selectName(t, reg, Selection{},
		WithPanicHandler(func(name string, _ any) { panicked = name }),
		WithSelectLogger(logger),
	)

	if got != "base" {
		t.Fatalf("panicking renderer must be treated as rejecting, got %q", got)
	}
	if panicked != "broken" {
		t.Fatalf("panic handler not invoked, got %q", panicked)
	}
	if !strings.Contains(buf.String(), "renderer predicate panicked") {
		t.Fatalf("expected panic to be logged, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "renderer selected") {
		t.Fatalf("expected winner to be logged, got %q", buf.String())
	}
}

func TestSelect_StrictAcceptPropagatesPanics(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(NewFunc("broken", 1, func(graph.Node, graph.DataSource, Context, []graph.Identifier, Options) bool {
		panic("boom")
	}, nil))

	defer func() {
		if recovered := recover(); recovered != "boom" {
			t.Fatalf("expected boom panic, got %v", recovered)
		}
	}()
	reg.Select(Selection{}, WithStrictAccept())
	t.Fatalf("strict selection should have panicked")
}
