// Package builtin provides the stock renderer strategies: a label-aware
// renderer, a literal renderer that bypasses templates, and the catch-all
// fallback.
package builtin

import (
	"fmt"
	"html"

	"github.com/goliatone/go-nodeview/pkg/graph"
	"github.com/goliatone/go-nodeview/pkg/render"
)

// Priorities of the built-in renderers.
const (
	LabelPriority    = 10
	LiteralPriority  = 5
	FallbackPriority = render.DefaultPriority
)

// LabelRenderer accepts nodes the data source reports as labelled through
// rdfs:label or skos:prefLabel. Its template is "label_renderer".
type LabelRenderer struct {
	render.Base
}

// Priority implements render.Renderer.
func (LabelRenderer) Priority() int {
	return LabelPriority
}

// Accept implements render.Renderer. A missing data source never accepts.
func (LabelRenderer) Accept(node graph.Node, source graph.DataSource, _ render.Context, _ []graph.Identifier, _ render.Options) bool {
	return graph.HasLabel(source, node)
}

// LiteralRenderer accepts literals and renders their escaped lexical value
// directly, skipping the template collaborator.
type LiteralRenderer struct {
	render.Base
}

// Priority implements render.Renderer.
func (LiteralRenderer) Priority() int {
	return LiteralPriority
}

// Accept implements render.Renderer.
func (LiteralRenderer) Accept(node graph.Node, _ graph.DataSource, _ render.Context, _ []graph.Identifier, _ render.Options) bool {
	return node != nil && !node.IsResource()
}

// Render implements render.Renderable.
func (LiteralRenderer) Render(render.Options) render.Result {
	return render.Func(renderLiteral)
}

func renderLiteral(opts render.Options) string {
	node, _ := opts.Node()
	if node == nil {
		return ""
	}
	lit, ok := node.(graph.Literal)
	if !ok || lit.Lang == "" {
		return html.EscapeString(node.String())
	}
	return fmt.Sprintf(`<span lang="%s">%s</span>`, html.EscapeString(lit.Lang), html.EscapeString(lit.Value))
}

// FallbackRenderer is the catch-all strategy, accepting every node at the
// default priority. Its template is "fallback_renderer".
type FallbackRenderer struct {
	render.Base
}

// Renderers returns fresh instances of the built-in renderers in registration
// order.
func Renderers() []render.Renderer {
	return []render.Renderer{
		FallbackRenderer{},
		LiteralRenderer{},
		LabelRenderer{},
	}
}

// Register adds the built-in renderers to reg, skipping any variant that is
// already present.
func Register(reg *render.Registry) error {
	if reg == nil {
		return fmt.Errorf("builtin: registry is required")
	}
	for _, renderer := range Renderers() {
		if reg.Has(render.Name(renderer)) {
			continue
		}
		if err := reg.Register(renderer); err != nil {
			return fmt.Errorf("builtin: %w", err)
		}
	}
	return nil
}
