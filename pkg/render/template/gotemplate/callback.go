package gotemplate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-nodeview/pkg/graph"
	"github.com/goliatone/go-nodeview/pkg/render"
	"github.com/goliatone/go-nodeview/pkg/render/template"
)

// Helper names injected into every template scope.
const (
	HelperView   = "view"
	HelperViewIn = "view_in"
	HelperRender = "render"
	HelperLabel  = "label"
	HelperValue  = "value"
)

// Callback returns the default render callback backed by engine. The callback
// never fails: missing templates and execution errors come back as inline
// warnings.
func Callback(engine template.TemplateRenderer) render.RenderFunc {
	return func(name string, opts render.Options) string {
		if engine == nil {
			return render.Warning("No template engine configured")
		}
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return render.Warning("Empty template identifier")
		}

		if !isTemplateContent(trimmed) {
			if lookup, ok := engine.(template.Lookup); ok && !lookup.HasTemplate(trimmed) {
				return render.Warning(fmt.Sprintf("Template %q not found", trimmed), searchPathOf(engine))
			}
		}

		out, err := engine.Render(trimmed, Scope(opts))
		if err != nil {
			return render.Warning(fmt.Sprintf("Template %q failed", trimmed), err.Error())
		}
		return out
	}
}

// Scope builds the template-local bindings for opts. Keys containing
// punctuation or symbols are rewritten with "_" ("data-source" becomes
// "data_source"); a key that is already clean wins over a rewritten one.
// Rendering helpers are added last:
//
//	view(node)             renders a nested node through the orchestrator
//	view_in(node, context) same, with an explicit context
//	render(template)       renders another template with the current options
//	label(node)            first rdfs:label / skos:prefLabel, or the node itself
//	value(node, property)  first value of property ("rdfs:comment" style names)
func Scope(opts render.Options) map[string]any {
	scope := make(map[string]any, len(opts)+5)
	var rewritten []string
	for key := range opts {
		clean := SanitizeKey(key)
		if clean == key {
			scope[key] = opts[key]
			continue
		}
		rewritten = append(rewritten, key)
	}
	for _, key := range rewritten {
		clean := SanitizeKey(key)
		if _, exists := scope[clean]; exists {
			continue
		}
		scope[clean] = opts[key]
	}

	viewer, _ := opts[render.KeyNodeRenderer].(render.Viewer)
	source := opts.DataSource()

	scope[HelperView] = func(node any) *pongo2.Value {
		return pongo2.AsSafeValue(viewNode(viewer, node, ""))
	}
	scope[HelperViewIn] = func(node any, ctx string) *pongo2.Value {
		return pongo2.AsSafeValue(viewNode(viewer, node, ctx))
	}
	scope[HelperRender] = func(name string) *pongo2.Value {
		if viewer == nil {
			return pongo2.AsSafeValue(render.Warning("render() is unavailable outside a node renderer"))
		}
		return pongo2.AsSafeValue(viewer.Render(name, opts))
	}
	scope[HelperLabel] = func(node any) string {
		return labelOf(source, node)
	}
	scope[HelperValue] = func(node any, property string) string {
		return valueOf(source, node, property)
	}
	return scope
}

// SanitizeKey replaces punctuation and symbol runes with "_".
func SanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(key))
}

func viewNode(viewer render.Viewer, raw any, ctx string) string {
	if viewer == nil {
		return render.Warning("view() is unavailable outside a node renderer")
	}
	child := render.Options{render.KeyNode: raw}
	if node, ok := asNode(raw); ok {
		child[render.KeyNode] = node
	}
	if trimmed := strings.TrimSpace(ctx); trimmed != "" {
		child[render.KeyContext] = render.Context(trimmed)
	}
	return viewer.View(child)
}

func labelOf(source graph.DataSource, raw any) string {
	node, ok := asNode(raw)
	if !ok {
		return fmt.Sprint(raw)
	}
	if source == nil {
		source = graph.SourceOf(node)
	}
	if label, found := graph.Label(source, node); found {
		return label
	}
	return node.String()
}

func valueOf(source graph.DataSource, raw any, property string) string {
	node, ok := asNode(raw)
	if !ok {
		return ""
	}
	if source == nil {
		source = graph.SourceOf(node)
	}
	values, ok := source.(graph.ValueSource)
	if !ok {
		return ""
	}
	value, _ := values.Value(node, expandProperty(source, property))
	return value
}

func expandProperty(source graph.DataSource, property string) graph.Identifier {
	if expander, ok := source.(interface{ Expand(string) graph.Identifier }); ok {
		return expander.Expand(property)
	}
	return graph.DefaultPrefixes().Expand(property)
}

// asNode recovers a graph.Node from template values, which may arrive
// dereferenced.
func asNode(raw any) (graph.Node, bool) {
	switch v := raw.(type) {
	case graph.Node:
		return v, v != nil
	case graph.Resource:
		return &v, true
	default:
		return nil, false
	}
}

func searchPathOf(engine template.TemplateRenderer) string {
	withPath, ok := engine.(interface{ SearchPath() []string })
	if !ok {
		return ""
	}
	dirs := withPath.SearchPath()
	if len(dirs) == 0 {
		return "searched embedded templates only"
	}
	return "searched: " + strings.Join(dirs, ", ")
}
