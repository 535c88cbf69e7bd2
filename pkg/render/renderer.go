package render

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/goliatone/go-nodeview/pkg/graph"
)

// DefaultPriority is the priority of the catch-all Base strategy. More specific
// renderers should declare a higher value so they win when both accept.
const DefaultPriority = 1

// Renderer is a rendering strategy competing for nodes.
//
// Accept must be a pure, idempotent predicate: it may be called for every
// registered renderer on every selection.
type Renderer interface {
	Accept(node graph.Node, source graph.DataSource, ctx Context, types []graph.Identifier, opts Options) bool
	Priority() int
}

// Named overrides the variant name derived from the Go type.
type Named interface {
	Name() string
}

// Identified overrides the template identifier, which otherwise equals the
// variant name.
type Identified interface {
	TemplateIdentifier() string
}

// Renderable lets a renderer choose its Result per call, for example to return
// a Callback instead of a template identifier.
type Renderable interface {
	Render(opts Options) Result
}

// Callback computes output directly, bypassing the template collaborator.
type Callback func(opts Options) string

// Result is what a renderer hands back once selected: a template identifier
// (or inline template string) or a Callback.
type Result struct {
	Template string
	Callback Callback
}

// Template wraps a template identifier in a Result.
func Template(id string) Result {
	return Result{Template: id}
}

// Func wraps a callback in a Result.
func Func(cb Callback) Result {
	return Result{Callback: cb}
}

// IsCallback reports whether the result bypasses the template collaborator.
func (r Result) IsCallback() bool {
	return r.Callback != nil
}

// Base is the catch-all strategy: it accepts every node at DefaultPriority.
// Embed it to inherit the defaults and override what differs.
type Base struct{}

// Accept implements Renderer.
func (Base) Accept(graph.Node, graph.DataSource, Context, []graph.Identifier, Options) bool {
	return true
}

// Priority implements Renderer.
func (Base) Priority() int {
	return DefaultPriority
}

// Name returns the variant name of r: Named.Name when provided, otherwise the
// slug of the concrete type name.
func Name(r Renderer) string {
	if r == nil {
		return ""
	}
	if named, ok := r.(Named); ok {
		if name := strings.TrimSpace(named.Name()); name != "" {
			return name
		}
	}
	t := reflect.TypeOf(r)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return Slug(t.Name())
}

// TemplateIdentifier returns the template r renders with by default.
func TemplateIdentifier(r Renderer) string {
	if identified, ok := r.(Identified); ok {
		if id := strings.TrimSpace(identified.TemplateIdentifier()); id != "" {
			return id
		}
	}
	return Name(r)
}

// Resolve asks r for its Result, falling back to its template identifier.
func Resolve(r Renderer, opts Options) Result {
	if renderable, ok := r.(Renderable); ok {
		return renderable.Render(opts)
	}
	return Template(TemplateIdentifier(r))
}

// Slug converts a mixed-case type name into a lower-case, underscore separated
// identifier: "LabelRenderer" becomes "label_renderer" and "HTMLRenderer"
// becomes "html_renderer". Any package or module qualification is dropped.
func Slug(name string) string {
	if idx := strings.LastIndexAny(name, "./:"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.Index(name, "["); idx >= 0 {
		name = name[:idx]
	}
	name = strings.TrimLeft(name, "*")

	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(runes) + 4)
	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		case r == '-' || unicode.IsSpace(r):
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FuncRenderer adapts plain functions into a named Renderer, mirroring
// matcher-style registration.
type FuncRenderer struct {
	name     string
	priority int
	accept   func(node graph.Node, source graph.DataSource, ctx Context, types []graph.Identifier, opts Options) bool
	result   func(opts Options) Result
}

// NewFunc builds a FuncRenderer. A nil accept never matches; a nil result
// renders the template named after the renderer.
func NewFunc(name string, priority int, accept func(graph.Node, graph.DataSource, Context, []graph.Identifier, Options) bool, result func(Options) Result) *FuncRenderer {
	return &FuncRenderer{
		name:     strings.TrimSpace(name),
		priority: priority,
		accept:   accept,
		result:   result,
	}
}

func (f *FuncRenderer) Name() string {
	return f.name
}

func (f *FuncRenderer) Priority() int {
	return f.priority
}

func (f *FuncRenderer) Accept(node graph.Node, source graph.DataSource, ctx Context, types []graph.Identifier, opts Options) bool {
	if f.accept == nil {
		return false
	}
	return f.accept(node, source, ctx, types, opts)
}

func (f *FuncRenderer) Render(opts Options) Result {
	if f.result == nil {
		return Template(f.name)
	}
	return f.result(opts)
}

// RenderFunc is the template collaborator: it turns a template identifier (or
// inline template string) plus options into output text.
type RenderFunc func(template string, opts Options) string

// Viewer is implemented by the orchestrator. Templates reach it through
// KeyNodeRenderer to render nested nodes.
type Viewer interface {
	View(opts Options) string
	Render(template string, opts Options) string
}
