package nodeview

import (
	"sync"

	"github.com/charmbracelet/log"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-nodeview/pkg/graph"
	"github.com/goliatone/go-nodeview/pkg/logging"
	"github.com/goliatone/go-nodeview/pkg/render"
	"github.com/goliatone/go-nodeview/pkg/renderers/builtin"
	"github.com/goliatone/go-nodeview/pkg/view"
)

// Options is the request bag accepted by View; alias exported via the root
// package for convenience.
type Options = render.Options

// Context selects the rendering scenario ("any", "list", "detail", ...).
type Context = render.Context

// Renderer is the strategy interface implemented by custom renderers.
type Renderer = render.Renderer

// Node and DataSource alias the graph collaborator types.
type (
	Node       = graph.Node
	DataSource = graph.DataSource
)

// NodeRenderer aliases the orchestrator type.
type NodeRenderer = view.NodeRenderer

var builtinsMu sync.Mutex

// RegisterBuiltins adds any missing built-in renderer to the default registry.
// It is safe to call repeatedly, including after render.ForgetAll; New and
// View call it for you.
func RegisterBuiltins() error {
	builtinsMu.Lock()
	defer builtinsMu.Unlock()
	return builtin.Register(render.Default())
}

func ensureBuiltins() {
	if err := RegisterBuiltins(); err != nil {
		log.Error("register built-in renderers", "err", err)
	}
}

// Register adds a custom renderer to the default registry.
func Register(renderer Renderer) error {
	return render.Register(renderer)
}

// New constructs a NodeRenderer over the default registry with the built-in
// renderers registered.
func New(options ...view.Option) *view.NodeRenderer {
	ensureBuiltins()
	return view.New(options...)
}

// View renders through the shared NodeRenderer. It is the simplest entry point
// for callers that just want HTML output.
func View(opts Options) string {
	ensureBuiltins()
	return view.Shared().View(opts)
}

// ListRegisteredNames returns the default registry's variant names in
// registration order.
func ListRegisteredNames() []string {
	return render.ListRegisteredNames()
}

// WithDataSource forwards view.WithDataSource.
func WithDataSource(source DataSource) view.Option {
	return view.WithDataSource(source)
}

// WithContext forwards view.WithContext.
func WithContext(ctx Context) view.Option {
	return view.WithContext(ctx)
}

// WithLogger forwards view.WithLogger.
func WithLogger(logger logging.Logger) view.Option {
	return view.WithLogger(logger)
}

// WithRenderFunc forwards view.WithRenderFunc.
func WithRenderFunc(fn render.RenderFunc) view.Option {
	return view.WithRenderFunc(fn)
}

// WithThemeSelector passes a go-theme selector through so templates receive
// the resolved theme under the "theme" option.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) view.Option {
	return view.WithThemeSelector(selector, name, variant)
}
