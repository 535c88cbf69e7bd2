package view

import (
	"github.com/goliatone/go-nodeview/pkg/graph"
	"github.com/goliatone/go-nodeview/pkg/logging"
	"github.com/goliatone/go-nodeview/pkg/render"
)

// SetDataSource replaces the default data source.
func (n *NodeRenderer) SetDataSource(source graph.DataSource) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.source = source
}

// DataSource returns the default data source.
func (n *NodeRenderer) DataSource() graph.DataSource {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.source
}

// SetContext replaces the default context. An empty value restores "any".
func (n *NodeRenderer) SetContext(ctx render.Context) {
	if ctx == "" {
		ctx = render.ContextAny
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.context = ctx
}

// Context returns the default context.
func (n *NodeRenderer) Context() render.Context {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.context
}

// SetLogger replaces the logger; nil disables logging.
func (n *NodeRenderer) SetLogger(logger logging.Logger) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.logger = logger
}

// SetRenderFunc replaces the render callback; nil restores the default.
func (n *NodeRenderer) SetRenderFunc(fn render.RenderFunc) {
	if fn == nil {
		fn = DefaultRenderFunc()
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.renderFn = fn
}

// SetRegistry replaces the registry; nil restores render.Default().
func (n *NodeRenderer) SetRegistry(registry *render.Registry) {
	if registry == nil {
		registry = render.Default()
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.registry = registry
}

// Registry returns the registry used for dispatch.
func (n *NodeRenderer) Registry() *render.Registry {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.registry
}
