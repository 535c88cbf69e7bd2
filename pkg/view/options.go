package view

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-nodeview/pkg/graph"
	"github.com/goliatone/go-nodeview/pkg/logging"
	"github.com/goliatone/go-nodeview/pkg/render"
)

// Option customises a NodeRenderer at construction time.
type Option func(*NodeRenderer)

// WithRegistry selects the renderer registry. Defaults to render.Default().
func WithRegistry(registry *render.Registry) Option {
	return func(n *NodeRenderer) {
		n.registry = registry
	}
}

// WithDataSource sets the data source used when neither the options bag nor
// the node supply one.
func WithDataSource(source graph.DataSource) Option {
	return func(n *NodeRenderer) {
		n.source = source
	}
}

// WithContext sets the instance default context.
func WithContext(ctx render.Context) Option {
	return func(n *NodeRenderer) {
		n.context = ctx
	}
}

// WithLogger records every call and its elapsed time. A nil logger disables
// logging.
func WithLogger(logger logging.Logger) Option {
	return func(n *NodeRenderer) {
		n.logger = logger
	}
}

// WithRenderFunc replaces the template callback that receives non-callback
// results.
func WithRenderFunc(fn render.RenderFunc) Option {
	return func(n *NodeRenderer) {
		n.renderFn = fn
	}
}

// WithSelectOptions forwards options to every registry selection, for example
// render.WithStrictAccept.
func WithSelectOptions(options ...render.SelectOption) Option {
	return func(n *NodeRenderer) {
		n.selectOptions = append(n.selectOptions, options...)
	}
}

// WithThemeSelector resolves a go-theme selection on every call and exposes
// it to templates under the "theme" key. Callers can still pass their own
// "theme" option, which wins.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(n *NodeRenderer) {
		n.themeSelector = selector
		n.themeName = name
		n.themeVariant = variant
	}
}
