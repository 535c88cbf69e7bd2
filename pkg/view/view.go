package view

import (
	"fmt"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-nodeview/pkg/graph"
	"github.com/goliatone/go-nodeview/pkg/logging"
	"github.com/goliatone/go-nodeview/pkg/render"
	"github.com/goliatone/go-nodeview/pkg/render/template/gotemplate"
	"github.com/goliatone/go-nodeview/pkg/renderers/builtin"
)

// NodeRenderer renders graph nodes by dispatching to registered strategies.
// Configuration may change between calls; every View works on a consistent
// snapshot of it.
type NodeRenderer struct {
	mu            sync.RWMutex
	registry      *render.Registry
	source        graph.DataSource
	context       render.Context
	logger        logging.Logger
	renderFn      render.RenderFunc
	selectOptions []render.SelectOption
	themeSelector theme.ThemeSelector
	themeName     string
	themeVariant  string
}

var _ render.Viewer = (*NodeRenderer)(nil)

// New constructs a NodeRenderer. Without options it dispatches over
// render.Default(), uses the "any" context and renders templates with the
// embedded built-in set.
func New(options ...Option) *NodeRenderer {
	n := &NodeRenderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(n)
	}
	n.applyDefaults()
	return n
}

var (
	shared     *NodeRenderer
	sharedOnce sync.Once
)

// Shared returns the process-wide NodeRenderer, created on first use with the
// defaults of New. Instances returned by New are independent of it.
func Shared() *NodeRenderer {
	sharedOnce.Do(func() {
		shared = New()
	})
	return shared
}

func (n *NodeRenderer) applyDefaults() {
	if n.registry == nil {
		n.registry = render.Default()
	}
	if n.context == "" {
		n.context = render.ContextAny
	}
	if n.renderFn == nil {
		n.renderFn = DefaultRenderFunc()
	}
}

// DefaultRenderFunc returns the pongo2 callback over the embedded built-in
// templates.
func DefaultRenderFunc() render.RenderFunc {
	engine, err := gotemplate.New(gotemplate.WithFS(builtin.TemplatesFS()))
	if err != nil {
		return func(string, render.Options) string {
			return render.Warning("Template engine unavailable", err.Error())
		}
	}
	return gotemplate.Callback(engine)
}

type snapshot struct {
	registry      *render.Registry
	source        graph.DataSource
	context       render.Context
	logger        logging.Logger
	renderFn      render.RenderFunc
	selectOptions []render.SelectOption
	themeSelector theme.ThemeSelector
	themeName     string
	themeVariant  string
}

func (n *NodeRenderer) snapshot() snapshot {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return snapshot{
		registry:      n.registry,
		source:        n.source,
		context:       n.context,
		logger:        logging.Or(n.logger),
		renderFn:      n.renderFn,
		selectOptions: n.selectOptions,
		themeSelector: n.themeSelector,
		themeName:     n.themeName,
		themeVariant:  n.themeVariant,
	}
}

// View renders the node found under the "node" option.
func (n *NodeRenderer) View(opts render.Options) string {
	cfg := n.snapshot()
	timer := logging.Start(cfg.logger)
	cfg.logger.Debug("view", "options", len(opts))

	node, present := opts.Node()
	if !present {
		timer.Done("view finished", "outcome", "missing node")
		return render.Warning("No node to render", opts.Describe())
	}
	if node == nil {
		timer.Done("view finished", "outcome", "invalid node")
		return render.Warning(fmt.Sprintf("Cannot render a %T, expected a graph node", opts[render.KeyNode]), opts.Describe())
	}

	ctx, ok := opts.Context()
	if !ok {
		ctx = cfg.context
	}
	source := resolveSource(opts, node, cfg.source)
	types := typesOf(node, source)

	bag := opts.Clone()
	bag[render.KeyNode] = node
	bag[render.KeyContext] = ctx
	bag[render.KeyTypes] = types
	if source != nil {
		bag[render.KeyDataSource] = source
	}
	bag[render.KeyNodeRenderer] = n
	if !bag.Has(render.KeyTheme) {
		if selected := cfg.selectTheme(); selected != nil {
			bag[render.KeyTheme] = selected
		}
	}

	selectOptions := append([]render.SelectOption{render.WithSelectLogger(cfg.logger)}, cfg.selectOptions...)
	winner, found := cfg.registry.Select(render.Selection{
		Node:    node,
		Source:  source,
		Context: ctx,
		Types:   types,
		Options: bag,
	}, selectOptions...)
	if !found {
		timer.Done("view finished", "node", node.String(), "outcome", "no renderer")
		return render.Warning(fmt.Sprintf("No renderer accepts %s in context %q", node.String(), ctx), bag.Describe())
	}

	result := render.Resolve(winner, bag)
	var out string
	if result.IsCallback() {
		out = result.Callback(bag)
	} else {
		out = cfg.renderFn(result.Template, bag)
	}
	timer.Done("view finished", "node", node.String(), "renderer", render.Name(winner), "context", ctx)
	return out
}

// Render invokes the render callback directly with opts.
func (n *NodeRenderer) Render(template string, opts render.Options) string {
	cfg := n.snapshot()
	timer := logging.Start(cfg.logger)
	out := cfg.renderFn(template, opts)
	timer.Done("render finished", "template", template)
	return out
}

// SelectRenderer reports which renderer View would pick for node in ctx,
// resolving the data source and types the same way. An empty ctx uses the
// instance default.
func (n *NodeRenderer) SelectRenderer(node graph.Node, ctx render.Context, opts render.Options) (render.Renderer, bool) {
	if node == nil {
		return nil, false
	}
	cfg := n.snapshot()
	if ctx == "" {
		ctx = cfg.context
	}
	source := resolveSource(opts, node, cfg.source)
	return cfg.registry.Select(render.Selection{
		Node:    node,
		Source:  source,
		Context: ctx,
		Types:   typesOf(node, source),
		Options: opts,
	}, cfg.selectOptions...)
}

func (cfg snapshot) selectTheme() map[string]any {
	if cfg.themeSelector == nil {
		return nil
	}
	selection, err := cfg.themeSelector.Select(cfg.themeName, cfg.themeVariant)
	if err != nil || selection == nil {
		cfg.logger.Warn("theme selection failed", "theme", cfg.themeName, "variant", cfg.themeVariant, "err", err)
		return nil
	}
	out := map[string]any{
		"name":    selection.Theme,
		"variant": selection.Variant,
	}
	if selection.Manifest != nil {
		out["tokens"] = selection.Manifest.Tokens
	}
	return out
}

// resolveSource applies the most specific wins order: explicit option, the
// node's own source when it is a resource, then the fallback.
func resolveSource(opts render.Options, node graph.Node, fallback graph.DataSource) graph.DataSource {
	if source := opts.DataSource(); source != nil {
		return source
	}
	if node.IsResource() {
		if source := graph.SourceOf(node); source != nil {
			return source
		}
	}
	return fallback
}

func typesOf(node graph.Node, source graph.DataSource) []graph.Identifier {
	if source != nil {
		return source.Types(node)
	}
	return node.Types()
}
