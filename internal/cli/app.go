package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-nodeview/internal/config"
	"github.com/goliatone/go-nodeview/pkg/graph"
	"github.com/goliatone/go-nodeview/pkg/logging"
	"github.com/goliatone/go-nodeview/pkg/render"
	"github.com/goliatone/go-nodeview/pkg/render/template/gotemplate"
	"github.com/goliatone/go-nodeview/pkg/renderers/builtin"
	"github.com/goliatone/go-nodeview/pkg/renderers/rules"
	"github.com/goliatone/go-nodeview/pkg/view"
)

// app is the wiring shared by every command.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	store    *graph.Store
	registry *render.Registry
	engine   *gotemplate.Engine
	renderer *view.NodeRenderer
}

func loadConfig(opts *globalOpts) (*config.Config, error) {
	if opts.config == "" {
		return config.Default(), nil
	}
	return config.Load(opts.config)
}

func newApp(ctx context.Context, opts *globalOpts) (*app, error) {
	logger := logging.FromContext(ctx)
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if !opts.verbose && cfg.LogLevel != "" {
		logger.SetLevel(logging.ParseLevel(cfg.LogLevel))
	}

	store, err := loadGraphs(append(append([]string(nil), cfg.Graph...), opts.graphs...), cfg.Prefixes)
	if err != nil {
		return nil, err
	}

	registry := render.NewRegistry()
	if !cfg.DisableBuiltins {
		if err := builtin.Register(registry); err != nil {
			return nil, err
		}
	}
	if err := rules.RegisterAll(registry, cfg.Rules, store.Prefixes()); err != nil {
		return nil, err
	}

	dirs := append(append([]string(nil), opts.templates...), cfg.Templates.Dirs...)
	if cfg.Templates.Extension != gotemplate.DefaultExtension {
		logger.Warn("built-in templates use the default extension", "extension", cfg.Templates.Extension)
	}
	engine, err := gotemplate.New(
		gotemplate.WithSearchPath(dirs...),
		gotemplate.WithFS(builtin.TemplatesFS()),
		gotemplate.WithExtension(cfg.Templates.Extension),
		gotemplate.WithGlobalData(cfg.Templates.Globals),
	)
	if err != nil {
		return nil, err
	}

	viewOpts := []view.Option{
		view.WithRegistry(registry),
		view.WithDataSource(store),
		view.WithContext(render.Context(cfg.DefaultContext)),
		view.WithLogger(logger),
		view.WithRenderFunc(gotemplate.Callback(engine)),
	}
	if cfg.HasTheme() {
		viewOpts = append(viewOpts, view.WithThemeSelector(configTheme{cfg.Theme}, cfg.Theme.Name, cfg.Theme.Variant))
	}

	stats := store.Stats()
	logger.Debug("nodeview ready",
		"triples", stats["triples"],
		"subjects", stats["subjects"],
		"renderers", registry.Len(),
		"templates", strings.Join(engine.SearchPath(), ","),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		registry: registry,
		engine:   engine,
		renderer: view.New(viewOpts...),
	}, nil
}

func loadGraphs(paths []string, prefixes map[string]string) (*graph.Store, error) {
	store := graph.NewStore()
	store.AddPrefixes(prefixes)
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open graph %s: %w", path, err)
		}
		err = store.ReadYAML(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("load graph %s: %w", path, err)
		}
	}
	return store, nil
}

// node resolves a compact or absolute IRI against the loaded graph.
func (a *app) node(term string) (graph.Node, error) {
	iri := a.store.Expand(term)
	if iri == "" {
		return nil, fmt.Errorf("node %q is not a valid IRI", term)
	}
	return a.store.Resource(iri), nil
}

// contexts lists the contexts worth offering interactively: the default, the
// configured one and every context a rule targets.
func (a *app) contexts() []string {
	out := []string{string(render.ContextAny), a.cfg.DefaultContext}
	for _, rule := range a.cfg.Rules {
		out = append(out, rule.Contexts...)
	}
	return out
}

// configTheme serves the theme declared in the configuration file.
type configTheme struct {
	cfg config.ThemeConfig
}

func (c configTheme) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name != "" && name != c.cfg.Name {
		return nil, fmt.Errorf("theme %q is not configured", name)
	}
	if variant == "" {
		variant = c.cfg.Variant
	}
	return &theme.Selection{
		Theme:   c.cfg.Name,
		Variant: variant,
		Manifest: &theme.Manifest{
			Name:   c.cfg.Name,
			Tokens: c.cfg.Tokens,
		},
	}, nil
}
