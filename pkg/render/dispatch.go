package render

import (
	"fmt"

	"github.com/goliatone/go-nodeview/pkg/graph"
	"github.com/goliatone/go-nodeview/pkg/logging"
)

// Selection carries the inputs handed to every acceptance predicate. Source is
// resolved once by the caller; predicates must not look it up themselves.
type Selection struct {
	Node    graph.Node
	Source  graph.DataSource
	Context Context
	Types   []graph.Identifier
	Options Options
}

// PanicHandler observes a predicate that panicked during selection.
type PanicHandler func(name string, recovered any)

// SelectOption customises a single Select call.
type SelectOption func(*selectConfig)

type selectConfig struct {
	strict  bool
	onPanic PanicHandler
	logger  logging.Logger
}

// WithStrictAccept lets a panicking predicate propagate instead of treating it
// as a rejection.
func WithStrictAccept() SelectOption {
	return func(cfg *selectConfig) {
		cfg.strict = true
	}
}

// WithPanicHandler registers a hook invoked when a predicate panics and is
// isolated.
func WithPanicHandler(fn PanicHandler) SelectOption {
	return func(cfg *selectConfig) {
		cfg.onPanic = fn
	}
}

// WithSelectLogger logs the winning renderer and isolated predicate panics.
func WithSelectLogger(l logging.Logger) SelectOption {
	return func(cfg *selectConfig) {
		cfg.logger = l
	}
}

// Select returns the accepting renderer with the highest priority. Renderers
// are evaluated once each, in registration order; a later renderer replaces
// the current best only with a strictly greater priority. It returns false
// when no renderer accepts.
//
// By default a predicate that panics is treated as not accepting.
func (r *Registry) Select(sel Selection, options ...SelectOption) (Renderer, bool) {
	cfg := selectConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	cfg.logger = logging.Or(cfg.logger)

	var (
		best         Renderer
		bestName     string
		bestPriority int
		found        bool
	)
	for _, e := range r.snapshot() {
		if !cfg.accepts(e, sel) {
			continue
		}
		priority := e.renderer.Priority()
		if found && priority <= bestPriority {
			continue
		}
		best, bestName, bestPriority, found = e.renderer, e.name, priority, true
	}

	if found {
		cfg.logger.Debug("renderer selected",
			"renderer", bestName,
			"priority", bestPriority,
			"node", describeNode(sel.Node),
			"context", sel.Context,
		)
	}
	return best, found
}

func (cfg selectConfig) accepts(e entry, sel Selection) (accepted bool) {
	if !cfg.strict {
		defer func() {
			if recovered := recover(); recovered != nil {
				accepted = false
				cfg.logger.Warn("renderer predicate panicked",
					"renderer", e.name,
					"panic", fmt.Sprint(recovered),
				)
				if cfg.onPanic != nil {
					cfg.onPanic(e.name, recovered)
				}
			}
		}()
	}
	return e.renderer.Accept(sel.Node, sel.Source, sel.Context, sel.Types, sel.Options)
}

func describeNode(node graph.Node) string {
	if node == nil {
		return "(nil)"
	}
	return node.String()
}
