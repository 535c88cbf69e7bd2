package rules

import (
	"github.com/goliatone/go-nodeview/pkg/graph"
	"github.com/goliatone/go-nodeview/pkg/render"
)

// environment is the per-call view exposed to rule expressions.
type environment struct {
	node     graph.Node
	source   graph.DataSource
	ctx      render.Context
	types    []graph.Identifier
	opts     render.Options
	prefixes graph.Prefixes
}

func (e environment) vars() map[string]any {
	node := ""
	resource := false
	if e.node != nil {
		node = e.node.String()
		resource = e.node.IsResource()
	}
	types := make([]string, 0, len(e.types))
	for _, t := range e.types {
		types = append(types, t.String())
	}
	options := make(map[string]any, len(e.opts))
	for k, v := range e.opts {
		options[k] = v
	}
	return map[string]any{
		"node":     node,
		"types":    types,
		"context":  e.ctx.String(),
		"resource": resource,
		"literal":  e.node != nil && !resource,
		"options":  options,
		"has":      e.has,
		"value":    e.value,
		"is":       e.is,
	}
}

// has reports whether the data source holds prop for the node.
func (e environment) has(prop string) bool {
	if e.source == nil || e.node == nil {
		return false
	}
	return e.source.Contains(e.node, e.prefixes.Expand(prop))
}

// value returns the first value of prop, or "".
func (e environment) value(prop string) string {
	vs, ok := e.source.(graph.ValueSource)
	if !ok || e.node == nil {
		return ""
	}
	v, _ := vs.Value(e.node, e.prefixes.Expand(prop))
	return v
}

// is reports whether the node carries the given (possibly prefixed) type.
func (e environment) is(typ string) bool {
	return graph.HasType(e.types, e.prefixes.Expand(typ))
}
