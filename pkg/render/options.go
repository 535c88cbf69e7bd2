package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-nodeview/pkg/graph"
)

// Context identifies a rendering scenario such as "list" or "detail".
type Context string

// ContextAny is the wildcard context used when nothing more specific is
// requested.
const ContextAny Context = "any"

func (c Context) String() string {
	return string(c)
}

// Reserved option keys. Every other key is passed through untouched.
const (
	KeyNode       = "node"
	KeyContext    = "context"
	KeyDataSource = "data_source"
	// KeyModel is accepted as an alias of KeyDataSource.
	KeyModel = "model"
	KeyTypes = "types"
	// KeyNodeRenderer holds the orchestrator itself so templates can render
	// nested nodes. It is set by the orchestrator and must not be supplied by
	// callers.
	KeyNodeRenderer = "node_renderer"
	KeyTheme        = "theme"
)

// Options is the loosely typed request bag flowing from the caller through
// selection into the template collaborator.
type Options map[string]any

// Clone returns a shallow copy. A nil bag clones to an empty one.
func (o Options) Clone() Options {
	out := make(Options, len(o)+4)
	for key, value := range o {
		out[key] = value
	}
	return out
}

// Has reports whether key is present, even with a nil value.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Node returns the node stored under KeyNode. present distinguishes a missing
// key from a value that is not a graph.Node.
func (o Options) Node() (node graph.Node, present bool) {
	raw, ok := o[KeyNode]
	if !ok || raw == nil {
		return nil, false
	}
	node, _ = raw.(graph.Node)
	return node, true
}

// Context returns the explicit context, accepting Context or string values.
func (o Options) Context() (Context, bool) {
	switch v := o[KeyContext].(type) {
	case Context:
		if v != "" {
			return v, true
		}
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return Context(trimmed), true
		}
	}
	return "", false
}

// DataSource returns the explicit data source, honouring the KeyModel alias.
func (o Options) DataSource() graph.DataSource {
	if source, ok := o[KeyDataSource].(graph.DataSource); ok && source != nil {
		return source
	}
	if source, ok := o[KeyModel].(graph.DataSource); ok && source != nil {
		return source
	}
	return nil
}

// Types returns the types injected by the orchestrator.
func (o Options) Types() []graph.Identifier {
	types, _ := o[KeyTypes].([]graph.Identifier)
	return types
}

// String returns the value under key when it is a string or Stringer.
func (o Options) String(key string) string {
	switch v := o[key].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

// Describe renders the bag as sorted key=value lines for diagnostics.
func (o Options) Describe() string {
	if len(o) == 0 {
		return "(no options)"
	}
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for idx, key := range keys {
		if idx > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(key)
		b.WriteString(" = ")
		b.WriteString(describeValue(key, o[key]))
	}
	return b.String()
}

func describeValue(key string, value any) string {
	if key == KeyNodeRenderer {
		return fmt.Sprintf("(%T)", value)
	}
	switch v := value.(type) {
	case nil:
		return "(nil)"
	case graph.DataSource:
		return fmt.Sprintf("(%T)", v)
	case fmt.Stringer:
		return v.String()
	case []graph.Identifier:
		parts := make([]string, len(v))
		for i, id := range v {
			parts[i] = string(id)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
