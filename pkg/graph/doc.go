// Package graph defines the node and data source contracts consumed by the
// render pipeline, plus a small in-memory triple store and YAML loader that
// satisfy them.
//
// The render packages never mutate a DataSource. They only ask whether a node
// carries a property, which types it declares and, for helpers exposed to
// templates, the first value of a property.
package graph
