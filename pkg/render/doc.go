// Package render holds the renderer strategy contracts, the ordered renderer
// registry and the dispatch engine that picks exactly one renderer for a node.
//
// A renderer advertises an acceptance predicate and a priority. Selection walks
// the registry in registration order, keeps the best accepting renderer and
// only replaces it on a strictly greater priority, so the first registered
// renderer wins ties. The winner then yields either a template identifier for
// the template collaborator or a Callback that produces output directly.
//
// Registration is explicit. Applications register their renderers once at
// start-up (see builtin.Register) into either a Registry they own or the
// process-wide Default registry.
package render
