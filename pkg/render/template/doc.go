// Package template defines renderer-agnostic template interfaces and adapters.
// The gotemplate subpackage provides the default pongo2-backed engine and the
// render callback that exposes option bags to templates.
package template
