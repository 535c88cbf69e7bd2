package graph

import (
	"fmt"
	"strings"
)

// Identifier names a graph entity, property or type. Identifiers are full IRIs
// once they reach a Store; use Prefixes.Expand to turn compact names into
// Identifiers.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Node is an opaque reference to a resource or literal.
type Node interface {
	fmt.Stringer
	// Types returns the type identifiers declared for the node.
	Types() []Identifier
	// IsResource distinguishes resources from literals.
	IsResource() bool
}

// Sourced is implemented by nodes that remember the data source they were
// loaded from.
type Sourced interface {
	Source() DataSource
}

// Resource is an IRI-identified node optionally bound to the data source that
// produced it.
type Resource struct {
	IRI    Identifier
	source DataSource
}

// NewResource builds a resource bound to source. A nil source yields a detached
// resource whose Types are always empty.
func NewResource(iri Identifier, source DataSource) *Resource {
	return &Resource{IRI: iri, source: source}
}

func (r *Resource) String() string {
	if r == nil {
		return ""
	}
	return string(r.IRI)
}

// Types asks the bound data source for the resource's rdf:type values.
func (r *Resource) Types() []Identifier {
	if r == nil || r.source == nil {
		return nil
	}
	return r.source.Types(r)
}

func (r *Resource) IsResource() bool {
	return true
}

// Source returns the data source the resource was loaded from, if any.
func (r *Resource) Source() DataSource {
	if r == nil {
		return nil
	}
	return r.source
}

// Literal is a lexical value with an optional datatype or language tag.
type Literal struct {
	Value    string
	Datatype Identifier
	Lang     string
}

// NewLiteral builds a plain string literal.
func NewLiteral(value string) Literal {
	return Literal{Value: value}
}

func (l Literal) String() string {
	return l.Value
}

// Types returns the literal datatype. Language tagged literals report
// rdf:langString and untyped literals report xsd:string.
func (l Literal) Types() []Identifier {
	switch {
	case l.Datatype != "":
		return []Identifier{l.Datatype}
	case strings.TrimSpace(l.Lang) != "":
		return []Identifier{RDFLangString}
	default:
		return []Identifier{XSDString}
	}
}

func (l Literal) IsResource() bool {
	return false
}

// HasType reports whether types contains want.
func HasType(types []Identifier, want Identifier) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
