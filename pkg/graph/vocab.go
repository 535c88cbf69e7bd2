package graph

import "strings"

// Well known identifiers used across the render pipeline.
const (
	RDFType        Identifier = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	RDFLangString  Identifier = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
	RDFSLabel      Identifier = "http://www.w3.org/2000/01/rdf-schema#label"
	SKOSPrefLabel  Identifier = "http://www.w3.org/2004/02/skos/core#prefLabel"
	XSDString      Identifier = "http://www.w3.org/2001/XMLSchema#string"
	XSDInteger     Identifier = "http://www.w3.org/2001/XMLSchema#integer"
	XSDDouble      Identifier = "http://www.w3.org/2001/XMLSchema#double"
	XSDBoolean     Identifier = "http://www.w3.org/2001/XMLSchema#boolean"
)

// LabelProperties lists the properties that make a node "labelled". Either one
// is sufficient.
var LabelProperties = []Identifier{RDFSLabel, SKOSPrefLabel}

// Prefixes maps compact prefixes (without the colon) to namespace IRIs.
type Prefixes map[string]string

// DefaultPrefixes returns the namespaces every loader and rule understands.
func DefaultPrefixes() Prefixes {
	return Prefixes{
		"rdf":    "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":   "http://www.w3.org/2000/01/rdf-schema#",
		"skos":   "http://www.w3.org/2004/02/skos/core#",
		"foaf":   "http://xmlns.com/foaf/0.1/",
		"dc":     "http://purl.org/dc/terms/",
		"schema": "https://schema.org/",
		"xsd":    "http://www.w3.org/2001/XMLSchema#",
	}
}

// Merge returns a copy of p overlaid with other. Entries in other win.
func (p Prefixes) Merge(other Prefixes) Prefixes {
	out := make(Prefixes, len(p)+len(other))
	for key, value := range p {
		out[key] = value
	}
	for key, value := range other {
		key = strings.TrimSuffix(strings.TrimSpace(key), ":")
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(value)
	}
	return out
}

// Expand converts a compact name ("rdfs:label") or bracketed IRI
// ("<http://...>") into an Identifier. Unknown prefixes and absolute IRIs are
// returned unchanged.
func (p Prefixes) Expand(term string) Identifier {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "<") && strings.HasSuffix(trimmed, ">") {
		return Identifier(trimmed[1 : len(trimmed)-1])
	}
	prefix, local, ok := strings.Cut(trimmed, ":")
	if !ok || strings.HasPrefix(local, "//") {
		return Identifier(trimmed)
	}
	if ns, known := p[prefix]; known {
		return Identifier(ns + local)
	}
	return Identifier(trimmed)
}

// Compact is the inverse of Expand, using the longest matching namespace.
func (p Prefixes) Compact(id Identifier) string {
	value := string(id)
	best, bestNS := "", ""
	for prefix, ns := range p {
		if ns == "" || !strings.HasPrefix(value, ns) {
			continue
		}
		if len(ns) > len(bestNS) {
			best, bestNS = prefix, ns
		}
	}
	if bestNS == "" {
		return value
	}
	return best + ":" + strings.TrimPrefix(value, bestNS)
}
