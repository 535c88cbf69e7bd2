package graph

// DataSource holds the property and type facts about nodes.
type DataSource interface {
	// Contains reports whether node has at least one value for property.
	Contains(node Node, property Identifier) bool
	// Types returns the declared types of node.
	Types(node Node) []Identifier
}

// ValueSource is implemented by data sources able to return the first value of
// a property as text.
type ValueSource interface {
	Value(node Node, property Identifier) (string, bool)
}

// SourceOf returns the data source attached to node when node is a resource
// exposing one.
func SourceOf(node Node) DataSource {
	if node == nil || !node.IsResource() {
		return nil
	}
	sourced, ok := node.(Sourced)
	if !ok {
		return nil
	}
	return sourced.Source()
}

// HasLabel reports whether source holds any of the LabelProperties for node.
// A nil source never has labels.
func HasLabel(source DataSource, node Node) bool {
	if source == nil || node == nil {
		return false
	}
	for _, property := range LabelProperties {
		if source.Contains(node, property) {
			return true
		}
	}
	return false
}

// Label returns the first label value found for node, trying LabelProperties in
// order.
func Label(source DataSource, node Node) (string, bool) {
	values, ok := source.(ValueSource)
	if !ok || node == nil {
		return "", false
	}
	for _, property := range LabelProperties {
		if label, found := values.Value(node, property); found {
			return label, true
		}
	}
	return "", false
}
