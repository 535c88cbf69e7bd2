package graph

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// typeKey is the shorthand property for rdf:type in YAML documents.
const typeKey = "a"

// document is the resource-centric YAML layout understood by the loaders:
//
//	prefixes:
//	  ex: http://example.org/
//	resources:
//	  ex:alice:
//	    a: [foaf:Person]
//	    rdfs:label: Alice
//	    foaf:knows: {id: ex:bob}
//	    ex:age: {value: "42", datatype: xsd:integer}
type document struct {
	Prefixes  map[string]string         `yaml:"prefixes"`
	Resources map[string]map[string]any `yaml:"resources"`
}

// LoadFile reads a YAML graph document from disk.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graph: read %s: %w", path, err)
	}
	store, err := LoadYAML(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("graph: load %s: %w", path, err)
	}
	return store, nil
}

// LoadFS reads a YAML graph document from fsys.
func LoadFS(fsys fs.FS, path string) (*Store, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("graph: read %s: %w", path, err)
	}
	store, err := LoadYAML(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("graph: load %s: %w", path, err)
	}
	return store, nil
}

// LoadYAML parses a YAML graph document into a new Store.
func LoadYAML(r io.Reader) (*Store, error) {
	store := NewStore()
	if err := store.ReadYAML(r); err != nil {
		return nil, err
	}
	return store, nil
}

// ReadYAML parses a YAML graph document and adds its statements to s.
// Subjects are processed in sorted order so repeated loads are deterministic.
func (s *Store) ReadYAML(r io.Reader) error {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("graph: decode yaml: %w", err)
	}

	s.AddPrefixes(doc.Prefixes)
	prefixes := s.Prefixes()

	subjects := make([]string, 0, len(doc.Resources))
	for subject := range doc.Resources {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	for _, rawSubject := range subjects {
		subject := prefixes.Expand(rawSubject)
		if subject == "" {
			return fmt.Errorf("graph: empty subject")
		}
		properties := doc.Resources[rawSubject]
		keys := make([]string, 0, len(properties))
		for key := range properties {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			triples, err := s.statements(prefixes, subject, key, properties[key])
			if err != nil {
				return fmt.Errorf("graph: %s %s: %w", rawSubject, key, err)
			}
			s.Add(triples...)
		}
	}
	return nil
}

func (s *Store) statements(prefixes Prefixes, subject Identifier, key string, raw any) ([]Triple, error) {
	predicate := prefixes.Expand(key)
	isType := strings.TrimSpace(key) == typeKey
	if isType {
		predicate = RDFType
	}
	if predicate == "" {
		return nil, fmt.Errorf("empty predicate")
	}

	values, ok := raw.([]any)
	if !ok {
		values = []any{raw}
	}

	triples := make([]Triple, 0, len(values))
	for _, value := range values {
		var (
			object Node
			err    error
		)
		if isType {
			object, err = s.typeObject(prefixes, value)
		} else {
			object, err = s.object(prefixes, value)
		}
		if err != nil {
			return nil, err
		}
		triples = append(triples, Triple{Subject: subject, Predicate: predicate, Object: object})
	}
	return triples, nil
}

func (s *Store) typeObject(prefixes Prefixes, value any) (Node, error) {
	name, ok := value.(string)
	if !ok || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("type must be a non-empty string, got %v", value)
	}
	return NewResource(prefixes.Expand(name), s), nil
}

func (s *Store) object(prefixes Prefixes, value any) (Node, error) {
	switch v := value.(type) {
	case nil:
		return nil, fmt.Errorf("null values are not supported")
	case string:
		return NewLiteral(v), nil
	case bool:
		return Literal{Value: strconv.FormatBool(v), Datatype: XSDBoolean}, nil
	case int:
		return Literal{Value: strconv.Itoa(v), Datatype: XSDInteger}, nil
	case float64:
		return Literal{Value: strconv.FormatFloat(v, 'g', -1, 64), Datatype: XSDDouble}, nil
	case map[string]any:
		if id, ok := v["id"].(string); ok {
			return NewResource(prefixes.Expand(id), s), nil
		}
		lexical, ok := v["value"]
		if !ok {
			return nil, fmt.Errorf("object map needs an id or value key")
		}
		lit := Literal{Value: fmt.Sprint(lexical)}
		if dt, ok := v["datatype"].(string); ok {
			lit.Datatype = prefixes.Expand(dt)
		}
		if lang, ok := v["lang"].(string); ok {
			lit.Lang = strings.TrimSpace(lang)
		}
		return lit, nil
	default:
		return nil, fmt.Errorf("unsupported value %T", value)
	}
}
