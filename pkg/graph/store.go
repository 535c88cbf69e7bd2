package graph

import (
	"sort"
	"sync"
)

// Triple is a single subject/predicate/object statement.
type Triple struct {
	Subject   Identifier
	Predicate Identifier
	Object    Node
}

// Store is an in-memory, indexed triple store. It implements DataSource and
// ValueSource and is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	triples  []Triple
	prefixes Prefixes

	// Indexes for fast lookups
	bySubject   map[Identifier][]int
	byPredicate map[Identifier][]int
}

var (
	_ DataSource  = (*Store)(nil)
	_ ValueSource = (*Store)(nil)
)

// NewStore creates an empty store that understands DefaultPrefixes.
func NewStore() *Store {
	return &Store{
		prefixes:    DefaultPrefixes(),
		bySubject:   make(map[Identifier][]int),
		byPredicate: make(map[Identifier][]int),
	}
}

// Add appends triples to the store. Triples with an empty subject, predicate
// or nil object are ignored.
func (s *Store) Add(triples ...Triple) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range triples {
		if t.Subject == "" || t.Predicate == "" || t.Object == nil {
			continue
		}
		idx := len(s.triples)
		s.triples = append(s.triples, t)
		s.bySubject[t.Subject] = append(s.bySubject[t.Subject], idx)
		s.byPredicate[t.Predicate] = append(s.byPredicate[t.Predicate], idx)
	}
}

// Assert is shorthand for Add with a single triple.
func (s *Store) Assert(subject, predicate Identifier, object Node) {
	s.Add(Triple{Subject: subject, Predicate: predicate, Object: object})
}

// AddPrefixes registers extra namespaces used by Expand.
func (s *Store) AddPrefixes(prefixes Prefixes) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefixes = s.prefixes.Merge(prefixes)
}

// Prefixes returns a copy of the namespaces known to the store.
func (s *Store) Prefixes() Prefixes {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Prefixes{}.Merge(s.prefixes)
}

// Expand resolves a compact name using the store prefixes.
func (s *Store) Expand(term string) Identifier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefixes.Expand(term)
}

// Len returns the number of triples held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.triples)
}

// Subjects returns every subject identifier, sorted.
func (s *Store) Subjects() []Identifier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Identifier, 0, len(s.bySubject))
	for subject := range s.bySubject {
		out = append(out, subject)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Resource returns a resource bound to the store. The resource does not need
// to appear as a subject.
func (s *Store) Resource(iri Identifier) *Resource {
	return NewResource(iri, s)
}

// Objects returns the objects of every (subject, predicate) statement in
// insertion order. Resource objects are re-bound to the store.
func (s *Store) Objects(subject, predicate Identifier) []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Node
	for _, idx := range s.bySubject[subject] {
		t := s.triples[idx]
		if t.Predicate != predicate {
			continue
		}
		out = append(out, s.bind(t.Object))
	}
	return out
}

// Contains implements DataSource. Literals never carry properties.
func (s *Store) Contains(node Node, property Identifier) bool {
	subject, ok := subjectOf(node)
	if !ok {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, idx := range s.bySubject[subject] {
		if s.triples[idx].Predicate == property {
			return true
		}
	}
	return false
}

// Types implements DataSource. Resource types are the rdf:type objects;
// literal types come from the literal itself.
func (s *Store) Types(node Node) []Identifier {
	if node == nil {
		return nil
	}
	if !node.IsResource() {
		return node.Types()
	}
	subject, _ := subjectOf(node)
	objects := s.Objects(subject, RDFType)
	if len(objects) == 0 {
		return nil
	}
	types := make([]Identifier, 0, len(objects))
	for _, object := range objects {
		types = append(types, Identifier(object.String()))
	}
	return types
}

// Value implements ValueSource.
func (s *Store) Value(node Node, property Identifier) (string, bool) {
	subject, ok := subjectOf(node)
	if !ok {
		return "", false
	}
	objects := s.Objects(subject, property)
	if len(objects) == 0 {
		return "", false
	}
	return objects[0].String(), true
}

// Stats reports basic counts about the store contents.
func (s *Store) Stats() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]int{
		"triples":    len(s.triples),
		"subjects":   len(s.bySubject),
		"predicates": len(s.byPredicate),
	}
}

func (s *Store) bind(object Node) Node {
	if res, ok := object.(*Resource); ok && res.source == nil {
		return NewResource(res.IRI, s)
	}
	return object
}

func subjectOf(node Node) (Identifier, bool) {
	if node == nil || !node.IsResource() {
		return "", false
	}
	if res, ok := node.(*Resource); ok {
		if res == nil {
			return "", false
		}
		return res.IRI, true
	}
	return Identifier(node.String()), true
}
