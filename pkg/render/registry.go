package render

import (
	"fmt"
	"sync"
)

type entry struct {
	name     string
	renderer Renderer
}

// Registry stores renderers in registration order, one instance per variant
// name. Writes replace the backing slice, so readers iterate an immutable
// snapshot and never race with registration.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a renderer. Nil renderers, empty names and duplicate
// variants return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := Name(renderer)
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.entries {
		if existing.name == name {
			return fmt.Errorf("render: renderer %q already registered", name)
		}
	}

	next := make([]entry, len(r.entries), len(r.entries)+1)
	copy(next, r.entries)
	r.entries = append(next, entry{name: name, renderer: renderer})
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderers ...Renderer) {
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			panic(err)
		}
	}
}

// Get retrieves a renderer by variant name.
func (r *Registry) Get(name string) (Renderer, error) {
	for _, e := range r.snapshot() {
		if e.name == name {
			return e.renderer, nil
		}
	}
	return nil, fmt.Errorf("render: renderer %q not found", name)
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	_, err := r.Get(name)
	return err == nil
}

// Renderers returns the registered renderers in registration order.
func (r *Registry) Renderers() []Renderer {
	snapshot := r.snapshot()
	out := make([]Renderer, len(snapshot))
	for idx, e := range snapshot {
		out[idx] = e.renderer
	}
	return out
}

// Names returns the registered variant names in registration order.
func (r *Registry) Names() []string {
	snapshot := r.snapshot()
	out := make([]string, len(snapshot))
	for idx, e := range snapshot {
		out[idx] = e.name
	}
	return out
}

// Len returns the number of registered renderers.
func (r *Registry) Len() int {
	return len(r.snapshot())
}

// ForgetAll empties the registry. Intended for test isolation.
func (r *Registry) ForgetAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

func (r *Registry) snapshot() []entry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries
}
