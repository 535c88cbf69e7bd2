package render

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry. Prefer owning a Registry and
// passing it down; the default exists for applications that wire renderers
// once at start-up.
func Default() *Registry {
	return defaultRegistry
}

// Register adds renderer to the process-wide registry.
func Register(renderer Renderer) error {
	return defaultRegistry.Register(renderer)
}

// MustRegister adds renderers to the process-wide registry, panicking on error.
func MustRegister(renderers ...Renderer) {
	defaultRegistry.MustRegister(renderers...)
}

// ListRegistered returns the process-wide renderers in registration order.
func ListRegistered() []Renderer {
	return defaultRegistry.Renderers()
}

// ListRegisteredNames returns the process-wide renderer names in registration
// order.
func ListRegisteredNames() []string {
	return defaultRegistry.Names()
}

// ForgetAll clears the process-wide registry.
func ForgetAll() {
	defaultRegistry.ForgetAll()
}
