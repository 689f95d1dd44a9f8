package controls

import (
	"strings"
	"sync"
)

// Registry maps element type tags onto their StyleResolvable capability. It
// is constructed once at startup and injected into the components that need
// it; lookups for unknown tags return an empty result so malformed or legacy
// trees degrade gracefully instead of failing traversal.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]StyleResolvable
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		definitions: make(map[string]StyleResolvable),
	}
}

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// element types.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	registerBuiltins(registry)
	return registry
}

// Register adds an element type to the registry. Registrations with an empty
// canonical name are ignored.
func (r *Registry) Register(name string, resolvable StyleResolvable) {
	key := canonicalKey(name)
	if key == "" || resolvable == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.definitions == nil {
		r.definitions = make(map[string]StyleResolvable)
	}
	r.definitions[key] = resolvable
}

// Resolve returns the StyleResolvable registered for an element type.
func (r *Registry) Resolve(name string) (StyleResolvable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resolvable, ok := r.definitions[canonicalKey(name)]
	return resolvable, ok
}

// StyleControls yields the ordered control definitions for an element type.
// Unknown types yield an empty list, never an error.
func (r *Registry) StyleControls(elementType string) []ControlDef {
	resolvable, ok := r.Resolve(elementType)
	if !ok {
		return nil
	}
	return resolvable.StyleControls()
}

// DefaultSettings yields the control-implied defaults for an element type.
// Unknown types yield an empty map.
func (r *Registry) DefaultSettings(elementType string) map[string]any {
	resolvable, ok := r.Resolve(elementType)
	if !ok {
		return map[string]any{}
	}
	return resolvable.DefaultSettings()
}

// Names lists the registered element type tags.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		out = append(out, name)
	}
	return out
}

func canonicalKey(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
