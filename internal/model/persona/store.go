package persona

// Registry exposes persona lookup for the command and AI paths.
type Registry interface {
	List() []Persona
	Find(key string) (Persona, bool)
	Keys() []string
}

// MemoryRegistry implements Registry with an in-memory slice, fixed for the
// process's life.
type MemoryRegistry struct {
	items []Persona
}

// NewMemoryRegistry returns a MemoryRegistry preloaded with the supplied personas.
func NewMemoryRegistry(items []Persona) *MemoryRegistry {
	return &MemoryRegistry{items: append([]Persona(nil), items...)}
}

// List returns the registered persona list in seed order.
func (r *MemoryRegistry) List() []Persona {
	return append([]Persona(nil), r.items...)
}

// Find looks up a persona by key.
func (r *MemoryRegistry) Find(key string) (Persona, bool) {
	for _, item := range r.items {
		if item.Key == key {
			return item, true
		}
	}
	return Persona{}, false
}

// Keys returns the persona keys in seed order, used for validation and help text.
func (r *MemoryRegistry) Keys() []string {
	keys := make([]string, 0, len(r.items))
	for _, item := range r.items {
		keys = append(keys, item.Key)
	}
	return keys
}
