package provider

// Registry resolves provider implementations by type. It is built once at
// startup from the full set of registered providers and is read-only after
// construction.
type Registry struct {
	providers map[Type]Provider
}

// NewRegistry builds a registry from the given providers. A later provider
// with the same type replaces an earlier one.
func NewRegistry(providers ...Provider) *Registry {
	m := make(map[Type]Provider, len(providers))
	for _, p := range providers {
		if p == nil {
			continue
		}
		m[p.Type()] = p
	}
	return &Registry{providers: m}
}

// Find returns the provider registered for the type. Unknown types return
// (nil, false) so callers can treat "no provider" the same as "local".
func (r *Registry) Find(t Type) (Provider, bool) {
	p, ok := r.providers[t]
	return p, ok
}

// Types returns the registered provider types.
func (r *Registry) Types() []Type {
	types := make([]Type, 0, len(r.providers))
	for t := range r.providers {
		types = append(types, t)
	}
	return types
}
