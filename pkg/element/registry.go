package element

import "reflect"

// Resource is state shared by every instance of one leaf type across the
// whole tree: a listener subscription, a loaded font, a shared material.
// Entries outlive individual elements; Close is called once when the whole
// tree is torn down.
type Resource interface {
	Close()
}

// ResourceProvider is implemented by leaf types that want a shared
// Resource. The first instance of the type to be created constructs the
// singleton; every later Create/Update of the same type receives it.
type ResourceProvider interface {
	NewResource() Resource
}

// Registry holds one Resource singleton per leaf type, created lazily on
// first use. Entries are mutated only during the single-threaded tick, so
// no locking happens here; a multi-threaded driver would need to add
// synchronization at this boundary, not inside leaves.
type Registry struct {
	entries map[reflect.Type]Resource
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[reflect.Type]Resource)}
}

// Get returns the shared resource for the leaf's concrete type, creating
// it if the leaf implements ResourceProvider and no entry exists yet.
// Leaves without a ResourceProvider get nil.
func (r *Registry) Get(leaf any) Resource {
	p, ok := leaf.(ResourceProvider)
	if !ok {
		return nil
	}
	t := reflect.TypeOf(leaf)
	if res, ok := r.entries[t]; ok {
		return res
	}
	res := p.NewResource()
	r.entries[t] = res
	return res
}

// Len reports the number of live entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Close closes every entry and empties the registry.
func (r *Registry) Close() {
	for t, res := range r.entries {
		res.Close()
		delete(r.entries, t)
	}
}
