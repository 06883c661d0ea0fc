package core

import "fmt"

// Registry is the catalog of modules available for browsing.
// Lookup is by name; iteration follows insertion order, which is the order the
// catalog builder discovered the modules in.
type Registry struct {
	order  []string
	byName map[string]ModuleDescriptor
}

// NewRegistry creates a registry from the given descriptors.
// Duplicate names are rejected.
func NewRegistry(descriptors ...ModuleDescriptor) (*Registry, error) {
	r := &Registry{byName: make(map[string]ModuleDescriptor, len(descriptors))}
	for _, d := range descriptors {
		if err := r.Add(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry is NewRegistry for statically known catalogs; it panics on duplicates.
func MustRegistry(descriptors ...ModuleDescriptor) *Registry {
	r, err := NewRegistry(descriptors...)
	if err != nil {
		panic(err)
	}
	return r
}

// Add appends a descriptor. Names must be unique across the registry.
func (r *Registry) Add(d ModuleDescriptor) error {
	if d.Name == "" {
		return fmt.Errorf("module descriptor has an empty name")
	}
	if r.byName == nil {
		r.byName = make(map[string]ModuleDescriptor)
	}
	if _, exists := r.byName[d.Name]; exists {
		return fmt.Errorf("duplicate module name %q", d.Name)
	}
	r.order = append(r.order, d.Name)
	r.byName[d.Name] = d
	return nil
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (ModuleDescriptor, bool) {
	if r == nil {
		return ModuleDescriptor{}, false
	}
	d, ok := r.byName[name]
	return d, ok
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Names returns module names in insertion order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// All returns descriptors in insertion order.
func (r *Registry) All() []ModuleDescriptor {
	if r == nil {
		return nil
	}
	all := make([]ModuleDescriptor, 0, len(r.order))
	for _, name := range r.order {
		all = append(all, r.byName[name])
	}
	return all
}
