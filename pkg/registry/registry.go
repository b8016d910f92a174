package registry

import "sync"

// Registry is a named slot for values shared between tasks, typically
// channels. It is owned by whoever constructs it and passed by reference;
// there is no package-level instance.
type Registry struct {
	mux   sync.RWMutex
	slots map[string]any
}

func New() *Registry {
	return &Registry{
		slots: make(map[string]any),
	}
}

// Get looks up a key's value
func (r *Registry) Get(key string) (any, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	if v, ok := r.slots[key]; ok {
		return v, true
	}
	return nil, false
}

// GetDefault looks up a key's value, returns def if not exist
func (r *Registry) GetDefault(key string, def any) any {
	v, ok := r.Get(key)
	if !ok {
		return def
	}
	return v
}

// Set sets the key-value entry
func (r *Registry) Set(key string, value any) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.slots[key] = value
}

// Range calls fn for each entry until fn returns false. The iteration
// order is unspecified.
func (r *Registry) Range(fn func(key string, value any) bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	for k, v := range r.slots {
		if !fn(k, v) {
			return
		}
	}
}

// Remove removes the key's entry
func (r *Registry) Remove(key string) {
	r.mux.Lock()
	defer r.mux.Unlock()
	delete(r.slots, key)
}
