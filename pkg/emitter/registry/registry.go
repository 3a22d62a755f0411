package registry

import "sync"

// Ordered is a thread-safe registry that remembers insertion order.
// Keys, Values and Range always walk entries in the order their keys
// were first registered; replacing a value keeps its position.
type Ordered[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
	order   []K
}

// New creates an empty ordered registry.
func New[K comparable, V any]() *Ordered[K, V] {
	return &Ordered[K, V]{
		entries: make(map[K]V),
	}
}

// Register adds a value, or replaces it in place if the key exists.
// It reports whether the key was new.
func (r *Ordered[K, V]) Register(key K, value V) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.entries[key]
	if !exists {
		r.order = append(r.order, key)
	}
	r.entries[key] = value
	return !exists
}

// Get returns the value for a key and whether it exists.
func (r *Ordered[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[key]
	return v, ok
}

// Has returns true if the key exists.
func (r *Ordered[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

// Delete removes a key and reports whether it was present.
func (r *Ordered[K, V]) Delete(key K) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; !ok {
		return false
	}
	delete(r.entries, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns all keys in insertion order.
func (r *Ordered[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]K(nil), r.order...)
}

// Values returns all values in key insertion order.
func (r *Ordered[K, V]) Values() []V {
	r.mu.RLock()
	defer r.mu.RUnlock()
	values := make([]V, 0, len(r.order))
	for _, k := range r.order {
		values = append(values, r.entries[k])
	}
	return values
}

// Len returns the number of entries.
func (r *Ordered[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Range calls fn for each entry in insertion order until fn returns false.
//
// Range walks a snapshot, so fn may call Register or Delete without
// affecting the current iteration.
func (r *Ordered[K, V]) Range(fn func(K, V) bool) {
	r.mu.RLock()
	keys := append([]K(nil), r.order...)
	values := make([]V, len(keys))
	for i, k := range keys {
		values[i] = r.entries[k]
	}
	r.mu.RUnlock()

	for i, k := range keys {
		if !fn(k, values[i]) {
			return
		}
	}
}

// Clear removes every entry.
func (r *Ordered[K, V]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[K]V)
	r.order = nil
}
