// Package registry provides a generic thread-safe registry that preserves
// insertion order.
//
// The emitter uses it for its channel table, where introspection and piping
// must visit channels in the order they were installed, and the unhandled
// exception service uses it for its handler list, where handlers run in
// subscription order.
//
// # Basic Usage
//
//	r := registry.New[string, int]()
//	r.Register("one", 1)
//	r.Register("two", 2)
//	r.Register("one", 10) // replaced in place, still first
//
//	r.Keys()   // ["one", "two"]
//	r.Values() // [10, 2]
//
// # Thread Safety
//
// All methods are safe for concurrent use. Range iterates over a snapshot,
// so the callback may mutate the registry.
package registry
