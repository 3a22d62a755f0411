// Package unhandled holds the process-wide fallback for exceptions no
// emitter handled.
//
// An emitter notifies the registry when its "catch" channel is resolved with
// no callbacks registered, or when a failure escapes a "catch" callback or
// middleware. Handlers run synchronously in the notifying goroutine; a
// panicking handler is recovered and logged.
//
// Basic usage:
//
//	sub := unhandled.Default().Subscribe(func(args ...any) {
//	    log.Printf("unhandled: %v", args)
//	})
//	defer sub.Unsubscribe()
//
// Applications built with fx can install a dedicated registry for the
// lifetime of the app with Module().
package unhandled
