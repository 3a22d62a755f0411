package emitter

import "github.com/randalmurphal/emitkit/pkg/emitter/unhandled"

// OnUnhandledException subscribes h to the process-wide unhandled registry.
func OnUnhandledException(h unhandled.Handler) *unhandled.Subscription {
	return unhandled.Default().Subscribe(h)
}

// OffUnhandledException removes a handler added with OnUnhandledException.
func OffUnhandledException(sub *unhandled.Subscription) bool {
	return sub.Unsubscribe()
}
