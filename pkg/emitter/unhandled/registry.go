package unhandled

import (
	"log/slog"
	"sync/atomic"

	"github.com/randalmurphal/emitkit/pkg/emitter/observability"
	"github.com/randalmurphal/emitkit/pkg/emitter/registry"
)

// Handler receives the arguments of an exception nobody handled.
type Handler func(args ...any)

// Subscription identifies one handler registration.
type Subscription struct {
	id  uint64
	reg *Registry
}

// Unsubscribe removes the handler. Reports whether it was still registered.
func (s *Subscription) Unsubscribe() bool {
	if s == nil || s.reg == nil {
		return false
	}
	return s.reg.Unsubscribe(s)
}

// Registry is an ordered list of unhandled-exception handlers.
// It is safe for concurrent use.
type Registry struct {
	handlers *registry.Ordered[uint64, Handler]
	nextID   atomic.Uint64
	logger   *slog.Logger
}

// New creates an empty registry. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		handlers: registry.New[uint64, Handler](),
		logger:   logger.With(slog.String("component", "unhandled")),
	}
}

// Subscribe appends h. Registering the same function twice yields two
// independent subscriptions.
func (r *Registry) Subscribe(h Handler) *Subscription {
	id := r.nextID.Add(1)
	r.handlers.Register(id, h)
	return &Subscription{id: id, reg: r}
}

// Unsubscribe removes the registration behind sub.
func (r *Registry) Unsubscribe(sub *Subscription) bool {
	if sub == nil || sub.reg != r {
		return false
	}
	return r.handlers.Delete(sub.id)
}

// Notify invokes every handler in subscription order with args.
// Handlers added or removed during Notify take effect on the next call.
func (r *Registry) Notify(args ...any) {
	for _, h := range r.handlers.Values() {
		r.invoke(h, args)
	}
}

func (r *Registry) invoke(h Handler, args []any) {
	defer func() {
		if v := recover(); v != nil {
			observability.LogHandlerPanic(r.logger, v)
		}
	}()
	h(args...)
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	return r.handlers.Len()
}

// Reset removes every handler.
func (r *Registry) Reset() {
	r.handlers.Clear()
}

var defaultRegistry atomic.Pointer[Registry]

func init() {
	defaultRegistry.Store(New(nil))
}

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry.Load()
}

// SetDefault replaces the process-wide registry and returns the previous one.
// A nil r is ignored.
func SetDefault(r *Registry) *Registry {
	if r == nil {
		return Default()
	}
	return defaultRegistry.Swap(r)
}
