package emitter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/randalmurphal/emitkit/pkg/emitter/observability"
	"github.com/randalmurphal/emitkit/pkg/emitter/registry"
	"github.com/randalmurphal/emitkit/pkg/emitter/unhandled"
)

// Emitter is a set of named channels. Create one with New or NewWithChannels.
// It is safe for concurrent use.
type Emitter struct {
	id     string
	opts   options
	logger *slog.Logger

	// extendMu serializes Extend so validation and install are atomic.
	extendMu  sync.Mutex
	channels  *registry.Ordered[string, *channel]
	destroyed atomic.Bool
}

// New creates an Emitter with the builtin channels.
func New(opts ...Option) *Emitter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.NewString()
	e := &Emitter{
		id:       id,
		opts:     o,
		logger:   observability.EnrichLogger(o.logger, id),
		channels: registry.New[string, *channel](),
	}
	for _, d := range BuiltinDescriptors() {
		e.channels.Register(d.Name, newChannel(e, d.normalize(), true))
	}
	return e
}

// NewWithChannels creates an Emitter with the builtin channels plus descs.
// It fails if any descriptor is invalid; see Extend.
func NewWithChannels(descs []Descriptor, opts ...Option) (*Emitter, error) {
	e := New(opts...)
	if _, err := e.Extend(descs...); err != nil {
		return nil, err
	}
	return e, nil
}

// ID returns the emitter's unique identifier.
func (e *Emitter) ID() string {
	return e.id
}

// Extend installs user channels. Descriptors without a name are skipped.
// Every problem in descs is reported in one aggregated error, and nothing
// is installed unless all descriptors are valid. Extend returns e so calls
// can be chained.
func (e *Emitter) Extend(descs ...Descriptor) (*Emitter, error) {
	if e.Destroyed() {
		return e, ErrDestroyed
	}

	e.extendMu.Lock()
	defer e.extendMu.Unlock()

	var (
		errs    error
		pending []Descriptor
		seen    = make(map[string]struct{}, len(descs))
	)
	for _, d := range descs {
		if d.Name == "" {
			continue
		}
		d = d.normalize()
		if err := d.Validate(); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if _, dup := seen[d.Name]; dup || e.channels.Has(d.Name) {
			errs = multierr.Append(errs, fmt.Errorf("channel %q: %w", d.Name, ErrDuplicateChannel))
			continue
		}
		seen[d.Name] = struct{}{}
		pending = append(pending, d)
	}
	if errs != nil {
		return e, errs
	}

	for _, d := range pending {
		e.channels.Register(d.Name, newChannel(e, d, false))
	}
	return e, nil
}

// Destroy purges callbacks, middleware and sticky history of every channel.
// Every later operation fails with ErrDestroyed. Destroy is idempotent.
func (e *Emitter) Destroy() {
	if !e.destroyed.CompareAndSwap(false, true) {
		return
	}
	channels := e.channels.Values()
	for _, c := range channels {
		c.purge()
	}
	observability.LogDestroyed(e.logger, len(channels))
}

// Destroyed reports whether Destroy has been called.
func (e *Emitter) Destroyed() bool {
	return e.destroyed.Load()
}

func (e *Emitter) channel(name string) (*channel, error) {
	if e.Destroyed() {
		return nil, ErrDestroyed
	}
	c, ok := e.channels.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
	}
	return c, nil
}

func (e *Emitter) resolveNamed(name string, args []any) error {
	c, err := e.channel(name)
	if err != nil {
		return err
	}
	return c.resolve(args)
}

func (e *Emitter) unhandledRegistry() *unhandled.Registry {
	if e.opts.unhandled != nil {
		return e.opts.unhandled
	}
	return unhandled.Default()
}

// reportUnhandled runs when c is resolved with no callbacks registered.
func (e *Emitter) reportUnhandled(c *channel, args []any) {
	switch {
	case c.desc.Name == ChannelError:
		e.opts.clock.AfterFunc(e.opts.diagnosticDelay, func() {
			if e.Destroyed() || !c.isEmpty() {
				return
			}
			e.opts.metrics.RecordUnhandled(e.opts.ctx, "error")
			if e.opts.limiter.Allow() {
				observability.LogUnhandledError(e.logger, c.desc.Name, args)
			}
		})
	case c.desc.Name == ChannelCatch:
		e.opts.metrics.RecordUnhandled(e.opts.ctx, "catch")
		if e.opts.limiter.Allow() {
			observability.LogUnhandledException(e.logger, c.desc.Name, args)
		}
		e.unhandledRegistry().Notify(args...)
	case c.desc.Role == RoleException:
		e.opts.metrics.RecordUnhandled(e.opts.ctx, "exception")
		if e.opts.limiter.Allow() {
			observability.LogUnhandledException(e.logger, c.desc.Name, args)
		}
	}
}

// routeFailure forwards a delivery failure of args on c to "catch". Failures
// that "catch" cannot absorb go to the unhandled registry instead.
func (e *Emitter) routeFailure(ctx context.Context, c *channel, args []any, err error) {
	derr := &DeliveryError{EmitterID: e.id, Channel: c.desc.Name, Err: err}
	e.opts.metrics.RecordDeliveryFailure(ctx, c.desc.Name)

	if bypassesCatch(c, args) {
		observability.LogDeliveryFailure(e.logger, c.desc.Name, "unhandled", err)
		e.unhandledRegistry().Notify(derr)
		return
	}

	observability.LogDeliveryFailure(e.logger, c.desc.Name, ChannelCatch, err)
	if rerr := e.resolveNamed(ChannelCatch, []any{derr}); rerr != nil {
		e.unhandledRegistry().Notify(derr)
	}
}

// bypassesCatch reports whether resolving "catch" for a failure on c would
// feed back into c: failures on "catch" itself, and on "tap" while it
// observes a "catch" resolution.
func bypassesCatch(c *channel, args []any) bool {
	switch c.desc.Name {
	case ChannelCatch:
		return true
	case ChannelTap:
		if len(args) == 1 {
			ev, ok := args[0].(TapEvent)
			return ok && ev.Name == ChannelCatch
		}
	}
	return false
}
