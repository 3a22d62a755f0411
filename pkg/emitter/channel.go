package emitter

import (
	"context"
	"slices"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/emitkit/pkg/emitter/observability"
)

// Subscription identifies one callback registration.
type Subscription struct {
	cb Callback
	ch *channel
}

// Channel returns the name of the channel the callback is registered on.
func (s *Subscription) Channel() string {
	return s.ch.desc.Name
}

// Unsubscribe removes this registration only.
func (s *Subscription) Unsubscribe() error {
	return s.ch.remove(s)
}

type channel struct {
	em      *Emitter
	desc    Descriptor
	builtin bool

	mu         sync.Mutex
	subs       []*Subscription
	middleware []Middleware
	sticky     [][]any
}

func newChannel(em *Emitter, desc Descriptor, builtin bool) *channel {
	return &channel{em: em, desc: desc, builtin: builtin}
}

func (c *channel) register(cb Callback) (*Subscription, error) {
	if c.em.Destroyed() {
		return nil, ErrDestroyed
	}
	if cb == nil {
		return nil, ErrNilHandler
	}

	sub := &Subscription{cb: cb, ch: c}
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	history := slices.Clone(c.sticky)
	stages := slices.Clone(c.middleware)
	c.mu.Unlock()

	if len(history) == 0 {
		return sub, nil
	}

	observability.LogReplay(c.em.logger, c.desc.Name, len(history))
	c.em.opts.metrics.RecordReplay(c.em.opts.ctx, c.desc.Name, len(history))
	for _, tuple := range history {
		if err := runPipeline(stages, tuple, Next(cb)); err != nil {
			c.em.routeFailure(c.em.opts.ctx, c, tuple, err)
		}
	}
	return sub, nil
}

func (c *channel) remove(subs ...*Subscription) error {
	if c.em.Destroyed() {
		return ErrDestroyed
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(subs) == 0 {
		c.subs = nil
		return nil
	}
	c.subs = slices.DeleteFunc(c.subs, func(s *Subscription) bool {
		return slices.Contains(subs, s)
	})
	return nil
}

func (c *channel) use(mw Middleware) error {
	if c.em.Destroyed() {
		return ErrDestroyed
	}
	if mw == nil {
		return ErrNilHandler
	}

	c.mu.Lock()
	c.middleware = append(c.middleware, mw)
	c.mu.Unlock()
	return nil
}

func (c *channel) resolve(args []any) error {
	if c.em.Destroyed() {
		return ErrDestroyed
	}

	c.mu.Lock()
	listeners := len(c.subs)
	if c.desc.Sticky {
		tuple := slices.Clone(args)
		if c.desc.StickyLast {
			c.sticky = [][]any{tuple}
		} else {
			c.sticky = append(c.sticky, tuple)
		}
	}
	stages := slices.Clone(c.middleware)
	c.mu.Unlock()

	if listeners == 0 {
		c.em.reportUnhandled(c, args)
	}

	ctx, span := c.em.opts.spans.StartResolveSpan(c.em.opts.ctx, c.em.id, c.desc.Name)
	c.em.opts.metrics.RecordResolution(ctx, c.desc.Name, string(c.desc.Role), listeners)

	err := runPipeline(stages, args, c.deliver(ctx))
	if err != nil {
		c.em.routeFailure(ctx, c, args, err)
	}
	c.em.opts.spans.EndSpanWithError(span, err)
	return nil
}

// deliver is the terminal pipeline action: callbacks in registration order,
// then the "always" and "tap" follow-ups. The first failing callback aborts
// the rest.
func (c *channel) deliver(ctx context.Context) Next {
	return func(args ...any) error {
		c.mu.Lock()
		subs := slices.Clone(c.subs)
		c.mu.Unlock()

		for _, sub := range subs {
			if err := sub.cb(args...); err != nil {
				return err
			}
		}
		c.em.opts.spans.AddSpanEvent(ctx, "delivered", attribute.Int("listeners", len(subs)))

		name := c.desc.Name
		if c.desc.Role == RoleResolution && name != ChannelAlways {
			_ = c.em.resolveNamed(ChannelAlways, args)
		}
		if name != ChannelAlways && name != ChannelTap {
			_ = c.em.resolveNamed(ChannelTap, []any{TapEvent{Name: name, Role: c.desc.Role, Data: args}})
		}
		return nil
	}
}

func (c *channel) isEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs) == 0
}

func (c *channel) purge() {
	c.mu.Lock()
	c.subs = nil
	c.middleware = nil
	c.sticky = nil
	c.mu.Unlock()
}

func (c *channel) handle() Handle {
	return Handle{
		Name:        c.desc.Name,
		Role:        c.desc.Role,
		Builtin:     c.builtin,
		Sticky:      c.desc.Sticky,
		StickyLast:  c.desc.StickyLast,
		Description: c.desc.Description,
		Register:    c.register,
		Resolve:     func(args ...any) error { return c.resolve(args) },
		Remove:      c.remove,
		Use:         c.use,
	}
}
