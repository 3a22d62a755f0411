/*
Package emitter provides an in-process event emitter with named channels.

# Overview

An Emitter owns a set of channels. Each channel has a name, a Role, a list
of callbacks, a list of middleware and, when sticky, a buffer of past
resolutions that is replayed to late callbacks. Every Emitter starts with
seven builtin channels:

	done, error, always   RoleResolution (sticky)
	catch                 RoleException  (sticky)
	event, notify         RoleNotify
	tap                   RoleObserve

Resolving a resolution channel other than "always" also resolves "always"
with the same arguments. Resolving any channel other than "always" or "tap"
also resolves "tap" with a TapEvent describing the resolution.

# Basic Usage

	em := emitter.New()

	em.OnDone(func(args ...any) error {
	    fmt.Println("done:", args)
	    return nil
	})
	em.OnCatch(func(args ...any) error {
	    fmt.Println("failure:", args)
	    return nil
	})

	_ = em.CallDone("hello")

# Custom Channels

	em, err := emitter.NewWithChannels([]emitter.Descriptor{
	    emitter.Property().Name("progress").Role(emitter.RoleNotify).StickyLast(true).Build(),
	})
	if err != nil {
	    log.Fatal(err)
	}
	_ = em.Call("progress", 42)
	em.On("progress", func(args ...any) error { ... }) // replays 42

# Middleware

Middleware wraps delivery. A stage continues by calling next, possibly with
rewritten arguments. A stage that returns without calling next halts the
resolution silently.

	em.Use(emitter.ChannelDone, func(next emitter.Next, args ...any) error {
	    return next(append(args, "stamped")...)
	})

# Failures

Callback errors, middleware errors and panics never reach the resolver.
They are wrapped in a *DeliveryError and routed to the "catch" channel.
Failures on "catch" itself, and "catch" resolutions nobody listens to, go
to the process-wide unhandled registry (see package unhandled).

# Thread Safety

Channel state is guarded by a mutex that is never held while callbacks or
middleware run, so callbacks may resolve channels re-entrantly and emitters
may be resolved from multiple goroutines.
*/
package emitter
