package emitter

// On registers cb on the named channel. Sticky history is replayed into cb
// before On returns.
func (e *Emitter) On(name string, cb Callback) (*Subscription, error) {
	c, err := e.channel(name)
	if err != nil {
		return nil, err
	}
	return c.register(cb)
}

// Call resolves the named channel with args. Callback failures are routed
// to "catch" and never returned; the error reports only an unusable emitter
// or an unknown name.
func (e *Emitter) Call(name string, args ...any) error {
	c, err := e.channel(name)
	if err != nil {
		return err
	}
	return c.resolve(args)
}

// Off removes subs from the named channel, or every callback when subs is empty.
func (e *Emitter) Off(name string, subs ...*Subscription) error {
	c, err := e.channel(name)
	if err != nil {
		return err
	}
	return c.remove(subs...)
}

// Use appends middleware to the named channel.
func (e *Emitter) Use(name string, mw Middleware) error {
	c, err := e.channel(name)
	if err != nil {
		return err
	}
	return c.use(mw)
}

// OnDone registers cb on "done".
func (e *Emitter) OnDone(cb Callback) (*Subscription, error) { return e.On(ChannelDone, cb) }

// OnError registers cb on "error".
func (e *Emitter) OnError(cb Callback) (*Subscription, error) { return e.On(ChannelError, cb) }

// OnAlways registers cb on "always".
func (e *Emitter) OnAlways(cb Callback) (*Subscription, error) { return e.On(ChannelAlways, cb) }

// OnCatch registers cb on "catch".
func (e *Emitter) OnCatch(cb Callback) (*Subscription, error) { return e.On(ChannelCatch, cb) }

// OnEvent registers cb on "event".
func (e *Emitter) OnEvent(cb Callback) (*Subscription, error) { return e.On(ChannelEvent, cb) }

// OnNotify registers cb on "notify".
func (e *Emitter) OnNotify(cb Callback) (*Subscription, error) { return e.On(ChannelNotify, cb) }

// CallDone resolves "done" with args.
func (e *Emitter) CallDone(args ...any) error { return e.Call(ChannelDone, args...) }

// CallError resolves "error" with args.
func (e *Emitter) CallError(args ...any) error { return e.Call(ChannelError, args...) }

// CallCatch resolves "catch" with args.
func (e *Emitter) CallCatch(args ...any) error { return e.Call(ChannelCatch, args...) }

// CallEvent resolves "event" with args.
func (e *Emitter) CallEvent(args ...any) error { return e.Call(ChannelEvent, args...) }

// CallNotify resolves "notify" with args.
func (e *Emitter) CallNotify(args ...any) error { return e.Call(ChannelNotify, args...) }

// OnTap registers fn on "tap". Arguments that are not a TapEvent, from a
// direct Call("tap", ...), are wrapped in one named "tap".
func (e *Emitter) OnTap(fn func(TapEvent) error) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return e.On(ChannelTap, func(args ...any) error {
		if len(args) == 1 {
			if ev, ok := args[0].(TapEvent); ok {
				return fn(ev)
			}
		}
		return fn(TapEvent{Name: ChannelTap, Role: RoleObserve, Data: args})
	})
}
