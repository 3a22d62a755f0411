package emitter

// Handle exposes the operations of one channel.
type Handle struct {
	Name        string
	Role        Role
	Builtin     bool
	Sticky      bool
	StickyLast  bool
	Description string

	Register func(cb Callback) (*Subscription, error)
	Resolve  func(args ...any) error
	Remove   func(subs ...*Subscription) error
	Use      func(mw Middleware) error
}

// Channels returns a handle for every channel in install order.
func (e *Emitter) Channels() []Handle {
	channels := e.channels.Values()
	out := make([]Handle, 0, len(channels))
	for _, c := range channels {
		out = append(out, c.handle())
	}
	return out
}

// Lookup returns the handle of the named channel.
func (e *Emitter) Lookup(name string) (Handle, bool) {
	c, ok := e.channels.Get(name)
	if !ok {
		return Handle{}, false
	}
	return c.handle(), true
}

// RoleHandles returns the channels with the given role. OriginAll lists
// builtin channels first, then user channels, each in install order.
func (e *Emitter) RoleHandles(role Role, origin Origin) []Handle {
	channels := e.channels.Values()

	var out []Handle
	collect := func(builtin bool) {
		for _, c := range channels {
			if c.desc.Role == role && c.builtin == builtin {
				out = append(out, c.handle())
			}
		}
	}
	switch origin {
	case OriginBuiltin:
		collect(true)
	case OriginUser:
		collect(false)
	default:
		collect(true)
		collect(false)
	}
	return out
}

// HandleFor returns the handle of the named channel. When no such channel
// exists it returns the "tap" handle with Resolve redirected to resolve
// "tap" with TapEvent{Name: name, Role: role, Data: args}.
func (e *Emitter) HandleFor(name string, role Role) Handle {
	if c, ok := e.channels.Get(name); ok {
		return c.handle()
	}

	tap, _ := e.channels.Get(ChannelTap)
	h := tap.handle()
	h.Resolve = func(args ...any) error {
		return tap.resolve([]any{TapEvent{Name: name, Role: role, Data: args}})
	}
	return h
}
