package emitter

import "errors"

// ErrNilTarget indicates Pipe was called without a target.
var ErrNilTarget = errors.New("pipe target is nil")

// Pipe forwards every resolution of every channel of e to target. A channel
// target lacks is forwarded to target's "tap" as a TapEvent. Sticky history
// is forwarded immediately. Pipe returns target.
//
// Forwarding into a destroyed target fails with ErrDestroyed, which is
// routed to e's "catch".
func (e *Emitter) Pipe(target *Emitter) (*Emitter, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if e.Destroyed() {
		return target, ErrDestroyed
	}

	for _, c := range e.channels.Values() {
		name, role := c.desc.Name, c.desc.Role
		forward := func(args ...any) error {
			return target.HandleFor(name, role).Resolve(args...)
		}
		if _, err := c.register(forward); err != nil {
			return target, err
		}
	}
	return target, nil
}
