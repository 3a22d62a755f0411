package emitter

import (
	"context"
	"sync"
)

// Settlement is the outcome delivered by Promise.
type Settlement struct {
	// Value is the first argument of the settling resolution, or nil.
	Value any
	// Args are all arguments of the settling resolution.
	Args []any
	// Err is a *RejectionError when "error" or "catch" settled first.
	Err error
}

// Promise returns a channel that receives exactly one Settlement: from the
// first of "done", "error" or "catch" to resolve, including sticky history.
// The channel is closed after the value is sent and the registrations on
// those channels are released.
func (e *Emitter) Promise() (<-chan Settlement, error) {
	ch, _, err := e.promise()
	return ch, err
}

// promise is Promise plus a cancel func that closes the channel without a
// value and releases the registrations if nothing has settled yet.
func (e *Emitter) promise() (<-chan Settlement, func(), error) {
	if e.Destroyed() {
		return nil, nil, ErrDestroyed
	}

	out := make(chan Settlement, 1)
	var (
		mu      sync.Mutex
		settled bool
		subs    []*Subscription
	)
	release := func() {
		for _, s := range subs {
			_ = s.Unsubscribe()
		}
		subs = nil
	}
	finish := func(s *Settlement) {
		mu.Lock()
		defer mu.Unlock()
		if settled {
			return
		}
		settled = true
		if s != nil {
			out <- *s
		}
		close(out)
		release()
	}
	cancel := func() { finish(nil) }

	listeners := []struct {
		name   string
		reject bool
	}{
		{ChannelDone, false},
		{ChannelError, true},
		{ChannelCatch, true},
	}
	for _, l := range listeners {
		sub, err := e.On(l.name, func(args ...any) error {
			s := Settlement{Args: args}
			if len(args) > 0 {
				s.Value = args[0]
			}
			if l.reject {
				s.Value = nil
				s.Err = &RejectionError{Channel: l.name, Args: args}
			}
			finish(&s)
			return nil
		})
		if err != nil {
			mu.Lock()
			release()
			mu.Unlock()
			return nil, nil, err
		}
		mu.Lock()
		subs = append(subs, sub)
		if settled {
			release()
			mu.Unlock()
			return out, cancel, nil
		}
		mu.Unlock()
	}

	return out, cancel, nil
}

// Await blocks until "done", "error" or "catch" resolves, or ctx ends.
// A "done" resolution returns its first argument. A rejection returns a
// *RejectionError. When ctx ends first the registrations are released.
func (e *Emitter) Await(ctx context.Context) (any, error) {
	ch, cancel, err := e.promise()
	if err != nil {
		return nil, err
	}
	select {
	case s := <-ch:
		return s.Value, s.Err
	case <-ctx.Done():
		cancel()
		return nil, ctx.Err()
	}
}
