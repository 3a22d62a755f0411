package emitter

import (
	"context"
	"runtime/debug"
	"sync"
)

func firstArg(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

// All returns an emitter that resolves "done" with a []any holding the
// first "done" argument of every input, in input order, once all inputs
// are done. The first "error" of any input is forwarded to the result's
// "error" and everything after it is ignored. With no inputs the result
// resolves "done" with an empty slice immediately.
func All(emitters ...*Emitter) *Emitter {
	result := New()
	if len(emitters) == 0 {
		_ = result.CallDone([]any{})
		return result
	}

	var (
		mu        sync.Mutex
		results   = make([]any, len(emitters))
		seen      = make([]bool, len(emitters))
		remaining = len(emitters)
		failed    bool
	)
	fail := func(args ...any) error {
		mu.Lock()
		if failed || remaining == 0 {
			mu.Unlock()
			return nil
		}
		failed = true
		mu.Unlock()
		return result.CallError(args...)
	}

	for i, em := range emitters {
		if em == nil {
			_ = fail(ErrNilTarget)
			break
		}
		if _, err := em.OnDone(func(args ...any) error {
			mu.Lock()
			if failed || seen[i] {
				mu.Unlock()
				return nil
			}
			seen[i] = true
			results[i] = firstArg(args)
			remaining--
			complete := remaining == 0
			mu.Unlock()

			if complete {
				return result.CallDone(results)
			}
			return nil
		}); err != nil {
			_ = fail(err)
			break
		}
		if _, err := em.OnError(fail); err != nil {
			_ = fail(err)
			break
		}
	}
	return result
}

// Some returns an emitter that resolves "done" with a []any once every
// input has resolved "done" or "error". Index i holds the first "done"
// argument of input i, or nil if it failed. Some never resolves "error".
func Some(emitters ...*Emitter) *Emitter {
	result := New()
	if len(emitters) == 0 {
		_ = result.CallDone([]any{})
		return result
	}

	var (
		mu        sync.Mutex
		results   = make([]any, len(emitters))
		seen      = make([]bool, len(emitters))
		remaining = len(emitters)
	)
	settle := func(i int, value any) error {
		mu.Lock()
		if seen[i] {
			mu.Unlock()
			return nil
		}
		seen[i] = true
		results[i] = value
		remaining--
		complete := remaining == 0
		mu.Unlock()

		if complete {
			return result.CallDone(results)
		}
		return nil
	}

	for i, em := range emitters {
		if em == nil {
			_ = settle(i, nil)
			continue
		}
		if _, err := em.OnDone(func(args ...any) error {
			return settle(i, firstArg(args))
		}); err != nil {
			_ = settle(i, nil)
			continue
		}
		if _, err := em.OnError(func(args ...any) error {
			return settle(i, nil)
		}); err != nil {
			_ = settle(i, nil)
		}
	}
	return result
}

// Immediate returns a new emitter whose "done" is already resolved with value.
func Immediate(value any) *Emitter {
	return ImmediateOn(value, RoleResolution, ChannelDone)
}

// ImmediateOn returns a new emitter with the builtin channel name of the
// given role resolved with value. If no builtin matches, nothing is resolved.
func ImmediateOn(value any, role Role, name string) *Emitter {
	em := New()
	for _, h := range em.RoleHandles(role, OriginBuiltin) {
		if h.Name == name {
			_ = h.Resolve(value)
		}
	}
	return em
}

// EmitifyFromAsync adapts a context-aware function returning (T, error).
// Each call runs fn on a new goroutine and returns an emitter that
// resolves "done" with the value or "error" with the error, never both.
// A panic in fn resolves "catch" with a *PanicError.
func EmitifyFromAsync[T any](fn func(ctx context.Context, args ...any) (T, error), opts ...Option) func(ctx context.Context, args ...any) *Emitter {
	return func(ctx context.Context, args ...any) *Emitter {
		em := New(opts...)
		go func() {
			defer func() {
				if v := recover(); v != nil {
					_ = em.CallCatch(&PanicError{Value: v, Stack: string(debug.Stack())})
				}
			}()
			value, err := fn(ctx, args...)
			if err != nil {
				_ = em.CallError(err)
				return
			}
			_ = em.CallDone(value)
		}()
		return em
	}
}
