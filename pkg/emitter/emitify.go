package emitter

import (
	"fmt"
	"reflect"
	"runtime/debug"
)

type emitifyConfig struct {
	resultsAsArray bool
	callbackIndex  int
	options        []Option
}

// EmitifyOption configures Emitify.
type EmitifyOption func(*emitifyConfig)

// WithResultsAsArray controls how callback arguments reach "done": as one
// []any (true, the default) or spread as separate arguments.
func WithResultsAsArray(asArray bool) EmitifyOption {
	return func(c *emitifyConfig) {
		c.resultsAsArray = asArray
	}
}

// WithCallbackIndex sets the parameter position of the callback.
// Default: the last parameter.
func WithCallbackIndex(i int) EmitifyOption {
	return func(c *emitifyConfig) {
		c.callbackIndex = i
	}
}

// WithEmitterOptions sets the options of the emitters Emitify creates.
func WithEmitterOptions(opts ...Option) EmitifyOption {
	return func(c *emitifyConfig) {
		c.options = append(c.options, opts...)
	}
}

// Emitify adapts a callback-style function. fn must be a non-variadic
// function with a func-typed parameter at the callback index. The returned
// function takes fn's remaining arguments in order, calls fn with a
// generated callback, and returns an emitter whose "done" is resolved with
// the callback's arguments.
//
// Arguments that do not fit fn, and panics raised by fn, resolve "catch".
//
//	read := func(path string, cb func(data []byte, err error)) { ... }
//	readE, _ := emitter.Emitify(read)
//	readE("/etc/hosts").OnDone(func(args ...any) error { ... })
func Emitify(fn any, opts ...EmitifyOption) (func(args ...any) *Emitter, error) {
	cfg := emitifyConfig{resultsAsArray: true, callbackIndex: -1}
	for _, opt := range opts {
		opt(&cfg)
	}

	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, ErrNotFunc
	}
	t := v.Type()
	if t.IsVariadic() {
		return nil, fmt.Errorf("%w: variadic functions are not supported", ErrNotFunc)
	}

	idx := cfg.callbackIndex
	if idx < 0 {
		idx = t.NumIn() - 1
	}
	if idx < 0 || idx >= t.NumIn() {
		return nil, fmt.Errorf("%w: %d for %d parameters", ErrCallbackIndex, idx, t.NumIn())
	}
	cbType := t.In(idx)
	if cbType.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: parameter %d is %s", ErrCallbackIndex, idx, cbType)
	}

	return func(args ...any) *Emitter {
		em := New(cfg.options...)

		cb := reflect.MakeFunc(cbType, func(in []reflect.Value) []reflect.Value {
			values := make([]any, len(in))
			for i, a := range in {
				values[i] = a.Interface()
			}
			if cfg.resultsAsArray {
				_ = em.CallDone(values)
			} else {
				_ = em.CallDone(values...)
			}
			out := make([]reflect.Value, cbType.NumOut())
			for i := range out {
				out[i] = reflect.Zero(cbType.Out(i))
			}
			return out
		})

		in, err := emitifyArgs(t, idx, cb, args)
		if err != nil {
			_ = em.CallCatch(err)
			return em
		}
		if err := callRecovered(v, in); err != nil {
			_ = em.CallCatch(err)
		}
		return em
	}, nil
}

func emitifyArgs(t reflect.Type, idx int, cb reflect.Value, args []any) ([]reflect.Value, error) {
	if len(args) != t.NumIn()-1 {
		return nil, fmt.Errorf("%w: want %d arguments, got %d", ErrArgumentMismatch, t.NumIn()-1, len(args))
	}

	in := make([]reflect.Value, t.NumIn())
	next := 0
	for i := range in {
		if i == idx {
			in[i] = cb
			continue
		}
		pt := t.In(i)
		a := args[next]
		next++
		if a == nil {
			if !nillable(pt.Kind()) {
				return nil, fmt.Errorf("%w: argument %d: nil is not assignable to %s", ErrArgumentMismatch, next-1, pt)
			}
			in[i] = reflect.Zero(pt)
			continue
		}
		av := reflect.ValueOf(a)
		if !av.Type().AssignableTo(pt) {
			return nil, fmt.Errorf("%w: argument %d: %s is not assignable to %s", ErrArgumentMismatch, next-1, av.Type(), pt)
		}
		in[i] = av
	}
	return in, nil
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	}
	return false
}

func callRecovered(fn reflect.Value, in []reflect.Value) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v, Stack: string(debug.Stack())}
		}
	}()
	fn.Call(in)
	return nil
}
