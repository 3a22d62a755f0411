package emitter

import (
	"runtime/debug"
)

// Callback receives the arguments of a resolution. A non-nil error is
// routed to "catch".
type Callback func(args ...any) error

// Next continues a middleware pipeline with the given arguments.
type Next func(args ...any) error

// Middleware intercepts a resolution. Call next to continue; return
// without calling it to halt.
type Middleware func(next Next, args ...any) error

// runPipeline threads args through stages and into terminal. A panic
// anywhere in the chain is returned as a *PanicError.
func runPipeline(stages []Middleware, args []any, terminal Next) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v, Stack: string(debug.Stack())}
		}
	}()

	var step func(i int) Next
	step = func(i int) Next {
		return func(args ...any) error {
			if i == len(stages) {
				return terminal(args...)
			}
			return stages[i](step(i+1), args...)
		}
	}
	return step(0)(args...)
}
