package emitter

import (
	"errors"
	"fmt"
)

// Sentinel errors for emitter state and channel lookup.
var (
	// ErrDestroyed indicates an operation on an emitter after Destroy.
	ErrDestroyed = errors.New("emitter destroyed")

	// ErrUnknownChannel indicates a facade call named a channel that does not exist.
	ErrUnknownChannel = errors.New("unknown channel")

	// ErrNilHandler indicates a nil callback or middleware was registered.
	ErrNilHandler = errors.New("callback or middleware is nil")
)

// Sentinel errors for Extend.
var (
	// ErrInvalidRole indicates a descriptor with a missing or unknown role.
	ErrInvalidRole = errors.New("invalid channel role")

	// ErrReservedName indicates a descriptor named after a reserved identifier.
	ErrReservedName = errors.New("reserved channel name")

	// ErrDuplicateChannel indicates a descriptor whose name is already installed.
	ErrDuplicateChannel = errors.New("duplicate channel name")
)

// Sentinel errors for Emitify.
var (
	// ErrNotFunc indicates Emitify was given something other than a non-variadic function.
	ErrNotFunc = errors.New("emitify target is not a function")

	// ErrCallbackIndex indicates the callback position is out of range or not a func parameter.
	ErrCallbackIndex = errors.New("invalid callback index")

	// ErrArgumentMismatch indicates a wrapped call received arguments that do not fit the function.
	ErrArgumentMismatch = errors.New("argument mismatch")
)

// DeliveryError wraps a failure raised while delivering a resolution.
// It is what "catch" callbacks and unhandled handlers receive.
type DeliveryError struct {
	// EmitterID identifies the emitter that owns the channel.
	EmitterID string
	// Channel is the channel being resolved or replayed.
	Channel string
	// Err is the callback or middleware error, or a *PanicError.
	Err error
}

// Error implements the error interface.
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("emitter %s: channel %s: %v", e.EmitterID, e.Channel, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// PanicError captures a panic recovered from a callback or middleware.
type PanicError struct {
	// Value is the value passed to panic().
	Value any
	// Stack is the stack trace at the point of recovery.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// RejectionError is returned by Await and Promise when "error" or "catch"
// settles first.
type RejectionError struct {
	// Channel is "error" or "catch".
	Channel string
	// Args are the resolution arguments.
	Args []any
}

// Error implements the error interface.
func (e *RejectionError) Error() string {
	if len(e.Args) == 0 {
		return fmt.Sprintf("rejected on %s", e.Channel)
	}
	return fmt.Sprintf("rejected on %s: %v", e.Channel, e.Args[0])
}

// Unwrap returns the first argument when it is an error.
func (e *RejectionError) Unwrap() error {
	if len(e.Args) == 0 {
		return nil
	}
	if err, ok := e.Args[0].(error); ok {
		return err
	}
	return nil
}
