// Package errors provides structured error handling for the immediate-mode engine.
//
// Two classes of failure exist. Contract violations (an identity resolving
// to a payload of the wrong kind, a container operation issued against a
// leaf) panic with a [*ReconcileError]; they indicate a bug at a call site
// and are not meant to be recovered from. Everything else is an ordinary
// error value: a [*FrameError] wrapping the cause, reported upward through
// return values and, optionally, to the global [ErrorHandler].
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrResourceDropped is returned when a widget references a font or texture
// that the backend no longer holds.
var ErrResourceDropped = stderrors.New("resource no longer held by the backend")

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindReconcile indicates a reconciliation contract violation.
	KindReconcile
	// KindLayout indicates a layout failure.
	KindLayout
	// KindResource indicates a missing or dropped backend resource.
	KindResource
	// KindInput indicates an input dispatch failure.
	KindInput
	// KindConfig indicates an invalid or unreadable configuration.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindReconcile:
		return "reconcile"
	case KindLayout:
		return "layout"
	case KindResource:
		return "resource"
	case KindInput:
		return "input"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// FrameError represents a structured error raised while running a frame.
type FrameError struct {
	// Op is the operation that failed (e.g., "widgets.Label.Build").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Node describes the node involved, if any.
	Node string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *FrameError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("%s [%s] node=%s: %v", e.Op, e.Kind, e.Node, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.RegisterEvent").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error, so that a
// recovered [*ReconcileError] can still be matched with errors.As.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ReconcileError is the panic value raised when reconciliation finds its
// invariants broken. It is never returned as an ordinary error.
type ReconcileError struct {
	// Op is the protocol step that detected the violation.
	Op string
	// Identity describes the identity that was being reconciled.
	Identity string
	// Want is the kind the declaration expected.
	Want string
	// Got is the kind actually stored in the node.
	Got string
	// StackTrace contains the call stack at the time of the violation.
	StackTrace string
}

func (e *ReconcileError) Error() string {
	if e.Want == "" && e.Got == "" {
		return fmt.Sprintf("%s: invalid operation on %s", e.Op, e.Identity)
	}
	return fmt.Sprintf("%s: identity %s holds %s, declaration wants %s", e.Op, e.Identity, e.Got, e.Want)
}

// ErrorHandler receives errors reported by the engine.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *FrameError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
