// Package errors provides structured error handling for the Blazr component core.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindAttach indicates a render-sink attachment error.
	KindAttach
	// KindParams indicates a parameter-copy failure.
	KindParams
	// KindHook indicates a lifecycle hook failure.
	KindHook
	// KindRender indicates a render-request error.
	KindRender
	// KindInteraction indicates an interaction-dispatch failure.
	KindInteraction
	// KindDetached indicates a call on a detached component.
	KindDetached
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindAttach:
		return "attach"
	case KindParams:
		return "params"
	case KindHook:
		return "hook"
	case KindRender:
		return "render"
	case KindInteraction:
		return "interaction"
	case KindDetached:
		return "detached"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel errors returned by the lifecycle core.
var (
	// ErrAlreadyAttached is returned when a render sink is attached twice.
	ErrAlreadyAttached = sentinel("render sink already attached")
	// ErrNotAttached is returned when a render is requested before attachment.
	ErrNotAttached = sentinel("render sink not attached")
	// ErrDetached is returned when a host call arrives after detachment.
	ErrDetached = sentinel("component detached")
)

type sentinel string

func (s sentinel) Error() string { return string(s) }

// ComponentError represents a structured error in the component core.
type ComponentError struct {
	// Op is the operation that failed (e.g., "core.SetParameters").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Component is the short instance identifier, if known.
	Component string
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ComponentError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s [%s] component=%s: %v", e.Op, e.Kind, e.Component, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}

// HookError represents a lifecycle hook failure, including recovered panics.
type HookError struct {
	// Component is the short instance identifier.
	Component string
	// TypeName is the declared component type name.
	TypeName string
	// Hook is the hook that failed (e.g., "OnParametersSetAsync").
	Hook string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the failure.
	StackTrace string
	// Timestamp is when the failure occurred.
	Timestamp time.Time
}

func (e *HookError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s.%s(): %v", e.TypeName, e.Hook, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s.%s(): %v", e.TypeName, e.Hook, e.Err)
	}
	return fmt.Sprintf("unknown error in %s.%s()", e.TypeName, e.Hook)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// Handler receives errors reported by the component core.
type Handler interface {
	// HandleError is called when a component error occurs.
	HandleError(err *ComponentError)
	// HandleHookError is called when a lifecycle hook fails.
	HandleHookError(err *HookError)
}
