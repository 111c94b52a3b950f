// Package errors provides structured error handling for the graft framework.
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
	// KindProtocol indicates a reconciliation protocol violation.
	KindProtocol
	// KindIdentity indicates a global-key identity collision.
	KindIdentity
	// KindParsing indicates a scene or configuration parsing failure.
	KindParsing
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindBuild indicates a failure inside a widget build step.
	KindBuild
)

func (k ErrorKind) String() string {
	switch k {
	case KindProtocol:
		return "protocol"
	case KindIdentity:
		return "identity"
	case KindParsing:
		return "parsing"
	case KindPanic:
		return "panic"
	case KindBuild:
		return "build"
	default:
		return "unknown"
	}
}

// GraftError represents a structured error in the graft framework.
type GraftError struct {
	// Op is the operation that failed (e.g., "core.BuildOwner.FinalizeTree").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Element describes the element involved, if applicable.
	Element string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *GraftError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("%s [%s] element=%s: %v", e.Op, e.Kind, e.Element, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *GraftError) Unwrap() error {
	return e.Err
}

// ProtocolError represents a violation of the reconciliation protocol:
// mutating outside the build scope, double-mounting an element, rebuilding a
// defunct element, or updating with an incompatible widget. These are
// programmer errors and are raised fatally at the point of detection.
type ProtocolError struct {
	// Op is the operation that detected the violation (e.g., "Element.Mount").
	Op string
	// Element describes the offending element.
	Element string
	// Detail explains which rule was broken.
	Detail string
}

func (e *ProtocolError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("protocol violation in %s on %s: %s", e.Op, e.Element, e.Detail)
	}
	return fmt.Sprintf("protocol violation in %s: %s", e.Op, e.Detail)
}

// IdentityError represents two live elements claiming the same global key.
// No winner is chosen automatically; both claimants are reported so the
// author can resolve the conflict.
type IdentityError struct {
	// Key describes the contested global key.
	Key string
	// First describes the element that registered the key first.
	First string
	// Second describes the element that attempted to claim it afterwards.
	Second string
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("duplicate global key %s: held by %s, also claimed by %s", e.Key, e.First, e.Second)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "scene.Load").
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

// ParseError represents a failure to parse a scene or configuration document.
type ParseError struct {
	// Path locates the failing value inside the document (e.g., "children[2].kind").
	Path string
	// DataType is the expected type or value set.
	DataType string
	// Got is the actual data received.
	Got any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s at %s: got %v", e.DataType, e.Path, e.Got)
}

// BuildError represents a failure during a widget build step.
type BuildError struct {
	// Widget is the type name of the widget that failed.
	Widget string
	// Element is the element type (StatelessElement, StatefulElement, etc.).
	Element string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BuildError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s.Build(): %v", e.Widget, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s.Build(): %v", e.Widget, e.Err)
	}
	return fmt.Sprintf("unknown error in %s.Build()", e.Widget)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the graft framework.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *GraftError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleBuildError is called when a widget build fails.
	HandleBuildError(err *BuildError)
}
