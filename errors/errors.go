// Package errors provides the error classification used across the
// family-tree engine: invariant violations, unresolved references, and
// plain wrapped errors. It mirrors the wrap-with-context pattern used
// throughout this codebase so that log lines and error chains stay
// consistent regardless of which package raised the error.
package errors

import (
	"errors"
	"fmt"
)

// Class classifies an error for handling purposes. The store uses this
// to decide whether a mutation should be refused outright (Invariant) or
// whether the condition is a programming error that must be surfaced to
// logs rather than silently absorbed (Reference).
type Class int

const (
	// ClassInvariant means a mutation would leave the person graph in a
	// state that violates one of the invariants in the data model — the
	// graph is left unchanged and the operation is refused.
	ClassInvariant Class = iota
	// ClassReference means an id appears in a relation slot but does not
	// resolve to a person in the graph. This is always a programming
	// error in a caller, never user input, and is never swallowed.
	ClassReference
	// ClassRateLimited means the caller exceeded a request budget; the
	// operation was refused before doing any work and may be retried.
	ClassRateLimited
)

// String returns the human-readable name of the class.
func (c Class) String() string {
	switch c {
	case ClassInvariant:
		return "invariant"
	case ClassReference:
		return "reference"
	case ClassRateLimited:
		return "rate_limited"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions raised by person, layout,
// store, and editops.
var (
	ErrDanglingReference  = errors.New("id does not resolve to a person in the graph")
	ErrSelfLoop           = errors.New("person would become her own ancestor")
	ErrGenderConflict     = errors.New("gender conflicts with an existing parent-slot reference")
	ErrGenderLocked       = errors.New("person has a real child and cannot change gender")
	ErrReciprocityBroken  = errors.New("relation mirror is missing on the referenced person")
	ErrMultipleFocus      = errors.New("exactly one person may be focused at a time")
	ErrPersonNotFound     = errors.New("person not found")
	ErrMindMapEmpty       = errors.New("person graph is empty")
	ErrNotASpouse         = errors.New("persons are not spouses")
	ErrAlreadyLinked      = errors.New("relation already exists")
	ErrNoCandidate        = errors.New("no link candidate satisfies the request")
	ErrRateLimited        = errors.New("rate limit exceeded")
)

// ClassifiedError wraps an error with its Class so callers can branch on
// errors.As without string matching.
type ClassifiedError struct {
	Class     Class
	Err       error
	Component string
	Method    string
}

// Error implements the error interface.
func (ce *ClassifiedError) Error() string {
	return ce.Err.Error()
}

// Unwrap returns the underlying error so errors.Is/As keep working through
// the chain.
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsInvariant reports whether err (or anything it wraps) is classified as
// an invariant violation.
func IsInvariant(err error) bool {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ClassInvariant
	}
	return false
}

// IsReference reports whether err (or anything it wraps) is classified as
// a dangling-reference error.
func IsReference(err error) bool {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ClassReference
	}
	return false
}

// Wrap creates a standardized error with context following the pattern
// "component.method: action failed: %w". Returns nil if err is nil.
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapInvariant wraps err as an invariant violation with context.
func WrapInvariant(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrapped := Wrap(err, component, method, action)
	return &ClassifiedError{Class: ClassInvariant, Err: wrapped, Component: component, Method: method}
}

// WrapReference wraps err as a dangling-reference error with context.
func WrapReference(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrapped := Wrap(err, component, method, action)
	return &ClassifiedError{Class: ClassReference, Err: wrapped, Component: component, Method: method}
}

// WrapRateLimited wraps err as a rate-limit refusal with context.
func WrapRateLimited(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrapped := Wrap(err, component, method, action)
	return &ClassifiedError{Class: ClassRateLimited, Err: wrapped, Component: component, Method: method}
}

// IsRateLimited reports whether err (or anything it wraps) is classified
// as a rate-limit refusal.
func IsRateLimited(err error) bool {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ClassRateLimited
	}
	return false
}
