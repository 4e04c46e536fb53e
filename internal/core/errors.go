package core

import (
	"errors"
	"fmt"
)

// Exported variables.
var (
	// ErrReflectionUnavailable is returned by stubbees that refuse introspection.
	// Capture treats it as "no original method" and carries on.
	ErrReflectionUnavailable = errors.New("reflection unavailable")

	// ErrMethodNotDefined is returned by method lookups for names with no definition.
	ErrMethodNotDefined = errors.New("method not defined")

	// ErrInconsistentState is the parent of every stub lifecycle violation.
	ErrInconsistentState = errors.New("inconsistent stub state")

	ErrAlreadyStubbed      = fmt.Errorf("%w: already stubbed", ErrInconsistentState)
	ErrNotStubbed          = fmt.Errorf("%w: not stubbed", ErrInconsistentState)
	ErrRestorationMismatch = fmt.Errorf("%w: method table not restored", ErrInconsistentState)

	// ErrNoMethod is returned when calling a name the receiver does not respond to.
	ErrNoMethod = errors.New("undefined method")

	// ErrVisibility is returned when a public call reaches a protected or private method.
	ErrVisibility = errors.New("method not visible")

	// ErrNoBlockGiven is the panic value of a call without a block to a
	// method expected to yield.
	ErrNoBlockGiven = errors.New("no block given")

	// ErrUnmetExpectations is returned by Mock.Unmet.
	ErrUnmetExpectations = errors.New("not all expectations were satisfied")

	// ErrUnexpectedInvocation is the root of UnexpectedInvocationError.
	ErrUnexpectedInvocation = errors.New("unexpected invocation")
)

// UnexpectedInvocationError is the panic value raised by Mock.Dispatch when no
// expectation accepts a call.
type UnexpectedInvocationError struct {
	Mock   string
	Method string
	Args   []any
}

func (e *UnexpectedInvocationError) Error() string {
	return fmt.Sprintf("%v: %s.%s%s", ErrUnexpectedInvocation, e.Mock, e.Method, formatArgs(e.Args))
}

func (e *UnexpectedInvocationError) Unwrap() error {
	return ErrUnexpectedInvocation
}
