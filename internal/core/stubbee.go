package core

import (
	"fmt"
	"strings"
)

// ExpectationRegistry receives every call routed through an interceptor and
// tracks what the test expects of the stubbee.
type ExpectationRegistry interface {
	// Dispatch handles a call to methodName and returns its results.
	Dispatch(methodName string, args []any, block Block) []any
	// Unstub forgets whatever the registry holds for methodName.
	Unstub(methodName string)
	// AnyExpectations reports whether the registry still holds expectations.
	AnyExpectations() bool
}

// Stubbee is anything whose methods can be intercepted.
//
// LookupMethod and VisibilityOf may fail with ErrReflectionUnavailable for
// stubbees that refuse introspection; interceptors treat that as "nothing to
// restore" rather than a failure.
type Stubbee interface {
	fmt.Stringer

	LookupMethod(name string) (*Method, error)
	VisibilityOf(name string) (Visibility, error)
	// OwnsMethod reports whether name is defined in the stubbee's own table
	// rather than inherited from somewhere else.
	OwnsMethod(name string) bool

	RemoveMethod(name string) error
	DefineMethod(name string, method *Method) error
	SetVisibility(name string, visibility Visibility) error

	// Mocha returns the stubbee's registry, creating it on first use. The same
	// registry is returned until ResetMocha is called.
	Mocha() ExpectationRegistry
	ResetMocha()
}

// TestReporter is the minimal interface stubba needs from test frameworks.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprintf("%#v", arg)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
