// Package stubba replaces methods on live objects with stubs that forward to
// an expectation registry, and puts the originals back afterwards, visibility
// included.
//
// This is the public API entry point. Implementation lives in internal/core.
package stubba

import (
	"go.uber.org/zap"

	"github.com/toejough/stubba/internal/core"
)

// Types re-exported from internal/core.

// AnyInstance is the stubbee for the instance methods of a Class.
type AnyInstance = core.AnyInstance

// Block is an optional trailing callback passed along with a call.
type Block = core.Block

// Class is an Object whose instance methods are shared by the objects it creates.
type Class = core.Class

// Expectation describes a call a Mock expects and how to answer it.
type Expectation = core.Expectation

// ExpectationRegistry receives every call routed through an interceptor.
type ExpectationRegistry = core.ExpectationRegistry

// Func is the body of a method.
type Func = core.Func

// Interceptor replaces one method of one stubbee and restores it on Unstub.
type Interceptor = core.Interceptor

// Matcher defines the interface for flexible argument matching.
type Matcher = core.Matcher

// Method is a method body held by a method table.
type Method = core.Method

// Mock is the default ExpectationRegistry.
type Mock = core.Mock

// Object is a stubbable value whose methods live in its own method table.
type Object = core.Object

// Option configures an Interceptor or a Stubba.
type Option = core.Option

// Proxy wraps a stubbee and refuses introspection.
type Proxy = core.Proxy

// Snapshot is a sorted copy of a method table.
type Snapshot = core.Snapshot

// Stubba owns the interceptors installed during one test.
type Stubba = core.Stubba

// Stubbee is anything whose methods can be intercepted.
type Stubbee = core.Stubbee

// TestReporter is the minimal interface stubba needs from test frameworks.
type TestReporter = core.TestReporter

// UnexpectedInvocationError is the panic value of a call no expectation accepts.
type UnexpectedInvocationError = core.UnexpectedInvocationError

// Visibility is the access level of a method.
type Visibility = core.Visibility

// Visibility levels.
const (
	Public    = core.Public
	Protected = core.Protected
	Private   = core.Private
)

// Errors re-exported from internal/core.
var (
	ErrAlreadyStubbed        = core.ErrAlreadyStubbed
	ErrInconsistentState     = core.ErrInconsistentState
	ErrMethodNotDefined      = core.ErrMethodNotDefined
	ErrNoBlockGiven          = core.ErrNoBlockGiven
	ErrNoMethod              = core.ErrNoMethod
	ErrNotStubbed            = core.ErrNotStubbed
	ErrReflectionUnavailable = core.ErrReflectionUnavailable
	ErrRestorationMismatch   = core.ErrRestorationMismatch
	ErrUnexpectedInvocation  = core.ErrUnexpectedInvocation
	ErrUnmetExpectations     = core.ErrUnmetExpectations
	ErrVisibility            = core.ErrVisibility
)

// Functions re-exported from internal/core.

// Any returns a matcher that accepts any argument.
func Any() Matcher {
	return core.Any()
}

// MatchValue checks if actual matches expected.
func MatchValue(actual, expected any) (bool, string) {
	return core.MatchValue(actual, expected)
}

// NewClass returns a class with no class or instance methods.
func NewClass(name string) *Class {
	return core.NewClass(name)
}

// NewInterceptor returns an unstubbed interceptor for methodName on stubbee.
func NewInterceptor(stubbee Stubbee, methodName string, opts ...Option) *Interceptor {
	return core.NewInterceptor(stubbee, methodName, opts...)
}

// NewMethod wraps fn as a Method.
func NewMethod(label string, fn Func) *Method {
	return core.NewMethod(label, fn)
}

// NewMock returns a Mock with no expectations.
func NewMock(name string) *Mock {
	return core.NewMock(name)
}

// NewObject returns an object with no methods.
func NewObject(name string) *Object {
	return core.NewObject(name)
}

// NewProxy wraps target in a stubbee that refuses introspection.
func NewProxy(target Stubbee) *Proxy {
	return core.NewProxy(target)
}

// NewStubba returns an empty Stubba reporting to t. Most tests want For instead.
func NewStubba(t TestReporter, opts ...Option) *Stubba {
	return core.NewStubba(t, opts...)
}

// Satisfies returns a matcher that uses a predicate function to check for a match.
func Satisfies[T any](predicate func(T) error) Matcher {
	return core.Satisfies(predicate)
}

// WithLogger sets the logger used for debug events.
func WithLogger(logger *zap.Logger) Option {
	return core.WithLogger(logger)
}

// WithRestorationCheck turns the post-unstub method table comparison on or off.
func WithRestorationCheck(enabled bool) Option {
	return core.WithRestorationCheck(enabled)
}
