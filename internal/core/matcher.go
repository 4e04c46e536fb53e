package core

import (
	"errors"
	"fmt"
	"reflect"
)

// Matcher defines the interface for flexible argument matching.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// Any returns a matcher that accepts any argument.
func Any() Matcher {
	return anyMatcher{}
}

// MatchValue checks if actual matches expected.
// If expected implements the Matcher interface, uses its Match method.
// Otherwise, uses reflect.DeepEqual for comparison.
// Returns (success, errorMessage). If success is true, errorMessage is empty.
func MatchValue(actual, expected any) (bool, string) {
	if matcher, ok := expected.(Matcher); ok {
		success, err := matcher.Match(actual)
		if err != nil {
			return false, err.Error()
		}

		if !success {
			return false, matcher.FailureMessage(actual)
		}

		return true, ""
	}

	if reflect.DeepEqual(actual, expected) {
		return true, ""
	}

	return false, fmt.Sprintf("expected %#v, got %#v", expected, actual)
}

// Satisfies returns a matcher that passes the argument to predicate. The
// predicate returns nil for a match, or an error describing the mismatch.
func Satisfies[T any](predicate func(T) error) Matcher {
	return &satisfyMatcher[T]{predicate: predicate}
}

// unexported variables.
var (
	errArgCount     = errors.New("wrong number of arguments")
	errArgMismatch  = errors.New("argument mismatch")
	errTypeMismatch = errors.New("type mismatch")
)

type anyMatcher struct{}

func (anyMatcher) FailureMessage(any) string {
	return ""
}

func (anyMatcher) Match(any) (bool, error) {
	return true, nil
}

type satisfyMatcher[T any] struct {
	predicate func(T) error
	lastErr   error
}

func (m *satisfyMatcher[T]) FailureMessage(actual any) string {
	if m.lastErr != nil {
		return fmt.Sprintf("value %v does not satisfy predicate: %v", actual, m.lastErr)
	}

	return fmt.Sprintf("value %v does not satisfy predicate", actual)
}

func (m *satisfyMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)
	if !ok {
		return false, fmt.Errorf("%w: expected %T, got %T", errTypeMismatch, *new(T), actual)
	}

	m.lastErr = m.predicate(val)

	return m.lastErr == nil, nil
}

// matchArgs returns nil when every actual argument matches its expectation.
func matchArgs(actual, expected []any) error {
	if len(actual) != len(expected) {
		return fmt.Errorf("%w: expected %d, got %d", errArgCount, len(expected), len(actual))
	}

	for index, want := range expected {
		ok, msg := MatchValue(actual[index], want)
		if !ok {
			return fmt.Errorf("%w: arg %d: %s", errArgMismatch, index, msg)
		}
	}

	return nil
}
