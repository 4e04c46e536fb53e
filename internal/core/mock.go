package core

import (
	"fmt"
	"strings"
)

// Mock is the default ExpectationRegistry. Stubbed methods forward their calls
// to it; it answers from the expectations the test registered and remembers
// which of them have been met.
type Mock struct {
	name         string
	expectations []*Expectation
}

// NewMock returns a Mock with no expectations. name appears in failure messages.
func NewMock(name string) *Mock {
	return &Mock{name: name}
}

// AnyExpectations reports whether any expectation is registered.
func (m *Mock) AnyExpectations() bool {
	return len(m.expectations) > 0
}

// Dispatch answers a call with the most recently registered expectation that
// matches it and can still be invoked. A call no expectation accepts panics
// with *UnexpectedInvocationError.
func (m *Mock) Dispatch(methodName string, args []any, block Block) []any {
	for index := len(m.expectations) - 1; index >= 0; index-- {
		expectation := m.expectations[index]
		if expectation.matches(methodName, args) && expectation.invocationsAllowed() {
			return expectation.invoke(block)
		}
	}

	panic(&UnexpectedInvocationError{Mock: m.name, Method: methodName, Args: args})
}

// Expects registers an expectation that methodName is called exactly once,
// unless its cardinality is changed afterwards.
func (m *Mock) Expects(methodName string) *Expectation {
	return m.add(methodName, 1, 1)
}

func (m *Mock) String() string {
	return m.name
}

// Stubs registers an expectation that methodName may be called any number of times.
func (m *Mock) Stubs(methodName string) *Expectation {
	return m.add(methodName, 0, unlimited)
}

// Unsatisfied returns the expectations that have not been invoked often enough.
func (m *Mock) Unsatisfied() []*Expectation {
	var unsatisfied []*Expectation

	for _, expectation := range m.expectations {
		if !expectation.satisfied() {
			unsatisfied = append(unsatisfied, expectation)
		}
	}

	return unsatisfied
}

// Unstub drops every expectation for methodName.
func (m *Mock) Unstub(methodName string) {
	kept := m.expectations[:0]

	for _, expectation := range m.expectations {
		if expectation.methodName != methodName {
			kept = append(kept, expectation)
		}
	}

	clear(m.expectations[len(kept):])
	m.expectations = kept
}

// Unmet returns an error wrapping ErrUnmetExpectations that describes every
// unsatisfied expectation, or nil when all of them have been met.
func (m *Mock) Unmet() error {
	unsatisfied := m.Unsatisfied()
	if len(unsatisfied) == 0 {
		return nil
	}

	lines := make([]string, len(unsatisfied))
	for i, expectation := range unsatisfied {
		lines[i] = "- " + expectation.String()
	}

	return fmt.Errorf("%w for %s:\n%s", ErrUnmetExpectations, m.name, strings.Join(lines, "\n"))
}

// Verify fails the test if any expectation has not been met.
func (m *Mock) Verify(t TestReporter) {
	t.Helper()

	if err := m.Unmet(); err != nil {
		t.Fatalf("%v", err)
	}
}

func (m *Mock) add(methodName string, minCalls, maxCalls int) *Expectation {
	expectation := &Expectation{
		mock:       m.name,
		methodName: methodName,
		minCalls:   minCalls,
		maxCalls:   maxCalls,
	}
	m.expectations = append(m.expectations, expectation)

	return expectation
}

// Expectation describes a call a Mock expects and how to answer it.
type Expectation struct {
	mock       string
	methodName string

	matchers      []any
	argsSpecified bool

	returnValues []any
	panics       bool
	panicValue   any
	yields       [][]any

	minCalls    int
	maxCalls    int
	invocations int
}

// AnyNumberOfTimes allows zero or more calls.
func (e *Expectation) AnyNumberOfTimes() *Expectation {
	return e.between(0, unlimited)
}

// AtLeastOnce requires one or more calls.
func (e *Expectation) AtLeastOnce() *Expectation {
	return e.between(1, unlimited)
}

// Invocations returns how often the expectation has been invoked.
func (e *Expectation) Invocations() int {
	return e.invocations
}

// Never forbids calls: any matching call is unexpected.
func (e *Expectation) Never() *Expectation {
	return e.between(0, 0)
}

// Panics makes the stubbed method panic with value instead of returning.
func (e *Expectation) Panics(value any) *Expectation {
	e.panics = true
	e.panicValue = value

	return e
}

// Returns sets the values the stubbed method returns.
func (e *Expectation) Returns(values ...any) *Expectation {
	e.returnValues = values

	return e
}

func (e *Expectation) String() string {
	args := "(any parameters)"
	if e.argsSpecified {
		args = formatArgs(e.matchers)
	}

	return fmt.Sprintf("%s.%s%s: expected %s, invoked %s",
		e.mock, e.methodName, args, cardinality(e.minCalls, e.maxCalls), times(e.invocations))
}

// Times requires exactly n calls.
func (e *Expectation) Times(n int) *Expectation {
	return e.between(n, n)
}

// With restricts the expectation to calls whose arguments match. Each matcher
// is either a Matcher (gomega matchers work) or a value compared with
// reflect.DeepEqual.
func (e *Expectation) With(matchers ...any) *Expectation {
	e.matchers = matchers
	e.argsSpecified = true

	return e
}

// Yields makes the stubbed method call the block with args before returning.
// Calling it more than once yields several times, in order. A matching call
// made without a block panics with an error wrapping ErrNoBlockGiven and is
// not counted as an invocation.
func (e *Expectation) Yields(args ...any) *Expectation {
	e.yields = append(e.yields, args)

	return e
}

func (e *Expectation) between(minCalls, maxCalls int) *Expectation {
	e.minCalls = minCalls
	e.maxCalls = maxCalls

	return e
}

func (e *Expectation) invocationsAllowed() bool {
	return e.maxCalls == unlimited || e.invocations < e.maxCalls
}

func (e *Expectation) invoke(block Block) []any {
	if len(e.yields) > 0 && block == nil {
		panic(fmt.Errorf("%w: %s.%s yields", ErrNoBlockGiven, e.mock, e.methodName))
	}

	e.invocations++

	for _, args := range e.yields {
		block(args...)
	}

	if e.panics {
		panic(e.panicValue)
	}

	return e.returnValues
}

func (e *Expectation) matches(methodName string, args []any) bool {
	if methodName != e.methodName {
		return false
	}

	if !e.argsSpecified {
		return true
	}

	return matchArgs(args, e.matchers) == nil
}

func (e *Expectation) satisfied() bool {
	return e.invocations >= e.minCalls
}

// unexported constants.
const (
	unlimited = -1
)

func cardinality(minCalls, maxCalls int) string {
	switch {
	case maxCalls == 0:
		return "never"
	case minCalls == maxCalls:
		return "exactly " + times(minCalls)
	case maxCalls == unlimited && minCalls == 0:
		return "any number of times"
	case maxCalls == unlimited:
		return "at least " + times(minCalls)
	default:
		return fmt.Sprintf("between %d and %s", minCalls, times(maxCalls))
	}
}

func times(n int) string {
	switch n {
	case 0:
		return "never"
	case 1:
		return "once"
	case 2:
		return "twice"
	default:
		return fmt.Sprintf("%d times", n)
	}
}
