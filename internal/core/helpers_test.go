package core_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/toejough/stubba/internal/core"
)

// unexported variables.
var (
	_ core.ExpectationRegistry = (*recordingRegistry)(nil)
	_ core.Stubbee             = (*registryStubbee)(nil)
	_ core.TestReporter        = (*mockTester)(nil)
	_ core.TestReporter        = (*fatalRecorder)(nil)
)

// errDefineRefused is returned by registryStubbee while defineFailures is positive.
var errDefineRefused = errors.New("define refused")

// fatalRecorder is a real *testing.T, so Cleanup works, whose Fatalf only
// records the message.
type fatalRecorder struct {
	*testing.T

	fatals []string
}

func (f *fatalRecorder) Fatalf(format string, args ...any) {
	f.fatals = append(f.fatals, fmt.Sprintf(format, args...))
}

// mockTester captures Fatalf calls instead of failing the test.
type mockTester struct {
	failed bool
	msg    string
}

func (m *mockTester) Fatalf(format string, args ...any) {
	m.failed = true
	m.msg = fmt.Sprintf(format, args...)
}

func (m *mockTester) Helper() {}

type recordedCall struct {
	method   string
	args     []any
	hadBlock bool
}

// recordingRegistry remembers every call and answers with a fixed result.
type recordingRegistry struct {
	result    []any
	remaining bool
	calls     []recordedCall
	unstubbed []string
}

func (r *recordingRegistry) AnyExpectations() bool {
	return r.remaining
}

func (r *recordingRegistry) Dispatch(methodName string, args []any, block core.Block) []any {
	r.calls = append(r.calls, recordedCall{method: methodName, args: args, hadBlock: block != nil})

	if block != nil {
		block(methodName)
	}

	return r.result
}

func (r *recordingRegistry) Unstub(methodName string) {
	r.unstubbed = append(r.unstubbed, methodName)
}

// registryStubbee is an Object whose registry is a recordingRegistry.
// lookupErr, when set, is returned from every lookup. The next
// defineFailures definitions fail with errDefineRefused.
type registryStubbee struct {
	*core.Object

	registry       *recordingRegistry
	resets         int
	lookupErr      error
	defineFailures int
}

func newRegistryStubbee(name string) *registryStubbee {
	return &registryStubbee{
		Object:   core.NewObject(name),
		registry: &recordingRegistry{},
	}
}

func (s *registryStubbee) DefineMethod(name string, method *core.Method) error {
	if s.defineFailures > 0 {
		s.defineFailures--

		return errDefineRefused
	}

	return s.Object.DefineMethod(name, method)
}

func (s *registryStubbee) LookupMethod(name string) (*core.Method, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}

	return s.Object.LookupMethod(name)
}

func (s *registryStubbee) Mocha() core.ExpectationRegistry {
	return s.registry
}

func (s *registryStubbee) ResetMocha() {
	s.resets++
}

func constant(values ...any) core.Func {
	return func([]any, core.Block) []any {
		return values
	}
}
