package core

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Stubba owns the interceptors installed during one test. It keeps at most one
// active interceptor per (stubbee, method) pair and unstubs them all, newest
// first, at teardown.
type Stubba struct {
	t        TestReporter
	settings settings
	active   []*activeStub
}

// NewStubba returns an empty Stubba reporting to t.
func NewStubba(t TestReporter, opts ...Option) *Stubba {
	return &Stubba{t: t, settings: newSettings(opts)}
}

// Expects stubs methodName on stubbee and registers an expectation that it is
// called exactly once. The stubbee's registry must be a *Mock.
func (s *Stubba) Expects(stubbee Stubbee, methodName string) *Expectation {
	s.t.Helper()

	mock := s.mock(stubbee, methodName)
	if mock == nil {
		return nil
	}

	return mock.Expects(methodName)
}

// Stub intercepts methodName on stubbee. Stubbing a pair that is already
// stubbed returns the active interceptor without touching the stubbee again.
func (s *Stubba) Stub(stubbee Stubbee, methodName string) (*Interceptor, error) {
	candidate := NewInterceptor(stubbee, methodName, WithLogger(s.settings.logger))

	for _, active := range s.active {
		if active.interceptor.Matches(candidate) {
			return active.interceptor, nil
		}
	}

	entry := &activeStub{interceptor: candidate}

	if snapshotter, ok := stubbee.(Snapshotter); ok && s.settings.verifyRestoration {
		entry.snapshotter = snapshotter
		entry.before = snapshotter.MethodSnapshot()
	}

	if err := candidate.Stub(); err != nil {
		return nil, err
	}

	s.active = append(s.active, entry)
	s.settings.logger.Debug("stubbed", zap.Stringer("method", candidate), zap.Int("active", len(s.active)))

	return candidate, nil
}

// Stubbed returns a label for every active interceptor, oldest first.
func (s *Stubba) Stubbed() []string {
	labels := make([]string, len(s.active))
	for i, active := range s.active {
		labels[i] = active.interceptor.String()
	}

	return labels
}

// Stubs stubs methodName on stubbee and registers an expectation that allows
// any number of calls. The stubbee's registry must be a *Mock.
func (s *Stubba) Stubs(stubbee Stubbee, methodName string) *Expectation {
	s.t.Helper()

	mock := s.mock(stubbee, methodName)
	if mock == nil {
		return nil
	}

	return mock.Stubs(methodName)
}

// Teardown verifies the expectations behind the active stubs, then unstubs
// everything. Unmet expectations and unstub failures are reported together in
// one Fatalf, after the originals are back.
func (s *Stubba) Teardown() {
	s.t.Helper()

	unmet := s.unmet()

	if err := errors.Join(unmet, s.UnstubAll()); err != nil {
		s.t.Fatalf("teardown: %v", err)
	}
}

// UnstubAll unstubs every active interceptor, newest first. Every interceptor
// is attempted; the errors are joined.
func (s *Stubba) UnstubAll() error {
	var errs []error

	for index := len(s.active) - 1; index >= 0; index-- {
		active := s.active[index]

		if err := active.interceptor.Unstub(); err != nil {
			errs = append(errs, err)

			continue
		}

		if err := active.verifyRestored(); err != nil {
			errs = append(errs, err)
		}

		s.settings.logger.Debug("unstubbed", zap.Stringer("method", active.interceptor))
	}

	s.active = nil

	return errors.Join(errs...)
}

// Verify fails the test if any *Mock behind an active stub has unmet expectations.
func (s *Stubba) Verify() {
	s.t.Helper()

	if err := s.unmet(); err != nil {
		s.t.Fatalf("%v", err)
	}
}

func (s *Stubba) mock(stubbee Stubbee, methodName string) *Mock {
	s.t.Helper()

	if _, err := s.Stub(stubbee, methodName); err != nil {
		s.t.Fatalf("stub %s.%s: %v", stubbee, methodName, err)

		return nil
	}

	mock, ok := stubbee.Mocha().(*Mock)
	if !ok {
		s.t.Fatalf("%s uses a %T registry, not *Mock", stubbee, stubbee.Mocha())

		return nil
	}

	return mock
}

// unmet joins the Unmet errors of every distinct *Mock behind an active stub.
func (s *Stubba) unmet() error {
	seen := make(map[*Mock]struct{})

	var errs []error

	for _, active := range s.active {
		mock, ok := active.interceptor.Stubbee().Mocha().(*Mock)
		if !ok {
			continue
		}

		if _, done := seen[mock]; done {
			continue
		}

		seen[mock] = struct{}{}

		if err := mock.Unmet(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

type activeStub struct {
	interceptor *Interceptor
	snapshotter Snapshotter
	before      Snapshot
}

func (a *activeStub) verifyRestored() error {
	if a.snapshotter == nil {
		return nil
	}

	after := a.snapshotter.MethodSnapshot()
	if a.before.Equal(after) {
		return nil
	}

	return fmt.Errorf("%w: %s\n%s", ErrRestorationMismatch, a.interceptor, a.before.Diff(after))
}
