package stubba

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/toejough/stubba/internal/config"
	"github.com/toejough/stubba/internal/core"
)

// Expects stubs methodName on stubbee for the current test and registers an
// expectation that it is called exactly once.
func Expects(t TestReporter, stubbee Stubbee, methodName string) *Expectation {
	t.Helper()

	return For(t).Expects(stubbee, methodName)
}

// For returns the Stubba for the given test, creating one if needed.
// Multiple calls with the same TestReporter return the same Stubba.
//
// A new Stubba is configured from the environment (see internal/config) and,
// when t supports Cleanup, is torn down when the test completes: unmet
// expectations fail the test, every stub is removed and the originals restored.
func For(t TestReporter) *Stubba {
	if stubba, ok := core.Lookup(t); ok {
		return stubba
	}

	settings, err := config.Load()
	if err != nil {
		t.Helper()
		t.Fatalf("stubba: %v", err)
	}

	return core.ForTest(t,
		core.WithLogger(newLogger(t, settings.LogLevel)),
		core.WithRestorationCheck(settings.VerifyRestoration),
	)
}

// Stubs stubs methodName on stubbee for the current test and registers an
// expectation that allows any number of calls.
func Stubs(t TestReporter, stubbee Stubbee, methodName string) *Expectation {
	t.Helper()

	return For(t).Stubs(stubbee, methodName)
}

// Verify fails the test if any expectation registered through For(t) is unmet.
// If no Stubba has been created for t yet, Verify returns immediately.
func Verify(t TestReporter) {
	t.Helper()

	stubba, ok := core.Lookup(t)
	if !ok {
		return
	}

	stubba.Verify()
}

// newLogger logs to the test output when t can take it.
func newLogger(t TestReporter, level zapcore.Level) *zap.Logger {
	if tb, ok := t.(zaptest.TestingT); ok {
		return zaptest.NewLogger(tb, zaptest.Level(level))
	}

	return zap.NewNop()
}
