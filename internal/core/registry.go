package core

import (
	"sync"
)

// ForTest returns the Stubba for the given test, creating one if needed.
// Multiple calls with the same TestReporter return the same Stubba, so every
// stub made during a test is undone by the same teardown.
//
// If the TestReporter supports Cleanup (like *testing.T), the Stubba is torn
// down (see Stubba.Teardown) and removed from the registry when the test completes. opts only apply
// when the Stubba is created.
func ForTest(t TestReporter, opts ...Option) *Stubba {
	registryMu.Lock()
	defer registryMu.Unlock()

	if stubba, ok := registry[t]; ok {
		return stubba
	}

	stubba := NewStubba(t, opts...)
	registry[t] = stubba

	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			registryMu.Lock()
			delete(registry, t)
			registryMu.Unlock()

			stubba.Teardown()
		})
	}

	return stubba
}

// Lookup returns the Stubba registered for t, if any.
func Lookup(t TestReporter) (*Stubba, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()

	stubba, ok := registry[t]

	return stubba, ok
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for test coordination
	registry = make(map[TestReporter]*Stubba)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.Mutex
)

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}
