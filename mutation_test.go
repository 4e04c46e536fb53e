//go:build mutation

package stubba_test

import (
	"testing"

	"github.com/gtramontina/ooze"
)

func TestMutation(t *testing.T) {
	ooze.Release(
		t,
		ooze.WithTestCommand("go test -buildvcs=false ./..."),
		ooze.Parallel(),
		ooze.IgnoreSourceFiles("^dev/.*|^_examples/.*|.*_string.go|.*_test.go"),
		ooze.WithMinimumThreshold(0.90),
		ooze.WithRepositoryRoot("."),
		ooze.ForceColors(),
	)
}
