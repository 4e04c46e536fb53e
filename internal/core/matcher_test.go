package core_test

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/toejough/stubba/internal/core"
)

// TestAny verifies that Any accepts everything, nil included.
func TestAny(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		value := rapid.OneOf(
			rapid.Just[any](nil),
			rapid.Int().AsAny(),
			rapid.String().AsAny(),
		).Draw(rt, "value")

		ok, msg := core.MatchValue(value, core.Any())
		if !ok || msg != "" {
			rt.Fatalf("Any() rejected %#v: %q", value, msg)
		}
	})
}

// TestSatisfies checks predicate matches, predicate failures and type mismatches.
func TestSatisfies(t *testing.T) {
	t.Parallel()

	bigger := func(val int) error {
		if val <= 10 {
			return errors.New("must be greater than 10")
		}

		return nil
	}

	tests := []struct {
		name    string
		actual  any
		ok      bool
		message string
	}{
		{name: "match", actual: 42, ok: true},
		{name: "predicate failure", actual: 5, message: "value 5 does not satisfy predicate: must be greater than 10"},
		{name: "wrong type", actual: "five", message: "type mismatch: expected int, got string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			ok, msg := core.MatchValue(tt.actual, core.Satisfies(bigger))

			g.Expect(ok).To(Equal(tt.ok))
			g.Expect(msg).To(Equal(tt.message))
		})
	}
}

// TestMatchValue_DeepEqual verifies the fallback comparison for plain values.
func TestMatchValue_DeepEqual(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, msg := core.MatchValue([]int{1, 2}, []int{1, 2})
	g.Expect(ok).To(BeTrue())
	g.Expect(msg).To(BeEmpty())

	ok, msg = core.MatchValue(3, 4)
	g.Expect(ok).To(BeFalse())
	g.Expect(msg).To(Equal("expected 4, got 3"))
}

// TestMatchValue_GomegaMatcher verifies that gomega matchers plug in directly.
func TestMatchValue_GomegaMatcher(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, _ := core.MatchValue("user:1", HavePrefix("user:"))
	g.Expect(ok).To(BeTrue())

	ok, msg := core.MatchValue("order:1", HavePrefix("user:"))
	g.Expect(ok).To(BeFalse())
	g.Expect(msg).To(ContainSubstring("user:"))
}
