package core_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/gomega"

	"github.com/toejough/stubba/internal/core"
)

// TestMethodTable_Snapshot verifies snapshots are sorted and keep method identity.
func TestMethodTable_Snapshot(t *testing.T) {
	t.Parallel()

	table := core.NewMethodTable()
	zeta := core.NewMethod("zeta", constant())
	alpha := core.NewMethod("alpha", constant())

	table.Define("zeta", zeta)
	table.Define("alpha", alpha)

	if err := table.SetVisibility("zeta", core.Private); err != nil {
		t.Fatal(err)
	}

	want := core.Snapshot{
		{Name: "alpha", Method: alpha, Visibility: core.Public},
		{Name: "zeta", Method: zeta, Visibility: core.Private},
	}

	if diff := cmp.Diff(want, table.Snapshot(), methodIdentity); diff != "" {
		t.Errorf("unexpected snapshot (-want +got):\n%s", diff)
	}
}

// TestMethodTable_RedefineKeepsVisibility verifies that redefinition only
// replaces the body.
func TestMethodTable_RedefineKeepsVisibility(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := core.NewMethodTable()
	table.Define("secret", core.NewMethod("v1", constant(1)))
	g.Expect(table.SetVisibility("secret", core.Protected)).To(Succeed())

	replacement := core.NewMethod("v2", constant(2))
	table.Define("secret", replacement)

	method, visibility, err := table.Lookup("secret")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(method).To(BeIdenticalTo(replacement))
	g.Expect(visibility).To(Equal(core.Protected))
}

// TestMethodTable_MissingNames verifies errors for names that are not defined.
func TestMethodTable_MissingNames(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := core.NewMethodTable()

	_, _, err := table.Lookup("nope")
	g.Expect(err).To(MatchError(core.ErrMethodNotDefined))
	g.Expect(table.Remove("nope")).To(MatchError(core.ErrMethodNotDefined))
	g.Expect(table.SetVisibility("nope", core.Private)).To(MatchError(core.ErrMethodNotDefined))
	g.Expect(table.Has("nope")).To(BeFalse())
}

// TestObject_CallRespectsVisibility verifies public calls, sends and RespondsTo
// for every visibility.
func TestObject_CallRespectsVisibility(t *testing.T) {
	t.Parallel()

	for _, visibility := range []core.Visibility{core.Public, core.Protected, core.Private} {
		t.Run(visibility.String(), func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			object := core.NewObject("subject").Define("act", constant("acted"))
			g.Expect(object.SetVisibility("act", visibility)).To(Succeed())

			sent, err := object.Send("act")
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(sent).To(Equal([]any{"acted"}))

			called, err := object.Call("act")
			if visibility == core.Public {
				g.Expect(err).NotTo(HaveOccurred())
				g.Expect(called).To(Equal([]any{"acted"}))
			} else {
				g.Expect(err).To(MatchError(core.ErrVisibility))
				g.Expect(err.Error()).To(ContainSubstring(visibility.String() + ` method "act" called for subject`))
			}

			g.Expect(object.RespondsTo("act")).To(Equal(visibility == core.Public))
		})
	}
}

// TestObject_UndefinedMethod verifies the error for names nobody defines.
func TestObject_UndefinedMethod(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := core.NewObject("subject").Call("area")

	g.Expect(err).To(MatchError(core.ErrNoMethod))
	g.Expect(err.Error()).To(Equal(`undefined method "area" for subject`))
}

// TestClass_InstancesSeeInstanceMethods verifies lookup through the class and
// that singleton definitions shadow it.
func TestClass_InstancesSeeInstanceMethods(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	class := core.NewClass("Shape").DefineInstance("sides", constant(4))
	square := class.New()
	triangle := class.New()
	triangle.Define("sides", constant(3))

	g.Expect(square.Call("sides")).To(Equal([]any{4}))
	g.Expect(triangle.Call("sides")).To(Equal([]any{3}))
	g.Expect(square.OwnsMethod("sides")).To(BeFalse())
	g.Expect(class.RespondsTo("sides")).To(BeFalse(), "instance methods are not class methods")
	g.Expect(square.String()).To(Equal("#<Shape>"))
}

// TestClass_AnyInstanceIdentity verifies that AnyInstance is stable per class.
func TestClass_AnyInstanceIdentity(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	class := core.NewClass("Shape")

	g.Expect(class.AnyInstance()).To(BeIdenticalTo(class.AnyInstance()))
	g.Expect(class.AnyInstance().Mocha()).To(BeIdenticalTo(class.AnyInstance().Mocha()))
	g.Expect(class.AnyInstance().String()).To(Equal("#<AnyInstance:Shape>"))
	g.Expect(class.Mocha()).NotTo(BeIdenticalTo(class.AnyInstance().Mocha()))
}

// TestObject_MochaIsLazyAndResettable verifies the registry lifecycle.
func TestObject_MochaIsLazyAndResettable(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	object := core.NewObject("subject")
	first := object.Mocha()

	g.Expect(object.Mocha()).To(BeIdenticalTo(first))

	object.ResetMocha()

	g.Expect(object.Mocha()).NotTo(BeIdenticalTo(first))
}

// TestProxy_RefusesReflection verifies the proxy stubbee.
func TestProxy_RefusesReflection(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	target := core.NewObject("target").Define("fetch", constant())
	proxy := core.NewProxy(target)

	_, err := proxy.LookupMethod("fetch")
	g.Expect(err).To(MatchError(core.ErrReflectionUnavailable))

	_, err = proxy.VisibilityOf("fetch")
	g.Expect(err).To(MatchError(core.ErrReflectionUnavailable))

	g.Expect(proxy.OwnsMethod("fetch")).To(BeFalse())
	g.Expect(proxy.String()).To(Equal("#<Proxy:target>"))
	g.Expect(proxy.Mocha()).To(BeIdenticalTo(target.Mocha()))
}

// TestVisibility_String verifies the names of the visibility levels.
func TestVisibility_String(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(core.Public.String()).To(Equal("public"))
	g.Expect(core.Protected.String()).To(Equal("protected"))
	g.Expect(core.Private.String()).To(Equal("private"))
	g.Expect(core.Visibility(9).String()).To(Equal("Visibility(9)"))
}
