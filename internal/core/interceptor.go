package core

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Interceptor replaces one method of one stubbee with a method that forwards
// every call to the stubbee's ExpectationRegistry, and puts the original back
// on Unstub.
//
// An Interceptor is either unstubbed or stubbed. Stub is only valid in the
// first state and Unstub only in the second; anything else returns an error
// wrapping ErrInconsistentState.
type Interceptor struct {
	stubbee    Stubbee
	methodName string
	logger     *zap.Logger

	stubbed bool

	// Captured by Stub. original is nil when there was nothing to capture.
	original   *Method
	visibility Visibility
	owned      bool
	installed  bool
}

// NewInterceptor returns an unstubbed interceptor for methodName on stubbee.
func NewInterceptor(stubbee Stubbee, methodName string, opts ...Option) *Interceptor {
	return &Interceptor{
		stubbee:    stubbee,
		methodName: methodName,
		logger:     newSettings(opts).logger,
	}
}

// Matches reports whether other intercepts the same method on the very same stubbee.
func (i *Interceptor) Matches(other *Interceptor) bool {
	if other == nil {
		return false
	}

	return sameStubbee(i.stubbee, other.stubbee) && i.methodName == other.methodName
}

// MethodName returns the intercepted method name.
func (i *Interceptor) MethodName() string {
	return i.methodName
}

// Stub captures the current definition of the method, hides it, and installs
// the forwarding method.
func (i *Interceptor) Stub() error {
	if i.stubbed {
		return fmt.Errorf("cannot stub %s: %w", i, ErrAlreadyStubbed)
	}

	i.forget()

	if err := i.hideOriginalMethod(); err != nil {
		i.forget()

		return err
	}

	if err := i.defineNewMethod(); err != nil {
		err = errors.Join(err, i.rollback())
		i.forget()

		return err
	}

	i.stubbed = true

	return nil
}

// Stubbed reports whether the forwarding method is currently installed.
func (i *Interceptor) Stubbed() bool {
	return i.stubbed
}

// Stubbee returns the intercepted stubbee.
func (i *Interceptor) Stubbee() Stubbee {
	return i.stubbee
}

func (i *Interceptor) String() string {
	return fmt.Sprintf("%s.%s", i.stubbee, i.methodName)
}

// Unstub removes the forwarding method, restores the captured original, tells
// the registry the method is no longer stubbed, and retires the registry when
// it has no expectations left. Captured state is discarded afterwards.
func (i *Interceptor) Unstub() error {
	if !i.stubbed {
		return fmt.Errorf("cannot unstub %s: %w", i, ErrNotStubbed)
	}

	if err := i.removeNewMethod(); err != nil {
		return err
	}

	if err := i.restoreOriginalMethod(); err != nil {
		return err
	}

	mocha := i.stubbee.Mocha()
	mocha.Unstub(i.methodName)

	if !mocha.AnyExpectations() {
		i.logger.Debug("retiring expectation registry", zap.Stringer("stubbee", i.stubbee))
		i.stubbee.ResetMocha()
	}

	i.stubbed = false
	i.forget()

	return nil
}

// capture looks up the current definition. A missing method, or a stubbee
// that refuses reflection, leaves nothing to capture.
func (i *Interceptor) capture() (bool, error) {
	method, err := i.stubbee.LookupMethod(i.methodName)
	if err != nil {
		return false, i.captureFailure(err)
	}

	visibility, err := i.stubbee.VisibilityOf(i.methodName)
	if err != nil {
		return false, i.captureFailure(err)
	}

	i.original = method
	i.visibility = visibility
	i.owned = i.stubbee.OwnsMethod(i.methodName)

	i.logger.Debug("captured original method",
		zap.Stringer("method", i),
		zap.Stringer("visibility", visibility),
		zap.Bool("owned", i.owned),
	)

	return true, nil
}

func (i *Interceptor) captureFailure(err error) error {
	switch {
	case errors.Is(err, ErrMethodNotDefined):
		i.logger.Debug("no original method", zap.Stringer("method", i))

		return nil
	case errors.Is(err, ErrReflectionUnavailable):
		i.logger.Debug("cannot capture original method", zap.Stringer("method", i), zap.Error(err))

		return nil
	default:
		return fmt.Errorf("capture %s: %w", i, err)
	}
}

func (i *Interceptor) defineNewMethod() error {
	stubbee, methodName := i.stubbee, i.methodName

	forward := NewMethod(i.String()+" (stub)", func(args []any, block Block) []any {
		return stubbee.Mocha().Dispatch(methodName, args, block)
	})

	if err := stubbee.DefineMethod(methodName, forward); err != nil {
		return fmt.Errorf("define stub %s: %w", i, err)
	}

	i.installed = true

	i.logger.Debug("installed stub", zap.Stringer("method", i))

	return i.reapplyVisibility()
}

// forget discards the captured original.
func (i *Interceptor) forget() {
	i.original = nil
	i.visibility = Public
	i.owned = false
	i.installed = false
}

func (i *Interceptor) hideOriginalMethod() error {
	captured, err := i.capture()
	if err != nil || !captured || !i.owned {
		return err
	}

	if err := i.stubbee.RemoveMethod(i.methodName); err != nil {
		return fmt.Errorf("hide original %s: %w", i, err)
	}

	return nil
}

// reapplyVisibility gives the method under methodName the captured visibility.
// It runs after every (re)definition and is a no-op when nothing was captured.
func (i *Interceptor) reapplyVisibility() error {
	if i.original == nil {
		return nil
	}

	if err := i.stubbee.SetVisibility(i.methodName, i.visibility); err != nil {
		return fmt.Errorf("make %s %s: %w", i, i.visibility, err)
	}

	return nil
}

func (i *Interceptor) removeNewMethod() error {
	if err := i.stubbee.RemoveMethod(i.methodName); err != nil {
		return fmt.Errorf("remove stub %s: %w", i, err)
	}

	return nil
}

// restoreOriginalMethod puts back an original that lived in the stubbee's own
// table. Inherited originals were never removed, so removing the stub already
// exposed them again.
func (i *Interceptor) restoreOriginalMethod() error {
	if i.original == nil || !i.owned {
		return nil
	}

	if err := i.stubbee.DefineMethod(i.methodName, i.original); err != nil {
		return fmt.Errorf("restore original %s: %w", i, err)
	}

	i.logger.Debug("restored original method", zap.Stringer("method", i), zap.Stringer("visibility", i.visibility))

	return i.reapplyVisibility()
}

// rollback undoes a half-finished Stub: whatever stub got defined is dropped
// and a hidden original is put back.
func (i *Interceptor) rollback() error {
	if i.installed {
		if err := i.removeNewMethod(); err != nil {
			return err
		}
	}

	return i.restoreOriginalMethod()
}

// sameStubbee compares by identity. Values of incomparable types are never the same.
func sameStubbee(a, b Stubbee) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}

	return a == b
}
