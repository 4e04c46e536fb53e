package core

import (
	"fmt"
)

// Object is a stubbable value whose methods live in its own method table.
// Objects created with Class.New also see the instance methods of their class.
//
// All calls go through the table, so an interceptor installed by Stub is seen
// by every caller that holds the object.
type Object struct {
	name    string
	methods *MethodTable
	class   *Class
	mocha   ExpectationRegistry
}

// NewObject returns an object with no methods.
func NewObject(name string) *Object {
	return &Object{name: name, methods: NewMethodTable()}
}

// Call invokes name as a public call: protected and private methods are
// refused with ErrVisibility.
func (o *Object) Call(name string, args ...any) ([]any, error) {
	return o.dispatch(name, true, args, nil)
}

// CallWithBlock is Call with a trailing block.
func (o *Object) CallWithBlock(name string, block Block, args ...any) ([]any, error) {
	return o.dispatch(name, true, args, block)
}

// Define adds a public method to the object and returns the object for chaining.
func (o *Object) Define(name string, fn Func) *Object {
	o.methods.Define(name, NewMethod(name, fn))

	return o
}

// DefineMethod installs method in the object's own table.
func (o *Object) DefineMethod(name string, method *Method) error {
	o.methods.Define(name, method)

	return nil
}

// LookupMethod finds name in the object's own table, then in its class.
func (o *Object) LookupMethod(name string) (*Method, error) {
	method, _, err := o.resolve(name)

	return method, err
}

// MethodSnapshot returns a copy of the object's own table.
func (o *Object) MethodSnapshot() Snapshot {
	return o.methods.Snapshot()
}

// Mocha returns the object's Mock, creating it on first use.
func (o *Object) Mocha() ExpectationRegistry {
	if o.mocha == nil {
		o.mocha = NewMock(o.String())
	}

	return o.mocha
}

// OwnsMethod reports whether name is in the object's own table.
func (o *Object) OwnsMethod(name string) bool {
	return o.methods.Has(name)
}

// Private makes the named methods private. It panics if one is not defined,
// since it is only meant for building fixtures.
func (o *Object) Private(names ...string) *Object {
	return o.restrict(Private, names)
}

// Protected makes the named methods protected. It panics like Private.
func (o *Object) Protected(names ...string) *Object {
	return o.restrict(Protected, names)
}

// RemoveMethod deletes name from the object's own table.
func (o *Object) RemoveMethod(name string) error {
	return o.methods.Remove(name)
}

// ResetMocha drops the object's registry. The next Mocha call creates a fresh one.
func (o *Object) ResetMocha() {
	o.mocha = nil
}

// RespondsTo reports whether a public call to name would find a method.
func (o *Object) RespondsTo(name string) bool {
	_, visibility, err := o.resolve(name)

	return err == nil && visibility == Public
}

// Send invokes name whatever its visibility.
func (o *Object) Send(name string, args ...any) ([]any, error) {
	return o.dispatch(name, false, args, nil)
}

// SendWithBlock is Send with a trailing block.
func (o *Object) SendWithBlock(name string, block Block, args ...any) ([]any, error) {
	return o.dispatch(name, false, args, block)
}

// SetVisibility changes the visibility of a method in the object's own table.
func (o *Object) SetVisibility(name string, visibility Visibility) error {
	return o.methods.SetVisibility(name, visibility)
}

func (o *Object) String() string {
	return o.name
}

// VisibilityOf returns the visibility name resolves to.
func (o *Object) VisibilityOf(name string) (Visibility, error) {
	_, visibility, err := o.resolve(name)

	return visibility, err
}

func (o *Object) dispatch(name string, public bool, args []any, block Block) ([]any, error) {
	method, visibility, err := o.resolve(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q for %s", ErrNoMethod, name, o)
	}

	if public && visibility != Public {
		return nil, fmt.Errorf("%w: %s method %q called for %s", ErrVisibility, visibility, name, o)
	}

	return method.Invoke(args, block), nil
}

func (o *Object) resolve(name string) (*Method, Visibility, error) {
	method, visibility, err := o.methods.Lookup(name)
	if err == nil || o.class == nil {
		return method, visibility, err
	}

	return o.class.instanceMethods.Lookup(name)
}

func (o *Object) restrict(visibility Visibility, names []string) *Object {
	for _, name := range names {
		if err := o.methods.SetVisibility(name, visibility); err != nil {
			panic(err)
		}
	}

	return o
}

// AnyInstance is the stubbee for the instance methods of a class: stubbing it
// affects every instance, existing or future.
type AnyInstance struct {
	class *Class
	mocha ExpectationRegistry
}

// DefineMethod installs method as an instance method of the class.
func (a *AnyInstance) DefineMethod(name string, method *Method) error {
	a.class.instanceMethods.Define(name, method)

	return nil
}

// LookupMethod finds name among the class's instance methods.
func (a *AnyInstance) LookupMethod(name string) (*Method, error) {
	method, _, err := a.class.instanceMethods.Lookup(name)

	return method, err
}

// MethodSnapshot returns a copy of the class's instance method table.
func (a *AnyInstance) MethodSnapshot() Snapshot {
	return a.class.instanceMethods.Snapshot()
}

// Mocha returns the registry shared by all instances, creating it on first use.
func (a *AnyInstance) Mocha() ExpectationRegistry {
	if a.mocha == nil {
		a.mocha = NewMock(a.String())
	}

	return a.mocha
}

// OwnsMethod reports whether name is an instance method of the class.
func (a *AnyInstance) OwnsMethod(name string) bool {
	return a.class.instanceMethods.Has(name)
}

// RemoveMethod deletes an instance method.
func (a *AnyInstance) RemoveMethod(name string) error {
	return a.class.instanceMethods.Remove(name)
}

// ResetMocha drops the shared registry.
func (a *AnyInstance) ResetMocha() {
	a.mocha = nil
}

// SetVisibility changes the visibility of an instance method.
func (a *AnyInstance) SetVisibility(name string, visibility Visibility) error {
	return a.class.instanceMethods.SetVisibility(name, visibility)
}

func (a *AnyInstance) String() string {
	return fmt.Sprintf("#<AnyInstance:%s>", a.class)
}

// VisibilityOf returns the visibility of an instance method.
func (a *AnyInstance) VisibilityOf(name string) (Visibility, error) {
	_, visibility, err := a.class.instanceMethods.Lookup(name)

	return visibility, err
}

// Class is an Object (its methods are class methods) that also holds
// instance methods shared by the objects it creates.
type Class struct {
	Object

	instanceMethods *MethodTable
	anyInstance     *AnyInstance
}

// NewClass returns a class with no class or instance methods.
func NewClass(name string) *Class {
	return &Class{
		Object:          Object{name: name, methods: NewMethodTable()},
		instanceMethods: NewMethodTable(),
	}
}

// AnyInstance returns the stubbee for this class's instance methods.
// The same value is returned on every call.
func (c *Class) AnyInstance() *AnyInstance {
	if c.anyInstance == nil {
		c.anyInstance = &AnyInstance{class: c}
	}

	return c.anyInstance
}

// DefineInstance adds a public instance method and returns the class for chaining.
func (c *Class) DefineInstance(name string, fn Func) *Class {
	c.instanceMethods.Define(name, NewMethod(c.name+"#"+name, fn))

	return c
}

// New returns an instance of the class.
func (c *Class) New() *Object {
	return &Object{
		name:    fmt.Sprintf("#<%s>", c.name),
		methods: NewMethodTable(),
		class:   c,
	}
}

// PrivateInstance makes the named instance methods private. It panics if one
// is not defined.
func (c *Class) PrivateInstance(names ...string) *Class {
	return c.restrictInstance(Private, names)
}

// ProtectedInstance makes the named instance methods protected. It panics if
// one is not defined.
func (c *Class) ProtectedInstance(names ...string) *Class {
	return c.restrictInstance(Protected, names)
}

func (c *Class) restrictInstance(visibility Visibility, names []string) *Class {
	for _, name := range names {
		if err := c.instanceMethods.SetVisibility(name, visibility); err != nil {
			panic(err)
		}
	}

	return c
}

// Proxy wraps a stubbee and refuses introspection, like proxies that forward
// everything to a target they hide. Defining and removing methods still works.
type Proxy struct {
	Stubbee
}

// NewProxy wraps target.
func NewProxy(target Stubbee) *Proxy {
	return &Proxy{Stubbee: target}
}

// LookupMethod always fails with ErrReflectionUnavailable.
func (p *Proxy) LookupMethod(name string) (*Method, error) {
	return nil, fmt.Errorf("%s cannot look up %s: %w", p, name, ErrReflectionUnavailable)
}

// OwnsMethod always reports false.
func (p *Proxy) OwnsMethod(string) bool {
	return false
}

func (p *Proxy) String() string {
	return fmt.Sprintf("#<Proxy:%s>", p.Stubbee)
}

// VisibilityOf always fails with ErrReflectionUnavailable.
func (p *Proxy) VisibilityOf(name string) (Visibility, error) {
	return Public, fmt.Errorf("%s cannot inspect %s: %w", p, name, ErrReflectionUnavailable)
}

// Compile-time interface checks.
var (
	_ Stubbee     = (*Object)(nil)
	_ Stubbee     = (*Class)(nil)
	_ Stubbee     = (*AnyInstance)(nil)
	_ Stubbee     = (*Proxy)(nil)
	_ Snapshotter = (*Object)(nil)
	_ Snapshotter = (*AnyInstance)(nil)
)
