package reso

import "reflect"

// A Container owns a type-keyed registration table plus tree links:
// at most one parent and an ordered list of explicitly attached children.
//
// Registration is expected to complete before concurrent resolution
// begins, so the table is intentionally not locked. Registering after
// bootstrap while another goroutine resolves on the same container is a
// caller error with an undefined winner.
type Container struct {
	registrations map[reflect.Type]binding
	parent        *Container
	children      []*Container
}

type ContainerOption func(*Container)

// WithParent links the new container under parent. A container may have
// at most one parent; parent links must never form a cycle.
var WithParent = func(parent *Container) ContainerOption {
	return func(c *Container) { c.parent = parent }
}

// New returns a new empty Container.
func New(opts ...ContainerOption) *Container {
	c := &Container{registrations: make(map[reflect.Type]binding)}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Add appends child to the ordered children list; children are searched
// in attachment order during lookup. A container must never be reachable
// from itself via parent or child links: a cycle yields unbounded
// recursion and is not detected by the core.
func (c *Container) Add(child *Container) {
	c.children = append(c.children, child)
}

// lookup is the depth-first, first-match-wins search: self, then each
// attached child in order (recursively), then the parent (recursively).
// A requested name with no matching named variant is a miss at this
// container even when an unnamed entry for key exists here.
func (c *Container) lookup(key reflect.Type, name string) binding {
	if b, ok := c.registrations[key]; ok {
		if name == "" {
			return b
		}

		if v := b.variant(name); v != nil {
			return v
		}
	}

	for _, child := range c.children {
		if b := child.lookup(key, name); b != nil {
			return b
		}
	}

	if c.parent != nil {
		return c.parent.lookup(key, name)
	}

	return nil
}

// RegisterIn adds an unnamed factory for T to c. Re-registering the same
// type replaces the factory on the existing entry in place, preserving
// its scope, mutator, named variants and cache identity, and returns the
// original handle.
func RegisterIn[T any](c *Container, factory Factory[T]) *Registration[T] {
	key := typeOf[T]()

	if r, ok := c.registrations[key].(*Registration[T]); ok {
		r.factory = factory
		return r
	}

	r := newRegistration(c, "", factory)
	c.registrations[key] = r

	return r
}

// RegisterNamedIn adds a named variant of T to c. The variant is
// independent of the unnamed entry for T; re-registering the same name
// replaces only that variant.
func RegisterNamedIn[T any](c *Container, name string, factory Factory[T]) *Registration[T] {
	if name == "" {
		return RegisterIn(c, factory)
	}

	key := typeOf[T]()

	primary, ok := c.registrations[key].(*Registration[T])
	if !ok {
		// Holds the named sub-map only; resolving it unnamed fails with
		// ErrNoFactory until a factory is registered.
		primary = newRegistration[T](c, "", nil)
		c.registrations[key] = primary
	}

	r := newRegistration(c, name, factory)

	if primary.names == nil {
		primary.names = make(map[string]*Registration[T])
	}

	primary.names[name] = r

	return r
}

// ResolveIn resolves T from c. A lookup miss or construction failure is
// unrecoverable: the offending type and name are reported and the call
// terminates the resolution path.
func ResolveIn[T any](c *Container, args any) T {
	return ResolveNamedIn[T](c, "", args)
}

// ResolveNamedIn resolves the named variant of T from c; fatal on a miss.
func ResolveNamedIn[T any](c *Container, name string, args any) T {
	service, err := OptionalNamedIn[T](c, name, args)
	if err != nil {
		fatalResolution(err, typeOf[T](), name)
	}

	return service
}

// OptionalIn resolves T from c, returning an error instead of
// terminating when no match is found or construction yields nothing.
func OptionalIn[T any](c *Container, args any) (T, error) {
	return OptionalNamedIn[T](c, "", args)
}

// OptionalNamedIn resolves the named variant of T from c, returning an
// error on a miss.
func OptionalNamedIn[T any](c *Container, name string, args any) (T, error) {
	ensureBootstrapped()

	var zero T

	key := typeOf[T]()

	b := c.lookup(key, name)
	if b == nil {
		return zero, newNotRegisteredError(key, name)
	}

	service, err := b.resolve(c, args)
	if err != nil {
		return zero, newResolutionError(err, key, name)
	}

	instance, ok := service.(T)
	if !ok {
		return zero, newResolutionError(newWrongInstanceError(service, key), key, name)
	}

	return instance, nil
}
