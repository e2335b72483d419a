package reso

import "reflect"

var _ binding = (*Registration[struct{}])(nil)

// binding is the type-erased handle stored in a container's registration
// table. Each concrete *Registration[T] is narrowed back to its type at
// the point of use, guarded by the key match.
type binding interface {
	variant(name string) binding
	resolve(c *Container, args any) (any, error)
}

// A Registration holds one factory for a capability type together with
// its caching scope, an optional post-construction mutator and optional
// named variants. Configuration calls are fluent and return the handle
// they were invoked on.
type Registration[T any] struct {
	owner   *Container
	key     reflect.Type
	name    string
	factory Factory[T]
	mutator Mutator[T]
	scope   Scope
	names   map[string]*Registration[T]
}

func newRegistration[T any](owner *Container, name string, factory Factory[T]) *Registration[T] {
	return &Registration[T]{
		owner:   owner,
		key:     typeOf[T](),
		name:    name,
		factory: factory,
		scope:   DefaultScope,
	}
}

// WithScope replaces the caching scope applied when this registration is
// resolved.
func (r *Registration[T]) WithScope(scope Scope) *Registration[T] {
	r.scope = scope
	return r
}

// WithMutator sets the function invoked after successful construction.
// At most one mutator per entry; a second call replaces the first.
func (r *Registration[T]) WithMutator(mutator Mutator[T]) *Registration[T] {
	r.mutator = mutator
	return r
}

func (r *Registration[T]) variant(name string) binding {
	if v, ok := r.names[name]; ok {
		return v
	}

	return nil
}

func (r *Registration[T]) resolve(c *Container, args any) (any, error) {
	return r.scope.resolve(c, r, args)
}

// instanceKey identifies this registration's cache slot within a scope.
// The same type and name registered in different containers share a slot.
func (r *Registration[T]) instanceKey() instanceKey {
	return instanceKey{key: r.key, name: r.name}
}

// instantiate runs the construction sequence: invoke the factory, then
// the mutator on success. A factory error caches nothing and skips the
// mutator.
func (r *Registration[T]) instantiate(c *Container, args any) (any, error) {
	if r.factory == nil {
		return nil, ErrNoFactory
	}

	instance, err := r.factory(c, args)
	if err != nil {
		return nil, newConstructionError(err)
	}

	if r.mutator != nil {
		r.mutator(c, args, instance)
	}

	return instance, nil
}

// Implements registers a forwarding entry for I alongside r: resolving I
// resolves r's type and narrows the instance to I. An instance that does
// not provide I is a construction failure for the forwarding entry, not
// a fatal error by itself.
func Implements[I, T any](r *Registration[T]) *Registration[I] {
	return ImplementsNamed[I](r, "")
}

// ImplementsNamed registers the forwarding entry as a named variant of I.
func ImplementsNamed[I, T any](r *Registration[T], name string) *Registration[I] {
	source := r.name
	forward := func(c *Container, args any) (I, error) {
		var zero I

		instance, err := OptionalNamedIn[T](c, source, args)
		if err != nil {
			return zero, err
		}

		narrowed, ok := any(instance).(I)
		if !ok {
			return zero, newNarrowingError(typeOf[T](), typeOf[I]())
		}

		return narrowed, nil
	}

	if name == "" {
		return RegisterIn(r.owner, forward)
	}

	return RegisterNamedIn(r.owner, name, forward)
}
