package reso

// This package provides a small hierarchical service registry.
// Callers ask for a value of a capability type, optionally by name,
// and receive an instance produced by a previously registered factory
// without knowing which concrete implementation or container supplied it.
// Instance lifetime is governed by a caching scope chosen per registration.

import "reflect"

// Factory produces an instance of T on behalf of the resolving container.
// A non-nil error means construction yielded nothing.
type Factory[T any] func(c *Container, args any) (T, error)

// Mutator is invoked after successful construction with the resolving
// container, the construction arguments and the new instance,
// for property-style post-injection.
type Mutator[T any] func(c *Container, args any, instance T)

// Lazy defers an optional resolution until called.
type Lazy[T any] func(args any) (T, error)

var (
	// Main is the process-wide default container.
	Main = New()

	// Root is the container ambient calls are routed through.
	// It defaults to Main; swapping it at runtime redirects all ambient
	// resolutions without altering Main's registrations. The swap itself
	// is a caller-synchronized operation: last write wins.
	Root = Main
)

// Register adds an unnamed factory for T to Root.
func Register[T any](factory Factory[T]) *Registration[T] {
	return RegisterIn(Root, factory)
}

// RegisterNamed adds a named variant of T to Root.
func RegisterNamed[T any](name string, factory Factory[T]) *Registration[T] {
	return RegisterNamedIn(Root, name, factory)
}

// Resolve resolves T from Root. A lookup miss or construction failure is
// unrecoverable and terminates the resolution path.
func Resolve[T any](args any) T {
	return ResolveIn[T](Root, args)
}

// ResolveNamed resolves the named variant of T from Root.
func ResolveNamed[T any](name string, args any) T {
	return ResolveNamedIn[T](Root, name, args)
}

// Optional resolves T from Root, returning an error instead of
// terminating when no match is found or construction yields nothing.
func Optional[T any](args any) (T, error) {
	return OptionalIn[T](Root, args)
}

// OptionalNamed resolves the named variant of T from Root, returning an
// error on a miss.
func OptionalNamed[T any](name string, args any) (T, error) {
	return OptionalNamedIn[T](Root, name, args)
}

// Prepare captures c and returns a Lazy performing the optional
// resolution of T on demand.
func Prepare[T any](c *Container) Lazy[T] {
	return func(args any) (T, error) {
		return OptionalIn[T](c, args)
	}
}

// PrepareNamed captures c and returns a Lazy performing the optional
// resolution of the named variant of T on demand.
func PrepareNamed[T any](c *Container, name string) Lazy[T] {
	return func(args any) (T, error) {
		return OptionalNamedIn[T](c, name, args)
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
