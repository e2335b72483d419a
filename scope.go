package reso

import (
	"reflect"
	"sync"
)

// Built-in scopes. A scope instance owns one cache shared by every
// registration that references it, across all containers.
var (
	// Application caches the first successful construction per
	// registration key for the life of the process.
	Application Scope = &singletonScope{}

	// Cached behaves like Application and adds an explicit Reset.
	Cached = NewCacheScope()

	// Graph shares instances within a single outer resolution call tree
	// and forgets them once that call tree completes. This is the
	// default scope.
	Graph Scope = &graphScope{}

	// Shared caches by non-owning reference: an instance is reused only
	// while the embedding application still holds it elsewhere. Only
	// pointer instances are eligible. Small pointer-free instances may
	// be co-located with live neighbors by the tiny allocator and so
	// outlive their last strong reference.
	Shared Scope = &sharedScope{}

	// Unique never caches; every resolution invokes the factory.
	Unique Scope = uniqueScope{}
)

// DefaultScope is assigned to registrations that do not choose a scope.
// Reassignment is a caller-synchronized operation.
var DefaultScope = Graph

var (
	_ Scope = (*singletonScope)(nil)
	_ Scope = (*CacheScope)(nil)
	_ Scope = (*graphScope)(nil)
	_ Scope = (*sharedScope)(nil)
	_ Scope = uniqueScope{}
)

// Scope is a caching strategy applied at resolution time, independent of
// and shared across containers.
// This interface is sealed.
type Scope interface {
	resolve(c *Container, p provider, args any) (any, error)
}

// provider is the slice of a registration a scope needs: a stable cache
// key and the construct-then-mutate sequence.
type provider interface {
	instanceKey() instanceKey
	instantiate(c *Container, args any) (any, error)
}

// instanceKey identifies one registration's cache slot within a scope.
type instanceKey struct {
	key  reflect.Type
	name string
}

type singletonScope struct {
	mu    sync.Mutex
	cache map[instanceKey]any
}

func (s *singletonScope) resolve(c *Container, p provider, args any) (any, error) {
	key := p.instanceKey()

	s.mu.Lock()
	if instance, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return instance, nil
	}
	s.mu.Unlock()

	// The lock is not held across construction: the factory may reenter
	// this scope for its own dependencies. Two goroutines racing the
	// first construction both build; one result wins.
	instance, err := p.instantiate(c, args)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if cached, ok := s.cache[key]; ok {
		instance = cached
	} else {
		if s.cache == nil {
			s.cache = make(map[instanceKey]any)
		}

		s.cache[key] = instance
	}
	s.mu.Unlock()

	return instance, nil
}

func (s *singletonScope) reset() {
	s.mu.Lock()
	clear(s.cache)
	s.mu.Unlock()
}

// CacheScope is a process-lifetime cache with an explicit reset.
// Resetting affects every registration using this scope instance.
type CacheScope struct {
	singletonScope
}

// NewCacheScope returns a CacheScope with its own private cache; Cached
// is merely the well-known instance.
func NewCacheScope() *CacheScope {
	return &CacheScope{}
}

// Reset clears the cache. The next resolution of each affected
// registration builds a fresh instance.
func (s *CacheScope) Reset() {
	s.reset()
}

// graphScope memoizes instances for the duration of one outer resolution
// call tree, so that multiple dependents within a single call share the
// same instance per registration key. A depth counter tracks reentrancy:
// nested resolutions made by factories populate the same cache, and the
// whole cache is discarded once the counter returns to zero. An instance
// finished at depth zero is never cached.
//
// Concurrent top-level resolutions through the same scope instance share
// one sharing window.
type graphScope struct {
	mu    sync.Mutex
	depth int
	cache map[instanceKey]any
}

func (s *graphScope) resolve(c *Container, p provider, args any) (any, error) {
	key := p.instanceKey()

	s.mu.Lock()
	if instance, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return instance, nil
	}
	s.depth++
	s.mu.Unlock()

	instance, err := p.instantiate(c, args)

	s.mu.Lock()
	s.depth--

	switch {
	case s.depth == 0:
		clear(s.cache)
	case err == nil:
		if s.cache == nil {
			s.cache = make(map[instanceKey]any)
		}

		s.cache[key] = instance
	}
	s.mu.Unlock()

	return instance, err
}

// sharedScope stores non-owning handles. A cache hit requires the
// instance to still be alive elsewhere; a dead handle is dropped and the
// factory runs again. An instance kind that cannot be weakly referenced
// is a configuration error and terminates resolution regardless of which
// entry point was used.
type sharedScope struct {
	mu    sync.Mutex
	cache map[instanceKey]weakRef
}

func (s *sharedScope) resolve(c *Container, p provider, args any) (any, error) {
	key := p.instanceKey()

	s.mu.Lock()
	if ref, ok := s.cache[key]; ok {
		if instance, alive := ref.value(); alive {
			s.mu.Unlock()
			return instance, nil
		}

		delete(s.cache, key)
	}
	s.mu.Unlock()

	instance, err := p.instantiate(c, args)
	if err != nil {
		return nil, err
	}

	ref, ok := makeWeakRef(instance)
	if !ok {
		// A nil pointer yielded nothing; only non-pointer kinds mark a
		// scope-configuration error.
		if v := reflect.ValueOf(instance); v.Kind() == reflect.Pointer {
			return nil, newConstructionError(ErrNilInstance)
		}

		err := newScopeIncompatibleError(key.key, key.name, reflect.TypeOf(instance))
		logger().Error(
			"service cannot be weakly referenced",
			"type", key.key.String(), "name", key.name, "error", err,
		)
		panic(err)
	}

	s.mu.Lock()
	if s.cache == nil {
		s.cache = make(map[instanceKey]weakRef)
	}

	s.cache[key] = ref
	s.mu.Unlock()

	return instance, nil
}

type uniqueScope struct{}

func (uniqueScope) resolve(c *Container, p provider, args any) (any, error) {
	return p.instantiate(c, args)
}
