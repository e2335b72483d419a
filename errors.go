package reso

import (
	"fmt"
	"reflect"
)

var (
	// ErrNoFactory reports an entry that exists only to hold named
	// variants: lookup finds it, but it cannot construct anything.
	ErrNoFactory = fmt.Errorf("registration has no factory")

	// ErrNilInstance reports a factory that returned a nil pointer
	// where a cacheable instance was required.
	ErrNilInstance = fmt.Errorf("factory returned a nil instance")
)

func newNotRegisteredError(key reflect.Type, name string) error {
	return &NotRegisteredError{Type: key, Name: name}
}

// NotRegisteredError reports a lookup miss: no registration for the
// requested type and name anywhere in the reachable container tree.
type NotRegisteredError struct {
	Type reflect.Type
	Name string
}

func (err *NotRegisteredError) Error() string {
	if err.Name == "" {
		return fmt.Sprintf("%s is not registered", err.Type)
	}

	return fmt.Sprintf("%s %q is not registered", err.Type, err.Name)
}

func newConstructionError(cause error) error {
	return &ConstructionError{cause: cause}
}

// ConstructionError reports a factory that yielded no instance.
type ConstructionError struct {
	cause error
}

func (err *ConstructionError) Error() string {
	return fmt.Sprintf("factory returned an error: %s", err.cause)
}

func (err *ConstructionError) Unwrap() error {
	return err.cause
}

func newResolutionError(cause error, key reflect.Type, name string) error {
	return &ResolutionError{cause: cause, Type: key, Name: name}
}

// ResolutionError carries the requested type and name of a failed
// resolution.
type ResolutionError struct {
	cause error
	Type  reflect.Type
	Name  string
}

func (err *ResolutionError) Error() string {
	if err.Name == "" {
		return fmt.Sprintf("cannot resolve %s: %s", err.Type, err.cause)
	}

	return fmt.Sprintf("cannot resolve %s %q: %s", err.Type, err.Name, err.cause)
}

func (err *ResolutionError) Unwrap() error {
	return err.cause
}

func newNarrowingError(from, to reflect.Type) error {
	return &NarrowingError{From: from, To: to}
}

// NarrowingError reports a forwarding entry whose source instance does
// not provide the requested capability.
type NarrowingError struct {
	From, To reflect.Type
}

func (err *NarrowingError) Error() string {
	return fmt.Sprintf("%s does not implement %s", err.From, err.To)
}

func newWrongInstanceError(instance any, key reflect.Type) error {
	return &WrongInstanceError{Instance: instance, Type: key}
}

// WrongInstanceError reports a factory result that cannot be assigned to
// the registered capability type.
type WrongInstanceError struct {
	Instance any
	Type     reflect.Type
}

func (err *WrongInstanceError) Error() string {
	return fmt.Sprintf("factory produced %T, want %s", err.Instance, err.Type)
}

func newScopeIncompatibleError(key reflect.Type, name string, instance reflect.Type) error {
	return &ScopeIncompatibleError{Type: key, Name: name, Instance: instance}
}

// ScopeIncompatibleError reports an instance kind that cannot be weakly
// referenced used with the Shared scope. It is always fatal: it marks a
// configuration error, not a transient absence.
type ScopeIncompatibleError struct {
	Type     reflect.Type
	Name     string
	Instance reflect.Type
}

func (err *ScopeIncompatibleError) Error() string {
	return fmt.Sprintf(
		"shared scope requires a pointer instance for %s, got %s",
		err.Type,
		err.Instance,
	)
}
