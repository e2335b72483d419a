package reso

import (
	"reflect"
	"unsafe"
	"weak"
)

// weakRef is a non-owning handle to a pointer instance. The referent's
// type is kept so the pointer can be rebuilt on revival.
type weakRef struct {
	ptr weak.Pointer[byte]
	typ reflect.Type
}

// makeWeakRef returns a weak handle to instance. Only non-nil pointer
// instances can be observed without being kept alive.
func makeWeakRef(instance any) (weakRef, bool) {
	v := reflect.ValueOf(instance)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return weakRef{}, false
	}

	return weakRef{
		ptr: weak.Make((*byte)(v.UnsafePointer())),
		typ: v.Type(),
	}, true
}

// value revives the referent. The second result is false once the
// instance has been collected.
func (r weakRef) value() (any, bool) {
	p := r.ptr.Value()
	if p == nil {
		return nil, false
	}

	return reflect.NewAt(r.typ.Elem(), unsafe.Pointer(p)).Interface(), true
}
