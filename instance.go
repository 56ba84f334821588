package ioc

import "reflect"

// Instance is a type-erased handle to a resolved service. Handles are shared
// by pointer: two resolutions of the same singleton yield the same *Instance.
type Instance struct {
	value any
	typ   reflect.Type
}

// NewInstance wraps v, tagging it with its dynamic type.
func NewInstance(v any) *Instance {
	return &Instance{value: v, typ: reflect.TypeOf(v)}
}

func newTypedInstance(v any, typ reflect.Type) *Instance {
	if typ == nil {
		typ = reflect.TypeOf(v)
	}
	return &Instance{value: v, typ: typ}
}

func (i *Instance) Value() any {
	return i.value
}

// Type returns the runtime type tag of the handle.
func (i *Instance) Type() reflect.Type {
	return i.typ
}

// As performs a checked downcast of the handle's value.
func As[T any](i *Instance) (T, bool) {
	if i == nil {
		var zero T
		return zero, false
	}
	v, ok := i.value.(T)
	return v, ok
}
