package ioc

import (
	"context"
	"fmt"

	"github.com/dozm/ioc/errorx"
	"github.com/dozm/ioc/reflectx"
)

// Get resolves id from r as T, panicking on failure.
func Get[T any](ctx context.Context, r Resolver, id ServiceID) T {
	result, err := TryGet[T](ctx, r, id)
	if err != nil {
		panic(err)
	}
	return result
}

// TryGet resolves id from r and checks the instance against T.
func TryGet[T any](ctx context.Context, r Resolver, id ServiceID) (result T, err error) {
	inst, err := r.Resolve(ctx, id)
	if err != nil {
		return
	}

	result, ok := As[T](inst)
	if !ok {
		err = &errorx.TypeMismatch{
			Service:  id.Name,
			Variant:  id.Variant,
			Expected: reflectx.TypeOf[T](),
			Actual:   inst.Type(),
		}
		return
	}

	return
}

// ResolveEach resolves ids in order and returns the instances positionally.
// It stops at the first failure.
func ResolveEach(ctx context.Context, r Resolver, ids ...ServiceID) ([]*Instance, error) {
	instances := make([]*Instance, len(ids))
	for i, id := range ids {
		inst, err := r.Resolve(ctx, id)
		if err != nil {
			return nil, err
		}
		instances[i] = inst
	}
	return instances, nil
}

// ResolveVariants resolves every variant of the named service known to r.
func ResolveVariants(ctx context.Context, r Resolver, name string) (map[string]*Instance, error) {
	variants := r.Variants(name)
	result := make(map[string]*Instance, len(variants))
	for _, v := range variants {
		inst, err := r.Resolve(ctx, ServiceVariant(name, v))
		if err != nil {
			return nil, err
		}
		result[v] = inst
	}
	return result, nil
}

// Invoke the function fn.
// the input parameters of fn are resolved from r by the ServiceID derived
// from their types; context.Context and Resolver parameters receive ctx and r.
func Invoke(ctx context.Context, r Resolver, fn any) (fnReturn []any, err error) {
	ci, err := newConstructorInfo(fn)
	if err != nil {
		return
	}

	inputs, err := ci.resolveParams(ctx, r)
	if err != nil {
		return
	}

	outputs := ci.Call(inputs)
	if len(outputs) > 0 {
		fnReturn = make([]any, len(outputs))
		for i, v := range outputs {
			fnReturn[i] = v.Interface()
		}
	}

	return
}

// MustResolve is Resolve that panics on failure, for composition roots.
func MustResolve(ctx context.Context, r Resolver, id ServiceID) *Instance {
	inst, err := r.Resolve(ctx, id)
	if err != nil {
		panic(fmt.Errorf("resolve %v: %w", id, err))
	}
	return inst
}
