package ioc

import (
	"context"
	"fmt"
	"reflect"

	"github.com/dozm/ioc/errorx"
	"github.com/dozm/ioc/reflectx"
)

type Lifetime byte

const (
	Lifetime_Singleton Lifetime = iota
	Lifetime_Transient
)

func (l Lifetime) String() string {
	switch l {
	case Lifetime_Singleton:
		return "Singleton"
	case Lifetime_Transient:
		return "Transient"
	default:
		return fmt.Sprintf("Lifetime(%d)", byte(l))
	}
}

// Factory creates a service instance. r resolves the factory's own dependencies.
type Factory func(ctx context.Context, r Resolver) (any, error)

// tagged is produced by factories that declare the type tag of their
// instances. Bindings unwrap it before building the Instance.
type tagged struct {
	value any
	typ   reflect.Type
}

func unwrapTagged(v any) *Instance {
	if t, ok := v.(tagged); ok {
		return newTypedInstance(t.value, t.typ)
	}
	return NewInstance(v)
}

// Provide adapts a typed constructor function into a Factory. Instances it
// produces are tagged with T rather than their dynamic type.
func Provide[T any](f func(ctx context.Context, r Resolver) (T, error)) Factory {
	if f == nil {
		panic(errorx.NewArgumentNilError("f"))
	}
	typ := reflectx.TypeOf[T]()
	return func(ctx context.Context, r Resolver) (any, error) {
		v, err := f(ctx, r)
		if err != nil {
			return nil, err
		}
		return tagged{value: v, typ: typ}, nil
	}
}

// Value returns a Factory that always yields v.
func Value(v any) Factory {
	return func(context.Context, Resolver) (any, error) { return v, nil }
}

type ConstructorInfo struct {
	FuncType  reflect.Type
	FuncValue reflect.Value
	// input parameter types
	In []reflect.Type
	// output parameter types
	Out []reflect.Type
}

func (c *ConstructorInfo) Call(params []reflect.Value) []reflect.Value {
	return c.FuncValue.Call(params)
}

func newConstructorInfo(ctor any) (*ConstructorInfo, error) {
	if ctor == nil {
		return nil, errorx.NewArgumentNilError("ctor")
	}
	ft := reflect.TypeOf(ctor)
	if ft.Kind() != reflect.Func {
		return nil, &errorx.FuncSignatureError{Message: fmt.Sprintf("'%v' is not a function", ft)}
	}
	return &ConstructorInfo{
		FuncValue: reflect.ValueOf(ctor),
		FuncType:  ft,
		In:        reflectx.Params(ft),
		Out:       reflectx.Results(ft),
	}, nil
}

// resolveParams resolves the constructor's parameters in order. Context and
// Resolver parameters are injected directly; any other parameter is resolved
// by the ServiceID derived from its type.
func (c *ConstructorInfo) resolveParams(ctx context.Context, r Resolver) ([]reflect.Value, error) {
	values := make([]reflect.Value, len(c.In))
	for i, t := range c.In {
		switch {
		case reflectx.IsContextType(t):
			values[i] = reflect.ValueOf(&ctx).Elem()
		case t == resolverType:
			values[i] = reflect.ValueOf(&r).Elem()
		default:
			inst, err := r.Resolve(ctx, ServiceOfType(t))
			if err != nil {
				return nil, err
			}
			v, err := assignable(inst, t, ServiceOfType(t))
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
	}
	return values, nil
}

var resolverType = reflectx.TypeOf[Resolver]()

func assignable(inst *Instance, t reflect.Type, id ServiceID) (reflect.Value, error) {
	if inst.Value() == nil {
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(inst.Value())
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, &errorx.TypeMismatch{Service: id.Name, Variant: id.Variant, Expected: t, Actual: v.Type()}
	}
	return v, nil
}

func checkConstructor(ctor *ConstructorInfo) error {
	out := ctor.Out
	numOut := len(out)
	if (numOut == 0 || numOut > 2) ||
		(numOut == 2 && !reflectx.IsErrorType(out[1])) {
		return &errorx.FuncSignatureError{
			Message: fmt.Sprintf("the constructor '%v' must return a value and an optional error", ctor.FuncType)}
	}
	return nil
}

func callConstructor(ctor *ConstructorInfo, in []reflect.Value) (any, error) {
	outValues := ctor.Call(in)
	if len(outValues) == 2 && !outValues[1].IsZero() {
		return nil, outValues[1].Interface().(error)
	}
	return outValues[0].Interface(), nil
}

// Constructor adapts a plain constructor function into a Factory. The function
// must return T or (T, error); its parameters are resolved as in Invoke.
// Instances are tagged with T. An invalid signature panics.
func Constructor(ctor any) Factory {
	ci, err := newConstructorInfo(ctor)
	if err == nil {
		err = checkConstructor(ci)
	}
	if err != nil {
		panic(err)
	}

	typ := ci.Out[0]
	return func(ctx context.Context, r Resolver) (any, error) {
		in, err := ci.resolveParams(ctx, r)
		if err != nil {
			return nil, err
		}
		v, err := callConstructor(ci, in)
		if err != nil {
			return nil, err
		}
		return tagged{value: v, typ: typ}, nil
	}
}
