package reflectx

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

var (
	errorType   = TypeOf[error]()
	contextType = TypeOf[context.Context]()
)

func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Params returns the input parameter types of the function type.
func Params(funcType reflect.Type) []reflect.Type {
	mustFunc(funcType)
	n := funcType.NumIn()
	paramTypes := make([]reflect.Type, n)
	for i := 0; i < n; i++ {
		paramTypes[i] = funcType.In(i)
	}
	return paramTypes
}

// Results returns the output parameter types of the function type.
func Results(funcType reflect.Type) []reflect.Type {
	mustFunc(funcType)
	n := funcType.NumOut()
	paramTypes := make([]reflect.Type, n)
	for i := 0; i < n; i++ {
		paramTypes[i] = funcType.Out(i)
	}
	return paramTypes
}

func IsErrorType(t reflect.Type) bool {
	return t.AssignableTo(errorType)
}

func IsContextType(t reflect.Type) bool {
	return t == contextType
}

// FuncName returns the unqualified name of a function value, or "" if f is not a function.
func FuncName(f any) string {
	rv := reflect.ValueOf(f)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return ""
	}
	name := runtime.FuncForPC(rv.Pointer()).Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func mustFunc(t reflect.Type) {
	if t.Kind() != reflect.Func {
		panic(fmt.Errorf("the kind of type '%v' is not function", t))
	}
}
