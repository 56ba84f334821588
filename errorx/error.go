package errorx

import (
	"fmt"
	"reflect"
	"strings"
)

type ArgumentNilError struct {
	Name string
}

func (e *ArgumentNilError) Error() string {
	return fmt.Sprintf("ArgumentNilError: %v", e.Name)
}

func NewArgumentNilError(name string) *ArgumentNilError {
	return &ArgumentNilError{name}
}

type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("ArgumentError: %v", e.Message)
}

func NewArgumentError(message string) *ArgumentError {
	return &ArgumentError{message}
}

type FuncSignatureError struct {
	Message string
}

func (e *FuncSignatureError) Error() string {
	return fmt.Sprintf("FuncSignatureError: %v", e.Message)
}

// ServiceNotFound is returned when no layer of the chain claims the requested service.
type ServiceNotFound struct {
	Service string
	Variant string
}

func (e *ServiceNotFound) Error() string {
	return fmt.Sprintf("ServiceNotFound '%v'", qualify(e.Service, e.Variant))
}

// CreationError decorates the error returned by a bound factory with the service it was bound for.
type CreationError struct {
	Service string
	Variant string
	Err     error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("CreationError '%v': %v", qualify(e.Service, e.Variant), e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

type TypeMismatch struct {
	Service  string
	Variant  string
	Expected reflect.Type
	Actual   reflect.Type
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("TypeMismatch '%v': the value of type '%v' can not assignable to type '%v'",
		qualify(e.Service, e.Variant), e.Actual, e.Expected)
}

// MissingCacheError reports a binding whose destined cache is never claimed by a cache layer.
type MissingCacheError struct {
	Service string
	Variant string
	Cache   string
}

func (e *MissingCacheError) Error() string {
	return fmt.Sprintf("MissingCacheError '%v': no cache layer named '%v' above the binding", qualify(e.Service, e.Variant), e.Cache)
}

type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Add(err error) {
	e.Errors = append(e.Errors, err)
}

func (e *AggregateError) Error() string {
	var b strings.Builder
	b.WriteString("AggregateError: \n")
	for _, e := range e.Errors {
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

func qualify(service, variant string) string {
	if variant == "" {
		return service
	}
	return service + "[" + variant + "]"
}
