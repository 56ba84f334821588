package ioc

import (
	"reflect"

	"github.com/dozm/ioc/reflectx"
	"github.com/dozm/ioc/syncx"
)

// ServiceID names a requested capability. The zero Variant is the main variant.
type ServiceID struct {
	Name    string
	Variant string
}

func Service(name string) ServiceID {
	return ServiceID{Name: name}
}

func ServiceVariant(name, variant string) ServiceID {
	return ServiceID{Name: name, Variant: variant}
}

func (id ServiceID) String() string {
	if id.Variant == "" {
		return id.Name
	}
	return id.Name + "[" + id.Variant + "]"
}

// CacheName identifies a named cache tier.
type CacheName string

// NoCache marks a response that is not destined for any cache.
const NoCache CacheName = ""

var typeIDs = syncx.NewMap[reflect.Type, ServiceID]()

// ServiceOfType derives the main-variant ServiceID of a Go type from its type string.
func ServiceOfType(t reflect.Type) ServiceID {
	id, _ := typeIDs.LoadOrCreate(t, func(t reflect.Type) ServiceID {
		return Service(t.String())
	})
	return id
}

func ServiceOf[T any]() ServiceID {
	return ServiceOfType(reflectx.TypeOf[T]())
}
