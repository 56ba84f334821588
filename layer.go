package ioc

import (
	"context"
	"fmt"
)

type LayerKind byte

const (
	LayerKind_Root LayerKind = iota
	LayerKind_Binding
	LayerKind_Shadow
	LayerKind_Cache
	LayerKind_Redirect
	LayerKind_Custom
)

func (k LayerKind) String() string {
	switch k {
	case LayerKind_Root:
		return "Root"
	case LayerKind_Binding:
		return "Binding"
	case LayerKind_Shadow:
		return "Shadow"
	case LayerKind_Cache:
		return "Cache"
	case LayerKind_Redirect:
		return "Redirect"
	case LayerKind_Custom:
		return "Custom"
	default:
		return fmt.Sprintf("LayerKind(%d)", byte(k))
	}
}

// Layer is one link of the resolution chain. A layer either answers a request
// or delegates it, possibly rewritten, to the layer it wraps.
type Layer interface {
	Kind() LayerKind
	Instantiate(ctx context.Context, req *Request) (*Response, error)
	// Variants lists the variants of the named service reachable through this layer.
	Variants(name string) []string
}

// Wrapper is implemented by layers that wrap a previous layer.
type Wrapper interface {
	Previous() Layer
}

type rootLayer struct{}

func (rootLayer) Kind() LayerKind {
	return LayerKind_Root
}

func (rootLayer) Instantiate(_ context.Context, req *Request) (*Response, error) {
	return nil, serviceNotFound(req.Service)
}

func (rootLayer) Variants(string) []string {
	return nil
}

func (rootLayer) String() string {
	return "Root"
}
