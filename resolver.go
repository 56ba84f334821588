package ioc

import (
	"context"

	"github.com/dozm/ioc/errorx"
)

// Request travels down the chain for a single resolution. It is owned by one
// call path and is never shared between goroutines.
type Request struct {
	// Top is the layer the resolution started from; bindings hand it, guarded,
	// to their factories.
	Top     Layer
	Service ServiceID

	shadow     map[ServiceID]int
	interested map[CacheName]struct{}
}

func newRequest(top Layer, id ServiceID) *Request {
	return &Request{
		Top:        top,
		Service:    id,
		shadow:     map[ServiceID]int{id: 1},
		interested: make(map[CacheName]struct{}),
	}
}

// ShadowLevel reports how deep the service is nested in its own construction
// on this call path. 1 is the baseline; an untracked service reads as 1.
func (r *Request) ShadowLevel(id ServiceID) int {
	if l, ok := r.shadow[id]; ok {
		return l
	}
	return 1
}

func (r *Request) shadowed() bool {
	return r.ShadowLevel(r.Service) > 1
}

func (r *Request) enterShadow(id ServiceID) {
	r.shadow[id] = r.ShadowLevel(id) + 1
}

func (r *Request) leaveShadow(id ServiceID) {
	if l := r.ShadowLevel(id); l > 1 {
		r.shadow[id] = l - 1
	}
}

// Interested reports whether a cache layer with this name already claimed the request.
func (r *Request) Interested(name CacheName) bool {
	_, ok := r.interested[name]
	return ok
}

func (r *Request) markInterest(name CacheName) {
	r.interested[name] = struct{}{}
}

// Response carries a resolved instance back up the chain. Cache names the
// cache tier the instance is destined for, or NoCache.
type Response struct {
	Instance *Instance
	Cache    CacheName
}

// Resolver resolves services. Factories receive a Resolver scoped to the
// resolution that invoked them.
type Resolver interface {
	Resolve(ctx context.Context, id ServiceID) (*Instance, error)
	Variants(name string) []string
}

func instantiate(ctx context.Context, top Layer, id ServiceID) (*Response, error) {
	return top.Instantiate(ctx, newRequest(top, id))
}

// layerResolver resolves from an arbitrary layer, typically a shadow guard
// wrapping the chain a factory was invoked from.
type layerResolver struct {
	top Layer
}

func (r layerResolver) Resolve(ctx context.Context, id ServiceID) (*Instance, error) {
	resp, err := instantiate(ctx, r.top, id)
	if err != nil {
		return nil, err
	}
	return resp.Instance, nil
}

func (r layerResolver) Variants(name string) []string {
	return r.top.Variants(name)
}

func serviceNotFound(id ServiceID) error {
	return &errorx.ServiceNotFound{Service: id.Name, Variant: id.Variant}
}

func creationError(id ServiceID, err error) error {
	return &errorx.CreationError{Service: id.Name, Variant: id.Variant, Err: err}
}
