package ioc

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dozm/ioc/syncx"
	"github.com/dozm/ioc/util"
)

// binding answers requests for exactly one service by invoking its factory.
// Singleton bindings retain the first successfully created instance.
type binding struct {
	prev     Layer
	id       ServiceID
	lifetime Lifetime
	factory  Factory
	cache    CacheName
	memo     *syncx.Lazy[*Instance]
	name     string
	log      *zap.Logger
}

func newBinding(prev Layer, id ServiceID, lifetime Lifetime, factory Factory, cache CacheName, name string, log *zap.Logger) *binding {
	b := &binding{
		prev:     prev,
		id:       id,
		lifetime: lifetime,
		factory:  factory,
		cache:    cache,
		name:     name,
		log:      log,
	}
	if lifetime == Lifetime_Singleton {
		b.memo = new(syncx.Lazy[*Instance])
	}
	return b
}

func (b *binding) Kind() LayerKind {
	return LayerKind_Binding
}

func (b *binding) Previous() Layer {
	return b.prev
}

func (b *binding) Instantiate(ctx context.Context, req *Request) (*Response, error) {
	if req.Service != b.id {
		return b.prev.Instantiate(ctx, req)
	}

	// A factory asking for its own service is served by whatever is bound
	// below this binding, never by this binding again.
	if req.ShadowLevel(b.id) > 1 {
		req.leaveShadow(b.id)
		return b.prev.Instantiate(ctx, req)
	}

	req.enterShadow(b.id)
	top := &shadowGuard{prev: req.Top, id: b.id}

	var inst *Instance
	var err error
	if b.memo != nil {
		inst, err = b.memo.Get(func() (*Instance, error) { return b.create(ctx, top) })
	} else {
		inst, err = b.create(ctx, top)
	}
	if err != nil {
		return nil, err
	}

	return &Response{Instance: inst, Cache: b.cache}, nil
}

func (b *binding) create(ctx context.Context, top Layer) (inst *Instance, err error) {
	defer func() {
		if p := recover(); p != nil {
			e, ok := p.(error)
			if !ok {
				e = fmt.Errorf("%v", p)
			}
			inst, err = nil, creationError(b.id, e)
		}
	}()

	v, err := b.factory(ctx, layerResolver{top: top})
	if err != nil {
		b.log.Debug("service creation failed", zap.Stringer("service", b.id), zap.Error(err))
		return nil, creationError(b.id, err)
	}

	b.log.Debug("service created",
		zap.Stringer("service", b.id),
		zap.Stringer("lifetime", b.lifetime),
		zap.String("factory", b.name))
	return unwrapTagged(v), nil
}

func (b *binding) Variants(name string) []string {
	prev := b.prev.Variants(name)
	if name != b.id.Name {
		return prev
	}
	set := util.ToSet(prev...)
	set[b.id.Variant] = struct{}{}
	return util.SortedKeys(set)
}

func (b *binding) String() string {
	if b.cache == NoCache {
		return fmt.Sprintf("%v(%v)", b.lifetime, b.id)
	}
	return fmt.Sprintf("%v(%v -> %v)", b.lifetime, b.id, b.cache)
}

// shadowGuard wraps the chain handed to a factory. Requests that pass through
// it for the guarded service gain one shadow level, so the binding that owns
// the factory steps aside for them.
type shadowGuard struct {
	prev Layer
	id   ServiceID
}

func (g *shadowGuard) Kind() LayerKind {
	return LayerKind_Shadow
}

func (g *shadowGuard) Previous() Layer {
	return g.prev
}

func (g *shadowGuard) Instantiate(ctx context.Context, req *Request) (*Response, error) {
	if req.Service == g.id {
		req.enterShadow(g.id)
	}
	return g.prev.Instantiate(ctx, req)
}

func (g *shadowGuard) Variants(name string) []string {
	return g.prev.Variants(name)
}

func (g *shadowGuard) String() string {
	return fmt.Sprintf("Shadow(%v)", g.id)
}
