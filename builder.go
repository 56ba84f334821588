package ioc

import (
	"context"

	"github.com/dozm/ioc/errorx"
	"github.com/dozm/ioc/reflectx"
)

type bindOptions struct {
	cache CacheName
}

type BindOption func(*bindOptions)

// InCache destines the binding's instances for the named cache tier.
func InCache(name CacheName) BindOption {
	return func(o *bindOptions) {
		o.cache = name
	}
}

func (c *Container) bind(id ServiceID, lifetime Lifetime, factory Factory, opts []BindOption) *Container {
	if factory == nil {
		panic(errorx.NewArgumentNilError("factory"))
	}

	var o bindOptions
	for _, opt := range opts {
		opt(&o)
	}

	return c.wrap(newBinding(c.head, id, lifetime, factory, o.cache, reflectx.FuncName(factory), c.log))
}

// WithSingleton binds id to factory. The first successfully created instance
// is retained and returned by every later resolution.
func (c *Container) WithSingleton(id ServiceID, factory Factory, opts ...BindOption) *Container {
	return c.bind(id, Lifetime_Singleton, factory, opts)
}

// WithTransient binds id to factory, invoked on every resolution.
func (c *Container) WithTransient(id ServiceID, factory Factory, opts ...BindOption) *Container {
	return c.bind(id, Lifetime_Transient, factory, opts)
}

// WithInstance binds id to an existing value.
func (c *Container) WithInstance(id ServiceID, v any, opts ...BindOption) *Container {
	return c.bind(id, Lifetime_Singleton, Value(v), opts)
}

// WithCache adds a named cache tier over the current chain.
func (c *Container) WithCache(name CacheName) *Container {
	if name == NoCache {
		panic(errorx.NewArgumentError("cache name must not be empty"))
	}
	return c.wrap(newNamedCache(c.head, name, c.log))
}

// WithRedirects adds a layer rewriting requests by rules. The rules are copied.
func (c *Container) WithRedirects(rules RedirectRules) *Container {
	return c.wrap(&redirectMap{prev: c.head, rules: rules.clone(), log: c.log})
}

// Wrap installs a custom layer built around the current head.
func (c *Container) Wrap(fn func(prev Layer) Layer) *Container {
	if fn == nil {
		panic(errorx.NewArgumentNilError("fn"))
	}
	l := fn(c.head)
	if l == nil {
		panic(errorx.NewArgumentNilError("layer"))
	}
	return c.wrap(l)
}

// AddSingleton binds the main variant of the service derived from T.
func AddSingleton[T any](c *Container, factory Factory, opts ...BindOption) *Container {
	return c.WithSingleton(ServiceOf[T](), factory, opts...)
}

// AddTransient binds the main variant of the service derived from T.
func AddTransient[T any](c *Container, factory Factory, opts ...BindOption) *Container {
	return c.WithTransient(ServiceOf[T](), factory, opts...)
}

// AddInstance binds the main variant of the service derived from T to v,
// tagged with T.
func AddInstance[T any](c *Container, v T, opts ...BindOption) *Container {
	typ := reflectx.TypeOf[T]()
	return c.WithSingleton(ServiceOf[T](), func(context.Context, Resolver) (any, error) {
		return tagged{value: v, typ: typ}, nil
	}, opts...)
}
