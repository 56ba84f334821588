// Package ioc is a dependency-injection runtime built from a chain of
// resolution layers.
//
// A Container owns the newest layer of the chain. Every builder method wraps
// the current chain in a new layer and returns a new Container, so later
// bindings are consulted first and existing containers never change:
//
//	c := ioc.New().
//		WithSingleton(ioc.Service("Logger"), newLogger).
//		WithTransient(ioc.Service("Conn"), newConn, ioc.InCache("request")).
//		WithCache("request")
//
//	inst, err := c.Resolve(ctx, ioc.Service("Logger"))
//
// # Layers
//
// Bindings answer requests for one ServiceID with a Singleton or Transient
// lifetime. Named caches store instances whose binding is destined for them.
// Redirects rewrite requested names, variants and destined caches.
//
// # Self reentrancy
//
// A factory may resolve its own service. The request then skips the binding
// that owns the factory and is served by an older binding for the same
// service, or fails with ServiceNotFound. Cycles between two distinct
// services are not detected.
package ioc
