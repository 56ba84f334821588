package ioc

import (
	"github.com/dozm/ioc/errorx"
)

// claimable is the set of cache names that a response emitted at some depth
// of the chain would be stored under by a cache layer above it. NoCache is
// claimable when nothing rewrites it into a missing cache.
type claimable map[CacheName]struct{}

func (c claimable) has(name CacheName) bool {
	_, ok := c[name]
	return ok
}

type chainValidator struct {
	errs errorx.AggregateError
}

// Validate walks the chain from the newest layer to the root and reports
// every binding whose instances are destined for a cache that no layer above
// the binding can claim.
func (c *Container) Validate() error {
	v := &chainValidator{}
	v.visitLayer(c.head, claimable{NoCache: {}})
	if len(v.errs.Errors) > 0 {
		return &v.errs
	}
	return nil
}

func (v *chainValidator) visitLayer(l Layer, caches claimable) {
	for l != nil {
		switch l.Kind() {
		case LayerKind_Root:
			return
		case LayerKind_Binding:
			v.visitBinding(l.(*binding), caches)
		case LayerKind_Cache:
			caches = v.visitCache(l.(*namedCache), caches)
		case LayerKind_Redirect:
			caches = v.visitRedirect(l.(*redirectMap), caches)
		}

		w, ok := l.(Wrapper)
		if !ok {
			return
		}
		l = w.Previous()
	}
}

func (v *chainValidator) visitBinding(b *binding, caches claimable) {
	if !caches.has(b.cache) {
		v.errs.Add(&errorx.MissingCacheError{
			Service: b.id.Name,
			Variant: b.id.Variant,
			Cache:   string(b.cache),
		})
	}
}

func (v *chainValidator) visitCache(c *namedCache, caches claimable) claimable {
	if caches.has(c.name) {
		return caches
	}
	next := make(claimable, len(caches)+1)
	for name := range caches {
		next[name] = struct{}{}
	}
	next[c.name] = struct{}{}
	return next
}

// visitRedirect maps the claimable set through the redirect's cache rules: a
// name below the redirect is claimable when its rewritten name is claimable above.
func (v *chainValidator) visitRedirect(m *redirectMap, caches claimable) claimable {
	next := make(claimable, len(caches))
	for name := range caches {
		if _, rewritten := m.rules.Caches[name]; !rewritten {
			next[name] = struct{}{}
		}
	}
	for from, to := range m.rules.Caches {
		if caches.has(to) {
			next[from] = struct{}{}
		}
	}
	return next
}
