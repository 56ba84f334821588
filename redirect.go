package ioc

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dozm/ioc/util"
)

// RedirectRules remap requested service names and variants, and the cache a
// response is destined for. Caches may map from or to NoCache.
type RedirectRules struct {
	Services map[string]string
	Variants map[string]string
	Caches   map[CacheName]CacheName
}

func NewRedirectRules() RedirectRules {
	return RedirectRules{
		Services: make(map[string]string),
		Variants: make(map[string]string),
		Caches:   make(map[CacheName]CacheName),
	}
}

func (r RedirectRules) Service(from, to string) RedirectRules {
	if r.Services == nil {
		r.Services = make(map[string]string)
	}
	r.Services[from] = to
	return r
}

func (r RedirectRules) Variant(from, to string) RedirectRules {
	if r.Variants == nil {
		r.Variants = make(map[string]string)
	}
	r.Variants[from] = to
	return r
}

func (r RedirectRules) Cache(from, to CacheName) RedirectRules {
	if r.Caches == nil {
		r.Caches = make(map[CacheName]CacheName)
	}
	r.Caches[from] = to
	return r
}

// clone copies the rules so a composed chain cannot be changed through the
// caller's maps.
func (r RedirectRules) clone() RedirectRules {
	c := NewRedirectRules()
	for k, v := range r.Services {
		c.Services[k] = v
	}
	for k, v := range r.Variants {
		c.Variants[k] = v
	}
	for k, v := range r.Caches {
		c.Caches[k] = v
	}
	return c
}

func (r RedirectRules) rewrite(id ServiceID) ServiceID {
	if to, ok := r.Services[id.Name]; ok {
		id.Name = to
	}
	if to, ok := r.Variants[id.Variant]; ok {
		id.Variant = to
	}
	return id
}

func (r RedirectRules) rewriteCache(name CacheName) CacheName {
	if to, ok := r.Caches[name]; ok {
		return to
	}
	return name
}

type redirectMap struct {
	prev  Layer
	rules RedirectRules
	log   *zap.Logger
}

func (m *redirectMap) Kind() LayerKind {
	return LayerKind_Redirect
}

func (m *redirectMap) Previous() Layer {
	return m.prev
}

func (m *redirectMap) Instantiate(ctx context.Context, req *Request) (*Response, error) {
	if req.shadowed() {
		return m.prev.Instantiate(ctx, req)
	}

	if to := m.rules.rewrite(req.Service); to != req.Service {
		m.log.Debug("service redirected", zap.Stringer("from", req.Service), zap.Stringer("to", to))
		req.Service = to
	}

	resp, err := m.prev.Instantiate(ctx, req)
	if err != nil {
		return nil, err
	}
	resp.Cache = m.rules.rewriteCache(resp.Cache)
	return resp, nil
}

// Variants lists the variants reachable under name after redirection. A rule
// source variant is listed when its target is reachable.
func (m *redirectMap) Variants(name string) []string {
	target := name
	if to, ok := m.rules.Services[name]; ok {
		target = to
	}

	inner := util.ToSet(m.prev.Variants(target)...)
	set := make(map[string]struct{}, len(inner))
	for v := range inner {
		if _, redirected := m.rules.Variants[v]; !redirected {
			set[v] = struct{}{}
		}
	}
	for from, to := range m.rules.Variants {
		if _, ok := inner[to]; ok {
			set[from] = struct{}{}
		}
	}
	return util.SortedKeys(set)
}

func (m *redirectMap) String() string {
	return fmt.Sprintf("Redirect(%d services, %d variants, %d caches)",
		len(m.rules.Services), len(m.rules.Variants), len(m.rules.Caches))
}
