package ioc

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// instanceStore holds the instances of one cache tier. Entries are never
// evicted; the first stored instance for a service wins.
type instanceStore struct {
	mu        sync.RWMutex
	instances map[ServiceID]*Instance
}

func newInstanceStore() *instanceStore {
	return &instanceStore{instances: make(map[ServiceID]*Instance)}
}

func (s *instanceStore) get(id ServiceID) (*Instance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.instances[id]
	return inst, ok
}

// insertNew stores inst unless an instance is already present, and returns
// whichever instance the store holds afterwards.
func (s *instanceStore) insertNew(id ServiceID, inst *Instance) *Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.instances[id]; ok {
		return existing
	}
	s.instances[id] = inst
	return inst
}

func (s *instanceStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.instances)
}

// namedCache memoizes responses destined for its name. When several caches
// share a name, the outermost one that sees a request is the only one that
// may store its result.
type namedCache struct {
	prev  Layer
	name  CacheName
	store *instanceStore
	log   *zap.Logger
}

func newNamedCache(prev Layer, name CacheName, log *zap.Logger) *namedCache {
	return &namedCache{prev: prev, name: name, store: newInstanceStore(), log: log}
}

func (c *namedCache) Kind() LayerKind {
	return LayerKind_Cache
}

func (c *namedCache) Previous() Layer {
	return c.prev
}

func (c *namedCache) Instantiate(ctx context.Context, req *Request) (*Response, error) {
	if req.shadowed() {
		return c.prev.Instantiate(ctx, req)
	}

	if inst, ok := c.store.get(req.Service); ok {
		return &Response{Instance: inst, Cache: NoCache}, nil
	}

	if req.Interested(c.name) {
		return c.prev.Instantiate(ctx, req)
	}

	req.markInterest(c.name)
	id := req.Service

	resp, err := c.prev.Instantiate(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.Cache == c.name {
		resp.Instance = c.store.insertNew(id, resp.Instance)
		resp.Cache = NoCache
		c.log.Debug("instance cached", zap.Stringer("service", id), zap.String("cache", string(c.name)))
	}
	return resp, nil
}

func (c *namedCache) Variants(name string) []string {
	return c.prev.Variants(name)
}

func (c *namedCache) String() string {
	return fmt.Sprintf("Cache(%v)", c.name)
}
