package syncx

import (
	"sync"
)

// Map is a typed view over sync.Map. Entries are only ever added.
type Map[K comparable, V any] struct {
	data sync.Map
}

func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{}
}

func (m *Map[K, V]) Store(key K, value V) {
	m.data.Store(key, value)
}

func (m *Map[K, V]) Load(key K) (value V, ok bool) {
	v, ok := m.data.Load(key)
	if !ok {
		return value, false
	}
	return v.(V), true
}

// LoadOrStore returns the existing value for key if present and otherwise
// stores value. loaded reports whether the value was already there.
func (m *Map[K, V]) LoadOrStore(key K, value V) (actual V, loaded bool) {
	v, loaded := m.data.LoadOrStore(key, value)
	return v.(V), loaded
}

// LoadOrCreate is LoadOrStore with a value computed on a miss. Racing callers
// may each run create; only one result is kept and returned to all of them.
func (m *Map[K, V]) LoadOrCreate(key K, create func(K) V) (actual V, loaded bool) {
	if v, ok := m.Load(key); ok {
		return v, true
	}
	return m.LoadOrStore(key, create(key))
}

func (m *Map[K, V]) Len() (n int) {
	m.data.Range(func(_, _ any) bool {
		n++
		return true
	})
	return
}
