package syncx

import (
	"sync"
	"sync/atomic"
)

// Lazy is a write-once cell. The first successful computation is retained;
// a failed one leaves the cell empty so a later call computes again.
type Lazy[T any] struct {
	mu    sync.Mutex
	done  atomic.Bool
	value T
}

func (l *Lazy[T]) Get(create func() (T, error)) (T, error) {
	if l.done.Load() {
		return l.value, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done.Load() {
		return l.value, nil
	}

	v, err := create()
	if err != nil {
		var zero T
		return zero, err
	}

	l.value = v
	l.done.Store(true)
	return v, nil
}

// Peek returns the retained value without computing it.
func (l *Lazy[T]) Peek() (T, bool) {
	if l.done.Load() {
		return l.value, true
	}
	var zero T
	return zero, false
}
