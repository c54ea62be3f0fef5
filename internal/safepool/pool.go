package safepool

import "sync"

// Pool is a type-safe wrapper around sync.Pool for non-Resettable values
// (see pools.ResettablePool for the Resettable-aware variant). Until the
// standard library's sync.Pool is itself generic, this wrapper is what
// every safepool-based pool in this module is built on, including
// BufferPool.
type Pool[T any] struct {
	p sync.Pool
}

// NewPool returns a Pool whose zero-value items are produced by newFn.
func NewPool[T any](newFn func() T) *Pool[T] {
	return &Pool[T]{
		p: sync.Pool{
			New: func() interface{} {
				return newFn()
			},
		},
	}
}

// Get returns an item from the pool, allocating a new one via newFn if
// the pool is currently empty.
func (p *Pool[T]) Get() T {
	return p.p.Get().(T)
}

// Put returns item to the pool for reuse.
func (p *Pool[T]) Put(item T) {
	p.p.Put(item)
}
