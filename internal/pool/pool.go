// Package pool provides a typed wrapper around sync.Pool for buffers reused
// on every invocation.
package pool

import (
	"sync"
)

// Pool is a typed object pool. Objects are reset before reuse.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T)
}

// New creates a pool; reset may be nil
func New[T any](factory func() *T, reset func(*T)) *Pool[T] {
	return &Pool[T]{
		pool:  sync.Pool{New: func() any { return factory() }},
		reset: reset,
	}
}

// Get retrieves an object from the pool or creates a new one
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	if p.reset != nil {
		p.reset(obj)
	}
	return obj
}

// Put returns an object to the pool for reuse
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	p.pool.Put(obj)
}

// maxBufferCap keeps oversized buffers out of the pool
const maxBufferCap = 4096

var buffers = New(
	func() *[]byte { b := make([]byte, 0, 64); return &b },
	func(b *[]byte) { *b = (*b)[:0] },
)

// GetBuffer returns an empty byte buffer
func GetBuffer() *[]byte { return buffers.Get() }

// PutBuffer returns b to the pool; buffers that grew large are dropped.
func PutBuffer(b *[]byte) {
	if b == nil || cap(*b) > maxBufferCap {
		return
	}
	buffers.Put(b)
}
