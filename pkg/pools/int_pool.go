package pools

import (
	"sync"
)

// IntPool pools slices of int for distance values, sort buffers, etc.
type IntPool struct {
	small  sync.Pool // <= 16 elements
	medium sync.Pool // <= 64 elements
	large  sync.Pool // <= 256 elements
}

// NewIntPool creates a new int slice pool.
func NewIntPool() *IntPool {
	return &IntPool{
		small: sync.Pool{
			New: func() any {
				s := make([]int, 0, 16)
				return &s
			},
		},
		medium: sync.Pool{
			New: func() any {
				s := make([]int, 0, 64)
				return &s
			},
		},
		large: sync.Pool{
			New: func() any {
				s := make([]int, 0, 256)
				return &s
			},
		},
	}
}

// Get returns an int slice with at least the requested capacity.
func (p *IntPool) Get(size int) []int {
	var pool *sync.Pool
	switch {
	case size <= 16:
		pool = &p.small
	case size <= 64:
		pool = &p.medium
	case size <= 256:
		pool = &p.large
	default:
		return make([]int, 0, size)
	}

	sp, ok := pool.Get().(*[]int)
	if !ok || cap(*sp) < size {
		return make([]int, 0, size)
	}
	return (*sp)[:0]
}

// Put returns an int slice to the pool.
func (p *IntPool) Put(s []int) {
	c := cap(s)
	if c > 10000 {
		return // Don't pool very large slices
	}

	s = s[:0]

	var pool *sync.Pool
	switch {
	case c <= 16:
		pool = &p.small
	case c <= 64:
		pool = &p.medium
	case c <= 256:
		pool = &p.large
	default:
		return
	}

	pool.Put(&s)
}

// Default global int pool
var defaultIntPool = NewIntPool()

// GetInts returns an int slice from the default pool.
func GetInts(size int) []int {
	return defaultIntPool.Get(size)
}

// PutInts returns an int slice to the default pool.
func PutInts(s []int) {
	defaultIntPool.Put(s)
}
