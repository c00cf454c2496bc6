package pools

import (
	"sync"
)

// Buffer size classes, sized for snapshot bodies. Encode scratch for a
// graph runs a few bytes per edge, so small fixture graphs land in the
// scratch class and real edge lists in the body classes.
const (
	ScratchSize = 512        // varint scratch, fixture-sized graphs
	SmallBody   = 16 * 1024  // encode bodies up to a few thousand edges
	LargeBody   = 256 * 1024 // typical snapshot bodies
)

// BytePool provides size-class based pooling for the byte buffers the
// snapshot codec churns through: encode bodies before compression and
// compressed blocks read back from disk.
type BytePool struct {
	scratch sync.Pool // <= ScratchSize
	small   sync.Pool // <= SmallBody
	large   sync.Pool // <= LargeBody
}

// NewBytePool creates a new byte pool with pre-allocated buffers.
func NewBytePool() *BytePool {
	return &BytePool{
		scratch: sync.Pool{
			New: func() any {
				b := make([]byte, 0, ScratchSize)
				return &b
			},
		},
		small: sync.Pool{
			New: func() any {
				b := make([]byte, 0, SmallBody)
				return &b
			},
		},
		large: sync.Pool{
			New: func() any {
				b := make([]byte, 0, LargeBody)
				return &b
			},
		},
	}
}

// Get returns a byte slice with at least the requested capacity and
// zero length. Requests beyond LargeBody allocate directly.
func (p *BytePool) Get(size int) []byte {
	var pool *sync.Pool
	switch {
	case size <= ScratchSize:
		pool = &p.scratch
	case size <= SmallBody:
		pool = &p.small
	case size <= LargeBody:
		pool = &p.large
	default:
		return make([]byte, 0, size)
	}

	bp, ok := pool.Get().(*[]byte)
	if !ok || cap(*bp) < size {
		return make([]byte, 0, size)
	}
	return (*bp)[:0]
}

// GetSized returns a byte slice with exactly the requested length, for
// readers that fill a known-length block with io.ReadFull.
func (p *BytePool) GetSized(size int) []byte {
	b := p.Get(size)
	return b[:size]
}

// Put returns a byte slice to the pool for reuse.
// Slices larger than LargeBody are not pooled.
func (p *BytePool) Put(b []byte) {
	c := cap(b)
	b = b[:0]

	var pool *sync.Pool
	switch {
	case c <= ScratchSize:
		pool = &p.scratch
	case c <= SmallBody:
		pool = &p.small
	case c <= LargeBody:
		pool = &p.large
	default:
		return
	}

	pool.Put(&b)
}

// Default global byte pool
var defaultBytePool = NewBytePool()

// GetBytes returns a byte slice from the default pool.
func GetBytes(size int) []byte {
	return defaultBytePool.Get(size)
}

// GetBytesSized returns a byte slice with exact length from the default pool.
func GetBytesSized(size int) []byte {
	return defaultBytePool.GetSized(size)
}

// PutBytes returns a byte slice to the default pool.
func PutBytes(b []byte) {
	defaultBytePool.Put(b)
}
