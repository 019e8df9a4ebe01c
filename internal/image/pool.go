// Package image provides host-side buffer and codec helpers for imagefilter.
//
// It holds the byte pool behind the imagefilter allocator, the conversion of
// arbitrary image.Image values to straight-alpha RGBA8, and the file codecs
// used by the command line host. The filter kernels themselves never decode
// or encode images.
package image

import (
	"math/bits"
	"sync"
)

// minClassBits is the log2 of the smallest size class handed out by a Pool.
const minClassBits = 6

// Pool is a thread-safe pool for reusing byte buffers.
//
// Pool groups buffers into power-of-two size classes, so a request for n bytes
// can be served by any released buffer of the same class. Reused buffers are
// NOT cleared: callers receive whatever bytes the previous owner left behind.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]byte
	maxSize int // max buffers per bucket
}

// NewPool creates a new buffer pool with the given maximum buffers per bucket.
// A maxPerBucket of 0 or less means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// classSize returns the capacity of the size class serving n bytes.
func classSize(n int) int {
	if n <= 1<<minClassBits {
		return 1 << minClassBits
	}
	return 1 << bits.Len(uint(n-1))
}

// Get returns a buffer of length size, reusing a pooled buffer when one of the
// matching size class is available. Returns nil if size is not positive.
func (p *Pool) Get(size int) []byte {
	if size <= 0 {
		return nil
	}
	class := classSize(size)

	p.mu.Lock()
	bucket := p.buckets[class]
	if n := len(bucket); n > 0 {
		buf := bucket[n-1]
		bucket[n-1] = nil
		p.buckets[class] = bucket[:n-1]
		p.mu.Unlock()
		return buf[:size]
	}
	p.mu.Unlock()

	return make([]byte, size, class)
}

// Put returns a buffer obtained from Get to the pool.
// Buffers whose capacity is not a size class, and buffers arriving at a full
// bucket, are discarded.
func (p *Pool) Put(buf []byte) {
	class := cap(buf)
	if class == 0 || classSize(class) != class {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[class]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[class] = append(bucket, buf[:class])
}

// Pooled returns the number of idle buffers held for requests of size bytes.
func (p *Pool) Pooled(size int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[classSize(size)])
}
