package imagefilter

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	intImage "github.com/gogpu/imagefilter/internal/image"
)

// Handle identifies a buffer obtained from an Allocator.
// Its value is the address of the buffer's first byte.
type Handle uintptr

// NullHandle is returned when an allocation cannot be satisfied.
const NullHandle Handle = 0

// MaxAllocSize is the largest request Allocate serves (1 GiB).
const MaxAllocSize = 1 << 30

// maxPooledPerClass limits idle buffers kept per size class.
const maxPooledPerClass = 4

// ErrUnknownHandle is returned by ResolveBuffers for a handle that is not live.
var ErrUnknownHandle = errors.New("imagefilter: unknown handle")

// handleOf returns the handle of buf: the address of its first byte.
func handleOf(buf []byte) Handle {
	return Handle(uintptr(unsafe.Pointer(unsafe.SliceData(buf))))
}

// Allocator hands out byte buffers to hosts that cannot manage Go memory.
//
// A buffer stays reachable (and therefore at a fixed address) from Allocate
// until Release. Buffers are not zeroed: a recycled buffer keeps the bytes
// its previous owner wrote.
//
// Thread safety: All methods are safe for concurrent use.
type Allocator struct {
	mu   sync.Mutex
	live map[Handle][]byte
	pool *intImage.Pool
}

// NewAllocator creates an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{
		live: make(map[Handle][]byte),
		pool: intImage.NewPool(maxPooledPerClass),
	}
}

// Allocate returns a handle to a buffer of at least size bytes.
// It returns NullHandle when size is not positive or exceeds MaxAllocSize.
func (a *Allocator) Allocate(size int) Handle {
	if size <= 0 || size > MaxAllocSize {
		Logger().Warn("imagefilter: allocation refused", slog.Int("size", size))
		return NullHandle
	}

	buf := a.pool.Get(size)
	h := handleOf(buf)

	a.mu.Lock()
	a.live[h] = buf
	a.mu.Unlock()

	return h
}

// Release returns the buffer behind h to the allocator.
// Releasing NullHandle is a no-op. Releasing an unknown or already released
// handle is logged and ignored.
func (a *Allocator) Release(h Handle) {
	if h == NullHandle {
		return
	}

	a.mu.Lock()
	buf, ok := a.live[h]
	delete(a.live, h)
	a.mu.Unlock()

	if !ok {
		Logger().Warn("imagefilter: release of unknown handle", slog.Uint64("handle", uint64(h)))
		return
	}
	a.pool.Put(buf)
}

// Bytes returns the live buffer behind h, or nil if h is not live.
// The slice is only valid until h is released.
func (a *Allocator) Bytes(h Handle) []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.live[h]
}

// ResolveBuffers returns the width*height*4 byte prefixes of the live
// buffers behind input and output. Handles must be exactly those returned by
// Allocate; an address inside a buffer is not resolved.
func (a *Allocator) ResolveBuffers(input, output Handle, width, height int) (in, out []byte, err error) {
	if width <= 0 || height <= 0 {
		return nil, nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	size := width * height * BytesPerPixel

	a.mu.Lock()
	in, inOK := a.live[input]
	out, outOK := a.live[output]
	a.mu.Unlock()

	switch {
	case !inOK:
		return nil, nil, fmt.Errorf("%w: input %#x", ErrUnknownHandle, uintptr(input))
	case !outOK:
		return nil, nil, fmt.Errorf("%w: output %#x", ErrUnknownHandle, uintptr(output))
	case len(in) < size:
		return nil, nil, fmt.Errorf("%w: input has %d bytes, need %d", ErrDataTooSmall, len(in), size)
	case len(out) < size:
		return nil, nil, fmt.Errorf("%w: output has %d bytes, need %d", ErrDataTooSmall, len(out), size)
	}
	return in[:size], out[:size], nil
}

// Live returns the number of buffers allocated and not yet released.
func (a *Allocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// defaultAllocator backs the package-level Allocate, Release and Bytes.
var defaultAllocator = NewAllocator()

// Allocate returns a handle to a buffer of at least size bytes from the
// default allocator, or NullHandle if the request cannot be satisfied.
func Allocate(size int) Handle {
	return defaultAllocator.Allocate(size)
}

// Release returns a buffer to the default allocator.
func Release(h Handle) {
	defaultAllocator.Release(h)
}

// Bytes returns the live buffer behind h in the default allocator.
func Bytes(h Handle) []byte {
	return defaultAllocator.Bytes(h)
}

// ResolveBuffers resolves an input/output pair in the default allocator.
func ResolveBuffers(input, output Handle, width, height int) (in, out []byte, err error) {
	return defaultAllocator.ResolveBuffers(input, output, width, height)
}
