package imagefilter

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"unsafe"
)

func TestAllocateRoundTrip(t *testing.T) {
	a := NewAllocator()

	for _, size := range []int{1, 64, 100, 4096, 640 * 480 * 4} {
		h := a.Allocate(size)
		if h == NullHandle {
			t.Fatalf("Allocate(%d) = NullHandle", size)
		}

		buf := a.Bytes(h)
		if len(buf) < size {
			t.Fatalf("len(Bytes) = %d, want >= %d", len(buf), size)
		}
		for i := 0; i < size; i++ {
			buf[i] = byte(i * 7)
		}
		again := a.Bytes(h)
		for i := 0; i < size; i++ {
			if again[i] != byte(i*7) {
				t.Fatalf("size %d: byte %d = %d, want %d", size, i, again[i], byte(i*7))
			}
		}

		a.Release(h)
	}

	if n := a.Live(); n != 0 {
		t.Errorf("Live() = %d after releasing everything, want 0", n)
	}
}

func TestAllocateHandleIsAddress(t *testing.T) {
	a := NewAllocator()
	h := a.Allocate(32)
	t.Cleanup(func() { a.Release(h) })

	buf := a.Bytes(h)
	if got := handleOf(buf); got != h {
		t.Errorf("handle %#x does not match handleOf(buf) %#x", h, got)
	}
	if addr := Handle(uintptr(unsafe.Pointer(&buf[0]))); addr != h {
		t.Errorf("handle %#x does not match &buf[0] %#x", h, addr)
	}
}

func TestAllocateRefused(t *testing.T) {
	a := NewAllocator()
	for _, size := range []int{0, -1, MaxAllocSize + 1} {
		if h := a.Allocate(size); h != NullHandle {
			t.Errorf("Allocate(%d) = %#x, want NullHandle", size, h)
		}
	}
	if n := a.Live(); n != 0 {
		t.Errorf("Live() = %d, want 0", n)
	}
}

func TestAllocateDistinctHandles(t *testing.T) {
	a := NewAllocator()
	seen := make(map[Handle]bool)
	var handles []Handle

	for i := 0; i < 16; i++ {
		h := a.Allocate(128)
		if seen[h] {
			t.Fatalf("handle %#x returned twice while live", h)
		}
		seen[h] = true
		handles = append(handles, h)
	}
	if n := a.Live(); n != 16 {
		t.Errorf("Live() = %d, want 16", n)
	}
	for _, h := range handles {
		a.Release(h)
	}
}

func TestReleaseNullIsNoop(t *testing.T) {
	a := NewAllocator()
	a.Release(NullHandle)
	if n := a.Live(); n != 0 {
		t.Errorf("Live() = %d, want 0", n)
	}
}

func TestReleaseTwiceIsLogged(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	a := NewAllocator()
	h := a.Allocate(10)
	a.Release(h)
	a.Release(h)

	if !strings.Contains(buf.String(), "release of unknown handle") {
		t.Errorf("double release not logged, got: %s", buf.String())
	}
	if b := a.Bytes(h); b != nil {
		t.Errorf("Bytes(released) = %v, want nil", b)
	}
}

func TestAllocatorConcurrent(t *testing.T) {
	a := NewAllocator()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				h := a.Allocate(256 + i)
				if h == NullHandle {
					t.Error("Allocate returned NullHandle")
					return
				}
				a.Bytes(h)[0] = 1
				a.Release(h)
			}
		}()
	}
	wg.Wait()

	if n := a.Live(); n != 0 {
		t.Errorf("Live() = %d, want 0", n)
	}
}

func TestDefaultAllocator(t *testing.T) {
	h := Allocate(16)
	if h == NullHandle {
		t.Fatal("Allocate(16) = NullHandle")
	}
	if len(Bytes(h)) != 16 {
		t.Errorf("len(Bytes) = %d, want 16", len(Bytes(h)))
	}
	Release(h)
	if Bytes(h) != nil {
		t.Error("Bytes after Release should be nil")
	}
}

func TestResolveBuffers(t *testing.T) {
	a := NewAllocator()

	// 3x3 RGBA needs 36 bytes.
	in := a.Allocate(36)
	out := a.Allocate(36)
	small := a.Allocate(20)
	released := a.Allocate(36)
	a.Release(released)
	t.Cleanup(func() {
		a.Release(in)
		a.Release(out)
		a.Release(small)
	})

	tests := []struct {
		name          string
		input, output Handle
		width, height int
		wantErr       error
	}{
		{"valid pair", in, out, 3, 3, nil},
		{"smaller frame", in, out, 2, 2, nil},
		{"same buffer", in, in, 3, 3, nil},
		{"zero width", in, out, 0, 3, ErrInvalidDimensions},
		{"negative height", in, out, 3, -1, ErrInvalidDimensions},
		{"null input", NullHandle, out, 3, 3, ErrUnknownHandle},
		{"interior pointer", in, out + 4, 3, 3, ErrUnknownHandle},
		{"released output", in, released, 3, 3, ErrUnknownHandle},
		{"input too small", small, out, 3, 3, ErrDataTooSmall},
		{"output too small", in, small, 3, 3, ErrDataTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotIn, gotOut, err := a.ResolveBuffers(tt.input, tt.output, tt.width, tt.height)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ResolveBuffers error = %v, want %v", err, tt.wantErr)
				}
				if gotIn != nil || gotOut != nil {
					t.Error("ResolveBuffers returned buffers with an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveBuffers error = %v", err)
			}
			size := tt.width * tt.height * BytesPerPixel
			if len(gotIn) != size || len(gotOut) != size {
				t.Errorf("len = %d, %d, want %d", len(gotIn), len(gotOut), size)
			}
			if handleOf(gotIn) != tt.input || handleOf(gotOut) != tt.output {
				t.Error("resolved slices do not start at the handles")
			}
		})
	}
}

func TestResolveBuffersDrivesFilter(t *testing.T) {
	in := Allocate(36)
	out := Allocate(36)
	t.Cleanup(func() {
		Release(in)
		Release(out)
	})

	src, dst, err := ResolveBuffers(in, out, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(src); i += 4 {
		src[i], src[i+1], src[i+2], src[i+3] = 100, 100, 100, 255
	}
	src[16] = 120 // center red

	Sharpen(src, dst, 3, 3)

	// 2*120 - 800/8 = 140; the result is visible through the handle.
	if got := Bytes(out)[16]; got != 140 {
		t.Errorf("center red via handle = %d, want 140", got)
	}
}
