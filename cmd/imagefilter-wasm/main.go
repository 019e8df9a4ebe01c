//go:build wasip1

// imagefilter-wasm is a WebAssembly reactor exposing the filters to a host
// that shares linear memory with the module.
//
// Build with:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o imagefilter.wasm ./cmd/imagefilter-wasm
//
// The host calls get_memory for an input and an output buffer, writes
// width*height*4 RGBA bytes at the returned offset, calls one of the
// *_image exports and reads the result back before release_memory.
package main

import (
	"log/slog"

	"github.com/gogpu/imagefilter"
)

func main() {}

// buffers resolves the input and output handles of an export call. ok is
// false, and the call is logged, when either handle is not live or too small.
func buffers(name string, input, output uint32, width, height int32) (in, out []byte, ok bool) {
	in, out, err := imagefilter.ResolveBuffers(imagefilter.Handle(input), imagefilter.Handle(output), int(width), int(height))
	if err != nil {
		imagefilter.Logger().Warn("imagefilter-wasm: call ignored",
			slog.String("call", name), slog.String("error", err.Error()))
		return nil, nil, false
	}
	return in, out, true
}

//go:wasmexport get_memory
func getMemory(size int32) uint32 {
	return uint32(imagefilter.Allocate(int(size)))
}

//go:wasmexport release_memory
func releaseMemory(ptr uint32) {
	imagefilter.Release(imagefilter.Handle(ptr))
}

//go:wasmexport blur_image
func blurImage(input, output uint32, width, height, blurAmount int32) {
	if in, out, ok := buffers("blur_image", input, output, width, height); ok {
		imagefilter.Blur(in, out, int(width), int(height), int(blurAmount))
	}
}

//go:wasmexport sharpen_image
func sharpenImage(input, output uint32, width, height int32) {
	if in, out, ok := buffers("sharpen_image", input, output, width, height); ok {
		imagefilter.Sharpen(in, out, int(width), int(height))
	}
}

//go:wasmexport brighten_image
func brightenImage(input, output uint32, width, height int32, brightness float32) {
	if in, out, ok := buffers("brighten_image", input, output, width, height); ok {
		imagefilter.Brighten(in, out, int(width), int(height), brightness)
	}
}

//go:wasmexport grayscale_image
func grayscaleImage(input, output uint32, width, height int32) {
	if in, out, ok := buffers("grayscale_image", input, output, width, height); ok {
		imagefilter.Grayscale(in, out, int(width), int(height))
	}
}
