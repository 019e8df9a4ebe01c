// Package imagefilter provides fixed image filters over raw RGBA8 pixel buffers.
//
// # Overview
//
// Four filters are available, each a specific algorithm rather than a
// configurable convolution:
//   - Blur: box blur over a square window of a given radius
//   - Sharpen: unsharp mask over the 3x3 neighborhood
//   - Brighten: per-channel linear scaling with saturation
//   - Grayscale: BT.601 luminance desaturation
//
// Every filter reads one buffer and writes another. Buffers are row-major with
// four interleaved bytes per pixel (R, G, B, A) and length width*height*4.
//
// # Quick Start
//
//	src := imagefilter.FromStdImage(img)
//	dst := src.Clone()
//	if err := imagefilter.NewBlurFilter(3).Apply(src, dst); err != nil {
//	    return err
//	}
//	out := dst.ToStdImage()
//
// The raw entry points ([Blur], [Sharpen], [Brighten], [Grayscale]) take byte
// slices and dimensions directly and trust them: a buffer shorter than
// width*height*4 panics with an index out of range.
//
// # Edge Handling
//
// Blur and Sharpen do not write pixels near the frame edge. Blur leaves a band
// of radius pixels on every side, Sharpen leaves the outer 1-pixel ring,
// alpha included. Whatever dst held there before the call remains; seed dst
// (for example with a copy of src) when defined edges are required.
//
// # Memory
//
// Hosts that cannot manage Go memory directly (a WebAssembly embedder, for
// instance) obtain buffers through [Allocate] and return them with [Release].
// A [Handle] is the address of the buffer's first byte, which on wasm is the
// offset into linear memory the host writes pixels to.
//
// # Logging
//
// The package is silent by default. Use [SetLogger] to receive diagnostics.
package imagefilter
