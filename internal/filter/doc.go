// Package filter provides the pixel kernels behind imagefilter.
//
// Every kernel reads a source RGBA8 buffer and writes a destination buffer of
// the same layout: row-major, four interleaved bytes per pixel (R, G, B, A),
// len = width*height*4. Kernels are stateless and never allocate.
//
// Kernels trust their arguments. A buffer shorter than width*height*4 is a
// caller bug and surfaces as an index-out-of-range panic.
//
// Boundary behavior:
//   - Blur leaves a band of radius pixels along every edge of dst unwritten.
//   - Sharpen leaves the outermost 1-pixel ring of dst unwritten, alpha included.
//
// Callers that need defined edges must seed dst (for example with a copy of src)
// before running these two kernels.
package filter
