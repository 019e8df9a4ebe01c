package filter

// Blur applies a box blur of the given radius to src and writes the result to dst.
//
// For every pixel with radius <= x < width-radius and radius <= y < height-radius,
// each channel (alpha included) becomes the truncated integer mean of the
// (2*radius+1)^2 samples in the square window centered on the pixel.
// Pixels closer than radius to an edge are not written.
//
// Radius 0 copies src to dst over the full frame. A negative radius writes nothing.
func Blur(src, dst []byte, width, height, radius int) {
	if radius < 0 {
		return
	}

	side := 2*radius + 1
	count := side * side

	for y := radius; y < height-radius; y++ {
		for x := radius; x < width-radius; x++ {
			var r, g, b, a int

			for wy := y - radius; wy <= y+radius; wy++ {
				start := (wy*width + x - radius) * 4
				end := start + side*4
				for i := start; i < end; i += 4 {
					r += int(src[i+0])
					g += int(src[i+1])
					b += int(src[i+2])
					a += int(src[i+3])
				}
			}

			dstIdx := (y*width + x) * 4
			dst[dstIdx+0] = uint8(r / count)
			dst[dstIdx+1] = uint8(g / count)
			dst[dstIdx+2] = uint8(b / count)
			dst[dstIdx+3] = uint8(a / count)
		}
	}
}
