package filter

// Test helper functions shared across filter tests.

// sentinel marks destination bytes a kernel must leave untouched.
const sentinel = 0xAB

// newSolid returns a w*h RGBA buffer with every pixel set to (r, g, b, a).
func newSolid(w, h int, r, g, b, a uint8) []byte {
	buf := make([]byte, w*h*4)
	for i := 0; i < len(buf); i += 4 {
		buf[i+0] = r
		buf[i+1] = g
		buf[i+2] = b
		buf[i+3] = a
	}
	return buf
}

// newFilled returns a buffer of n bytes all set to v.
func newFilled(n int, v byte) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = v
	}
	return buf
}

// newGradient returns a w*h RGBA buffer whose samples vary per pixel and channel.
func newGradient(w, h int) []byte {
	buf := make([]byte, w*h*4)
	for i := range buf {
		buf[i] = byte((i*37 + i/4*11) % 256)
	}
	return buf
}

// setPixel writes one RGBA pixel into buf.
func setPixel(buf []byte, w, x, y int, r, g, b, a uint8) {
	i := (y*w + x) * 4
	buf[i+0] = r
	buf[i+1] = g
	buf[i+2] = b
	buf[i+3] = a
}

// pixelAt returns the RGBA bytes of one pixel.
func pixelAt(buf []byte, w, x, y int) [4]byte {
	i := (y*w + x) * 4
	return [4]byte{buf[i+0], buf[i+1], buf[i+2], buf[i+3]}
}

// isBorder reports whether (x, y) lies within band pixels of the frame edge.
func isBorder(x, y, w, h, band int) bool {
	return x < band || y < band || x >= w-band || y >= h-band
}
