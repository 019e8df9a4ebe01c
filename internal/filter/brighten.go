package filter

// Brighten scales the R, G and B channels of every pixel by factor.
//
// Samples are visited in raw buffer order. Alpha (every fourth byte) is copied.
// Color samples become trunc(sample*factor) clamped to [0, 255]; the product is
// computed in float32. A negative or NaN factor yields 0.
func Brighten(src, dst []byte, width, height int, factor float32) {
	n := width * height * 4

	for i := 0; i < n; i++ {
		if i%4 == 3 {
			dst[i] = src[i]
			continue
		}
		dst[i] = scaleByte(src[i], factor)
	}
}

// scaleByte multiplies v by factor, truncating toward zero and saturating at 0 and 255.
func scaleByte(v uint8, factor float32) uint8 {
	p := float32(v) * factor
	if !(p > 0) {
		return 0
	}
	if p >= 255 {
		return 255
	}
	return uint8(p)
}
