package filter

// Luminance weights in thousandths (ITU-R BT.601).
const (
	lumR = 299
	lumG = 587
	lumB = 114
)

// Grayscale replaces R, G and B of every pixel with its luminance and copies alpha.
//
// Luminance is floor(0.299*R + 0.587*G + 0.114*B), evaluated exactly in integer
// arithmetic. A gray input therefore maps to itself and the filter is idempotent.
func Grayscale(src, dst []byte, width, height int) {
	n := width * height

	for p := 0; p < n; p++ {
		i := p * 4
		gray := Luminance(src[i+0], src[i+1], src[i+2])

		dst[i+0] = gray
		dst[i+1] = gray
		dst[i+2] = gray
		dst[i+3] = src[i+3]
	}
}

// Luminance returns floor(0.299*r + 0.587*g + 0.114*b).
func Luminance(r, g, b uint8) uint8 {
	return uint8((int(r)*lumR + int(g)*lumG + int(b)*lumB) / 1000)
}
