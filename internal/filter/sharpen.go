package filter

// neighborOffsets are the pixel offsets of the 8-neighborhood, excluding the center.
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Sharpen boosts local contrast with an unsharp mask over the 3x3 neighborhood.
//
// For every interior pixel (1 <= x < width-1, 1 <= y < height-1) the R, G and B
// channels become clamp(2*center - mean8, 0, 255), where mean8 is the truncated
// integer mean of the 8 neighbors. Alpha is copied. The outer 1-pixel ring of
// dst is not written.
func Sharpen(src, dst []byte, width, height int) {
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			center := (y*width + x) * 4

			for c := 0; c < 3; c++ {
				sum := 0
				for _, off := range neighborOffsets {
					sum += int(src[((y+off[1])*width+(x+off[0]))*4+c])
				}

				v := int(src[center+c])
				dst[center+c] = clampByte(v + (v - sum/8))
			}

			dst[center+3] = src[center+3]
		}
	}
}
