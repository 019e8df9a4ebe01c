package image

import (
	"image"

	"github.com/nfnt/resize"
)

// Fit downscales img so that neither side exceeds maxSize, preserving the
// aspect ratio. Images already within bounds, or a maxSize of 0 or less,
// return img unchanged.
func Fit(img image.Image, maxSize int) image.Image {
	if maxSize <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxSize && b.Dy() <= maxSize {
		return img
	}
	return resize.Thumbnail(uint(maxSize), uint(maxSize), img, resize.Lanczos3)
}
