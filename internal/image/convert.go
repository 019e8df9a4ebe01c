package image

import (
	"image"

	"golang.org/x/image/draw"
)

// ToNRGBA returns img as a straight-alpha RGBA8 image whose bounds start at the origin.
// An *image.NRGBA already anchored at the origin with a tight stride is returned as is.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == b.Dx()*4 {
		return n
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
