package image

import (
	"image"
	"image/color"
	"testing"
)

func TestToNRGBA_Passthrough(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	if got := ToNRGBA(src); got != src {
		t.Error("ToNRGBA copied an origin-anchored NRGBA image")
	}
}

func TestToNRGBA_Gray(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 10, 10))
	gray.SetGray(5, 5, color.Gray{Y: 128})

	got := ToNRGBA(gray)

	if c := got.NRGBAAt(5, 5); c != (color.NRGBA{R: 128, G: 128, B: 128, A: 255}) {
		t.Errorf("pixel = %+v, want gray 128 opaque", c)
	}
}

func TestToNRGBA_Premultiplied(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	rgba.SetRGBA(1, 1, color.RGBA{R: 100, G: 50, B: 0, A: 200})

	got := ToNRGBA(rgba)

	want := color.NRGBAModel.Convert(color.RGBA{R: 100, G: 50, B: 0, A: 200}).(color.NRGBA)
	if c := got.NRGBAAt(1, 1); c != want {
		t.Errorf("pixel = %+v, want %+v", c, want)
	}
}

func TestToNRGBA_OffsetBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 14, 23))
	src.SetNRGBA(10, 20, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

	got := ToNRGBA(src)

	if got.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds = %v, want (0,0)-(4,3)", got.Bounds())
	}
	if c := got.NRGBAAt(0, 0); c != (color.NRGBA{R: 1, G: 2, B: 3, A: 4}) {
		t.Errorf("pixel = %+v, want {1 2 3 4}", c)
	}
}
