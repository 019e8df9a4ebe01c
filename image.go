package imagefilter

import (
	"errors"
	"fmt"
	"image"

	intImage "github.com/gogpu/imagefilter/internal/image"
)

// Image errors.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("imagefilter: invalid dimensions")

	// ErrDataTooSmall is returned when a pixel buffer is shorter than width*height*4.
	ErrDataTooSmall = errors.New("imagefilter: data buffer too small")

	// ErrSizeMismatch is returned when source and destination dimensions differ.
	ErrSizeMismatch = errors.New("imagefilter: source and destination sizes differ")

	// ErrNilImage is returned when a filter receives a nil image.
	ErrNilImage = errors.New("imagefilter: nil image")
)

// BytesPerPixel is the size of one RGBA8 pixel.
const BytesPerPixel = 4

// Image is an RGBA8 pixel buffer with explicit dimensions.
//
// Pixels are stored row-major with no padding between rows, four bytes per
// pixel in R, G, B, A order, straight (non-premultiplied) alpha.
type Image struct {
	width  int
	height int
	pix    []byte
}

// NewImage creates a zeroed (transparent black) image.
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Image{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*BytesPerPixel),
	}, nil
}

// FromRaw wraps an existing pixel buffer without copying.
// The caller must keep pix valid for the lifetime of the Image.
func FromRaw(pix []byte, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	size := width * height * BytesPerPixel
	if len(pix) < size {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrDataTooSmall, len(pix), size)
	}
	return &Image{
		width:  width,
		height: height,
		pix:    pix[:size],
	}, nil
}

// FromStdImage copies img into a new Image, converting to straight-alpha RGBA8.
func FromStdImage(img image.Image) *Image {
	n := intImage.ToNRGBA(img)
	b := n.Bounds()

	pix := make([]byte, b.Dx()*b.Dy()*BytesPerPixel)
	copy(pix, n.Pix)

	return &Image{
		width:  b.Dx(),
		height: b.Dy(),
		pix:    pix,
	}
}

// ToStdImage returns a copy of the image as an *image.NRGBA.
func (m *Image) ToStdImage() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.width, m.height))
	copy(out.Pix, m.pix)
	return out
}

// Clone creates a deep copy of the image.
func (m *Image) Clone() *Image {
	pix := make([]byte, len(m.pix))
	copy(pix, m.pix)
	return &Image{width: m.width, height: m.height, pix: pix}
}

// Width returns the image width in pixels.
func (m *Image) Width() int {
	return m.width
}

// Height returns the image height in pixels.
func (m *Image) Height() int {
	return m.height
}

// Stride returns the number of bytes per row.
func (m *Image) Stride() int {
	return m.width * BytesPerPixel
}

// Data returns the raw pixel data.
func (m *Image) Data() []byte {
	return m.pix
}

// PixOffset returns the byte offset of pixel (x, y), or -1 if it is out of bounds.
func (m *Image) PixOffset(x, y int) int {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return -1
	}
	return (y*m.width + x) * BytesPerPixel
}

// RGBAAt returns the channels of pixel (x, y).
// Returns (0,0,0,0) if the coordinates are out of bounds.
func (m *Image) RGBAAt(x, y int) (r, g, b, a uint8) {
	i := m.PixOffset(x, y)
	if i < 0 {
		return 0, 0, 0, 0
	}
	return m.pix[i], m.pix[i+1], m.pix[i+2], m.pix[i+3]
}

// SetRGBA sets pixel (x, y). Out-of-bounds coordinates are ignored.
func (m *Image) SetRGBA(x, y int, r, g, b, a uint8) {
	i := m.PixOffset(x, y)
	if i < 0 {
		return
	}
	m.pix[i] = r
	m.pix[i+1] = g
	m.pix[i+2] = b
	m.pix[i+3] = a
}

// Fill sets every pixel to the given color.
func (m *Image) Fill(r, g, b, a uint8) {
	for i := 0; i < len(m.pix); i += BytesPerPixel {
		m.pix[i] = r
		m.pix[i+1] = g
		m.pix[i+2] = b
		m.pix[i+3] = a
	}
}

// sameSize reports whether both images are non-nil with equal dimensions.
func sameSize(src, dst *Image) error {
	if src == nil || dst == nil {
		return ErrNilImage
	}
	if src.width != dst.width || src.height != dst.height {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, src.width, src.height, dst.width, dst.height)
	}
	return nil
}
