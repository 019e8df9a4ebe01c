package imagefilter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/gogpu/imagefilter/internal/filter"
)

// ErrInvalidParameter is returned when a filter parameter is out of range.
var ErrInvalidParameter = errors.New("imagefilter: invalid filter parameter")

// Blur writes a box blur of input to output.
//
// Each channel of every pixel at least blurAmount pixels away from all edges
// becomes the truncated mean of the (2*blurAmount+1)^2 window around it. Alpha is
// blurred like the other channels. Pixels within blurAmount of an edge are NOT
// written; output keeps its previous contents there. blurAmount 0 copies the
// whole frame.
func Blur(input, output []byte, width, height, blurAmount int) {
	start := time.Now()
	filter.Blur(input, output, width, height, blurAmount)
	logCall("blur", width, height, start, slog.Int("radius", blurAmount))
}

// Sharpen writes an unsharp-masked copy of input to output.
//
// For interior pixels, R, G and B become clamp(2*c - mean8, 0, 255) where mean8
// is the truncated mean of the 8 neighbors; alpha is copied. The outer 1-pixel
// ring of output is NOT written.
func Sharpen(input, output []byte, width, height int) {
	start := time.Now()
	filter.Sharpen(input, output, width, height)
	logCall("sharpen", width, height, start)
}

// Brighten scales R, G and B of every pixel by brightness, truncating and
// saturating at 0 and 255. Alpha is copied.
func Brighten(input, output []byte, width, height int, brightness float32) {
	start := time.Now()
	filter.Brighten(input, output, width, height, brightness)
	logCall("brighten", width, height, start, slog.Float64("brightness", float64(brightness)))
}

// Grayscale replaces R, G and B of every pixel with floor(0.299R + 0.587G + 0.114B).
// Alpha is copied.
func Grayscale(input, output []byte, width, height int) {
	start := time.Now()
	filter.Grayscale(input, output, width, height)
	logCall("grayscale", width, height, start)
}

// logCall emits a debug record for a completed filter call.
func logCall(name string, width, height int, start time.Time, attrs ...slog.Attr) {
	l := Logger()
	ctx := context.Background()
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	attrs = append(attrs,
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Duration("elapsed", time.Since(start)),
	)
	l.LogAttrs(ctx, slog.LevelDebug, name, attrs...)
}

// Filter transforms the pixels of src into dst.
//
// src and dst must have equal dimensions and should not be the same image.
// Filters that leave edge pixels unwritten (blur, sharpen) keep dst's previous
// contents there.
type Filter interface {
	// Name returns the registry name of the filter.
	Name() string

	// Apply runs the filter.
	Apply(src, dst *Image) error
}

// BlurFilter applies a box blur of a fixed radius.
type BlurFilter struct {
	// Radius is the half-width of the square averaging window in pixels.
	Radius int
}

// NewBlurFilter creates a blur filter with the given radius.
func NewBlurFilter(radius int) *BlurFilter {
	return &BlurFilter{Radius: radius}
}

// Name returns "blur".
func (f *BlurFilter) Name() string { return "blur" }

// Apply blurs src into dst.
func (f *BlurFilter) Apply(src, dst *Image) error {
	if f.Radius < 0 {
		return fmt.Errorf("%w: blur radius %d", ErrInvalidParameter, f.Radius)
	}
	if err := sameSize(src, dst); err != nil {
		return err
	}
	Blur(src.pix, dst.pix, src.width, src.height, f.Radius)
	return nil
}

// SharpenFilter applies a 3x3 unsharp mask.
type SharpenFilter struct{}

// NewSharpenFilter creates a sharpen filter.
func NewSharpenFilter() *SharpenFilter {
	return &SharpenFilter{}
}

// Name returns "sharpen".
func (f *SharpenFilter) Name() string { return "sharpen" }

// Apply sharpens src into dst.
func (f *SharpenFilter) Apply(src, dst *Image) error {
	if err := sameSize(src, dst); err != nil {
		return err
	}
	Sharpen(src.pix, dst.pix, src.width, src.height)
	return nil
}

// BrightnessFilter scales color channels by a constant factor.
type BrightnessFilter struct {
	// Factor multiplies R, G and B: 0 = black, 1 = unchanged, 2 = twice as bright.
	// Negative factors produce black.
	Factor float32
}

// NewBrightnessFilter creates a brightness filter.
func NewBrightnessFilter(factor float32) *BrightnessFilter {
	return &BrightnessFilter{Factor: factor}
}

// Name returns "brighten".
func (f *BrightnessFilter) Name() string { return "brighten" }

// Apply brightens src into dst.
func (f *BrightnessFilter) Apply(src, dst *Image) error {
	if math.IsNaN(float64(f.Factor)) {
		return fmt.Errorf("%w: brightness is NaN", ErrInvalidParameter)
	}
	if err := sameSize(src, dst); err != nil {
		return err
	}
	Brighten(src.pix, dst.pix, src.width, src.height, f.Factor)
	return nil
}

// GrayscaleFilter converts to BT.601 luminance.
type GrayscaleFilter struct{}

// NewGrayscaleFilter creates a grayscale filter.
func NewGrayscaleFilter() *GrayscaleFilter {
	return &GrayscaleFilter{}
}

// Name returns "grayscale".
func (f *GrayscaleFilter) Name() string { return "grayscale" }

// Apply converts src into dst.
func (f *GrayscaleFilter) Apply(src, dst *Image) error {
	if err := sameSize(src, dst); err != nil {
		return err
	}
	Grayscale(src.pix, dst.pix, src.width, src.height)
	return nil
}

// Chain applies filters in order.
//
// Every intermediate stage writes into a copy of its own input, and dst is
// overwritten with the last stage's input before the last stage runs. Edge
// pixels that blur or sharpen leave unwritten therefore carry the previous
// stage's values. An empty Chain copies src to dst.
type Chain []Filter

// Name joins the stage names with "+".
func (c Chain) Name() string {
	if len(c) == 0 {
		return "identity"
	}
	names := make([]string, len(c))
	for i, f := range c {
		names[i] = f.Name()
	}
	return strings.Join(names, "+")
}

// Apply runs every stage.
func (c Chain) Apply(src, dst *Image) error {
	if err := sameSize(src, dst); err != nil {
		return err
	}

	cur := src
	for i, f := range c {
		if i == len(c)-1 {
			break
		}
		out := cur.Clone()
		if err := f.Apply(cur, out); err != nil {
			return fmt.Errorf("stage %d (%s): %w", i, f.Name(), err)
		}
		cur = out
	}

	if cur != dst {
		copy(dst.pix, cur.pix)
	}
	if len(c) == 0 {
		return nil
	}

	last := c[len(c)-1]
	if cur == dst {
		cur = dst.Clone()
	}
	if err := last.Apply(cur, dst); err != nil {
		return fmt.Errorf("stage %d (%s): %w", len(c)-1, last.Name(), err)
	}
	return nil
}
