// Package testutil provides synthetic image builders shared by the
// detection tests.
package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// BarcodeSpec describes a synthetic 1-D barcode: NumBars vertical dark bars
// of BarWidth x BarHeight pixels, separated by Gap pixels, centered at
// (CenterX, CenterY).
type BarcodeSpec struct {
	NumBars   int
	BarWidth  int
	BarHeight int
	Gap       int
	CenterX   int
	CenterY   int
}

// DefaultBarcodeSpec returns a well-formed barcode: 15 bars, 5px wide,
// 100px tall, 8px gaps. The bar group is wider than tall, like a real
// printed barcode.
func DefaultBarcodeSpec(cx, cy int) BarcodeSpec {
	return BarcodeSpec{NumBars: 15, BarWidth: 5, BarHeight: 100, Gap: 8, CenterX: cx, CenterY: cy}
}

// SpanWidth returns the horizontal extent of the whole bar group.
func (s BarcodeSpec) SpanWidth() int {
	return s.NumBars*s.BarWidth + (s.NumBars-1)*s.Gap
}

// NewUniformImage creates a w x h image filled with a single color.
func NewUniformImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

// DrawBarcode paints the bars of spec onto img in black.
func DrawBarcode(img *image.RGBA, s BarcodeSpec) {
	left := s.CenterX - s.SpanWidth()/2
	top := s.CenterY - s.BarHeight/2
	for i := range s.NumBars {
		x := left + i*(s.BarWidth+s.Gap)
		bar := image.Rect(x, top, x+s.BarWidth, top+s.BarHeight)
		draw.Draw(img, bar, &image.Uniform{color.Black}, image.Point{}, draw.Src)
	}
}

// NewBarcodeImage creates a white w x h image containing the given barcode.
func NewBarcodeImage(w, h int, s BarcodeSpec) *image.RGBA {
	img := NewUniformImage(w, h, color.White)
	DrawBarcode(img, s)
	return img
}

// DrawRect fills an axis-aligned rectangle with a color.
func DrawRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, &image.Uniform{c}, image.Point{}, draw.Src)
}

// WritePNG encodes img to path, failing the test on error.
func WritePNG(t *testing.T, img image.Image, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()
	require.NoError(t, png.Encode(f, img))
}
