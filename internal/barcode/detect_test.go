package barcode

import (
	"encoding/json"
	"image"
	"math"
	"sort"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanium/barscan/internal/testutil"
)

func TestFindBarcodes_SingleBarcode(t *testing.T) {
	spec := testutil.DefaultBarcodeSpec(160, 100)
	img := testutil.NewBarcodeImage(320, 200, spec)

	rects := FindBarcodes(img, DefaultOptions())
	require.Len(t, rects, 1)

	r := rects[0]
	assert.InDelta(t, 160, r.CenterX, 3)
	assert.InDelta(t, 100, r.CenterY, 3)
	assert.InDelta(t, spec.SpanWidth(), r.Width, 8)
	assert.InDelta(t, spec.BarHeight, r.Height, 8)
	assert.InDelta(t, 0, r.Theta, 2)
}

func TestFindBarcodes_RotatedBarcode(t *testing.T) {
	spec := testutil.DefaultBarcodeSpec(200, 150)
	img := testutil.NewBarcodeImage(400, 300, spec)
	rotated := imaging.Rotate(img, 30, image.White.C)

	rects := FindBarcodes(rotated, DefaultOptions())
	require.Len(t, rects, 1)
	assert.InDelta(t, 30, math.Abs(rects[0].Theta), 6)
	assert.InDelta(t, spec.BarHeight, rects[0].Height, 12)
}

func TestFindBarcodes_TwoBarcodes(t *testing.T) {
	img := testutil.NewUniformImage(640, 200, image.White.C)
	testutil.DrawBarcode(img, testutil.DefaultBarcodeSpec(160, 100))
	testutil.DrawBarcode(img, testutil.DefaultBarcodeSpec(480, 100))

	rects := FindBarcodes(img, DefaultOptions())
	require.Len(t, rects, 2)
	sort.Slice(rects, func(i, j int) bool { return rects[i].CenterX < rects[j].CenterX })
	assert.InDelta(t, 160, rects[0].CenterX, 3)
	assert.InDelta(t, 480, rects[1].CenterX, 3)
}

func TestFindBarcodes_EmptyResults(t *testing.T) {
	blank := testutil.NewUniformImage(200, 200, image.White.C)
	assert.Empty(t, FindBarcodes(blank, DefaultOptions()))

	// A single fat square passes blob detection but fails the bar filter.
	square := testutil.NewUniformImage(200, 200, image.White.C)
	testutil.DrawRect(square, image.Rect(50, 50, 150, 150), image.Black.C)
	assert.Empty(t, FindBarcodes(square, DefaultOptions()))
}

func TestFindBarcodes_TooFewBars(t *testing.T) {
	// Three bars cannot seed a cluster with the default density threshold.
	spec := testutil.DefaultBarcodeSpec(100, 100)
	spec.NumBars = 3
	img := testutil.NewBarcodeImage(200, 200, spec)

	assert.Empty(t, FindBarcodes(img, DefaultOptions()))
}

func TestFindBarcodes_DebugSinkDoesNotChangeResults(t *testing.T) {
	img := testutil.NewBarcodeImage(320, 200, testutil.DefaultBarcodeSpec(160, 100))

	plain := FindBarcodes(img, DefaultOptions())

	var overlays []image.Image
	opts := DefaultOptions()
	opts.Debug = true
	opts.DebugSeed = 42
	opts.DebugSink = func(o image.Image) { overlays = append(overlays, o) }
	debug := FindBarcodes(img, opts)

	assert.Equal(t, plain, debug)
	require.Len(t, overlays, 1)
	assert.Equal(t, img.Bounds().Size(), overlays[0].Bounds().Size())
}

func TestFindBarcodes_DebugSinkOnBlankImage(t *testing.T) {
	blank := testutil.NewUniformImage(64, 64, image.White.C)

	var overlays []image.Image
	opts := DefaultOptions()
	opts.Debug = true
	opts.DebugSink = func(o image.Image) { overlays = append(overlays, o) }

	assert.Empty(t, FindBarcodes(blank, opts))
	require.Len(t, overlays, 1)
	assert.Equal(t, blank.Bounds().Size(), overlays[0].Bounds().Size())
}

func TestBarcodeRect_JSONFields(t *testing.T) {
	r := BarcodeRect{CenterX: 12.5, CenterY: 40, Width: 180, Height: 96, Theta: -3.5}
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var got map[string]float64
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, map[string]float64{
		"center_x": 12.5,
		"center_y": 40,
		"width":    180,
		"height":   96,
		"theta":    -3.5,
	}, got)
}

func TestBarcodeRect_ExtractUpright(t *testing.T) {
	img := testutil.NewUniformImage(320, 200, image.White.C)
	testutil.DrawRect(img, image.Rect(60, 50, 260, 150), image.Black.C)

	r := BarcodeRect{CenterX: 160, CenterY: 100, Width: 200, Height: 100, Theta: 0}
	crop := r.Extract(img)

	assert.Equal(t, r.Width+CropMargin, crop.Bounds().Dx())
	assert.Equal(t, r.Height+CropMargin, crop.Bounds().Dy())

	// The crop center must land on the black region.
	c := crop.Bounds()
	px, _, _, _ := crop.At(c.Min.X+c.Dx()/2, c.Min.Y+c.Dy()/2).RGBA()
	assert.Zero(t, px)
}

func TestBarcodeRect_ExtractClampsAtBorder(t *testing.T) {
	img := testutil.NewUniformImage(100, 100, image.White.C)
	r := BarcodeRect{CenterX: 5, CenterY: 5, Width: 40, Height: 40, Theta: 0}

	crop := r.Extract(img)
	assert.LessOrEqual(t, crop.Bounds().Dx(), r.Width+CropMargin)
	assert.LessOrEqual(t, crop.Bounds().Dy(), r.Height+CropMargin)
	assert.Positive(t, crop.Bounds().Dx())
	assert.Positive(t, crop.Bounds().Dy())
}

func TestBarcodeRect_ExtractRotated(t *testing.T) {
	spec := testutil.DefaultBarcodeSpec(200, 150)
	img := testutil.NewBarcodeImage(400, 300, spec)
	rotated := imaging.Rotate(img, 30, image.White.C)

	rects := FindBarcodes(rotated, DefaultOptions())
	require.Len(t, rects, 1)

	crop := rects[0].Extract(rotated)
	cb := crop.Bounds()
	assert.Equal(t, rects[0].Width+CropMargin, cb.Dx())
	assert.Equal(t, rects[0].Height+CropMargin, cb.Dy())

	// De-rotation must put the bars back inside the window: a crop that
	// missed the barcode would be nearly all white.
	dark := 0
	for y := range cb.Dy() {
		for x := range cb.Dx() {
			if v, _, _, _ := crop.At(cb.Min.X+x, cb.Min.Y+y).RGBA(); v>>8 < 128 {
				dark++
			}
		}
	}
	frac := float64(dark) / float64(cb.Dx()*cb.Dy())
	assert.Greater(t, frac, 0.2)
	assert.Less(t, frac, 0.6)
}

func TestFindBarcodes_ExtractedCropCoversBarcode(t *testing.T) {
	spec := testutil.DefaultBarcodeSpec(160, 100)
	img := testutil.NewBarcodeImage(320, 200, spec)

	rects := FindBarcodes(img, DefaultOptions())
	require.Len(t, rects, 1)

	crop := rects[0].Extract(img)
	assert.GreaterOrEqual(t, crop.Bounds().Dx(), spec.SpanWidth())
	assert.GreaterOrEqual(t, crop.Bounds().Dy(), spec.BarHeight)
}
