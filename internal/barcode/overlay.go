package barcode

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/scanium/barscan/internal/geometry"
)

var boxColor = color.RGBA{R: 220, G: 40, B: 40, A: 255}

// renderOverlay draws the clustering state for debugging: the source image
// desaturated to gray, every bar's pixels tinted with its cluster color, and
// the enclosing box of each accepted cluster outlined with its number.
func renderOverlay(img image.Image, bars []bar, clusters []Cluster, accepted map[int]BlobBox) *image.RGBA {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	canvas := image.NewRGBA(b)
	draw.Draw(canvas, b, gray, b.Min, draw.Src)

	tints := make(map[int]color.RGBA, len(clusters))
	for _, c := range clusters {
		tints[c.Number] = c.Color
	}
	for _, br := range bars {
		tint := tints[br.label]
		for _, p := range br.points {
			canvas.SetRGBA(p.X, p.Y, tint)
		}
	}

	for num, box := range accepted {
		drawPolygon(canvas, box.Corners[:], boxColor)
		labelY := int(box.CenterY-box.Width/2) - 4
		drawLabel(canvas, strconv.Itoa(num), int(box.CenterX), labelY)
	}
	return canvas
}

func drawPolygon(img *image.RGBA, pts []geometry.Point, c color.RGBA) {
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		drawLine(img, int(p.X), int(p.Y), int(q.X), int(q.Y), c)
	}
}

// drawLine rasterizes a segment with Bresenham's algorithm.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		img.SetRGBA(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawLabel(img *image.RGBA, s string, x, y int) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(boxColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
