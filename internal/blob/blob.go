// Package blob extracts connected dark-ink regions from an image. It is the
// candidate source for the barcode locator: every region is an ordered set of
// pixel coordinates that downstream stages turn into oriented boxes.
package blob

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// Region is one connected dark region, as the ordered list of its pixels.
type Region struct {
	Points []image.Point
}

// Area returns the region size in pixels.
func (r Region) Area() int { return len(r.Points) }

// Params controls region extraction.
type Params struct {
	// MinArea drops components smaller than this many pixels.
	MinArea int
	// BlurRadius is the Gaussian pre-blur radius; 0 disables blurring.
	BlurRadius float64
}

// DefaultParams returns the extraction parameters tuned for printed
// linear barcodes.
func DefaultParams() Params {
	return Params{MinArea: 50, BlurRadius: 1.0}
}

// DetectRegions finds connected dark regions in img: grayscale conversion,
// optional Gaussian blur, Otsu binarization of the ink class, then
// 4-connected component labeling. Components smaller than MinArea are
// dropped. A degenerate image with no tonal separation yields no regions.
func DetectRegions(img image.Image, p Params) []Region {
	gray := imaging.Grayscale(img)
	var src image.Image = gray
	if p.BlurRadius > 0 {
		src = blur.Gaussian(gray, p.BlurRadius)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	lum := make([]uint8, w*h)
	var hist histogram
	for y := range h {
		for x := range w {
			r, _, _, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			v := uint8(r >> 8) // grayscale input: all channels equal
			lum[y*w+x] = v
			hist[v]++
		}
	}

	thresh, ok := otsuThreshold(hist, w*h)
	if !ok {
		return nil
	}
	mask := make([]bool, w*h)
	for i, v := range lum {
		mask[i] = v <= thresh
	}

	return labelComponents(mask, w, h, p.MinArea)
}

// labelComponents runs BFS flood fill over the ink mask and returns all
// 4-connected components with at least minArea pixels.
func labelComponents(mask []bool, w, h, minArea int) []Region {
	visited := make([]bool, w*h)
	var regions []Region

	for y := range h {
		for x := range w {
			idx := y*w + x
			if !mask[idx] || visited[idx] {
				continue
			}
			pts := floodFill(mask, visited, w, h, x, y)
			if len(pts) >= minArea {
				regions = append(regions, Region{Points: pts})
			}
		}
	}
	return regions
}

func floodFill(mask, visited []bool, w, h, startX, startY int) []image.Point {
	pts := make([]image.Point, 0, 64)
	queue := []int{startY*w + startX}
	visited[startY*w+startX] = true

	for len(queue) > 0 {
		ci := queue[0]
		queue = queue[1:]
		cx, cy := ci%w, ci/w
		pts = append(pts, image.Pt(cx, cy))

		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := cx+d[0], cy+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			ni := ny*w + nx
			if mask[ni] && !visited[ni] {
				visited[ni] = true
				queue = append(queue, ni)
			}
		}
	}
	return pts
}
