package imageprint

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand"

	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"

	"badc0de.net/pkg/spritegrid/bbox"
	"badc0de.net/pkg/spritegrid/grid"
)

// Colors used by the overlays.
var (
	BoxColor      = color.NRGBA{255, 0, 0, 255}
	MergedColor   = color.NRGBA{0, 0, 255, 255}
	CentroidColor = color.NRGBA{255, 0, 255, 255}
	CellColor     = color.NRGBA{0, 255, 0, 255}

	rowColors = []color.NRGBA{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
		{255, 0, 255, 255},
	}
)

// RowColor returns the overlay color of grid row r. The first four rows get
// fixed colors; later rows get a random, but per row stable, one.
func RowColor(r int) color.NRGBA {
	if r < len(rowColors) {
		return rowColors[r]
	}
	rnd := rand.New(rand.NewSource(int64(r)))
	return color.NRGBA{uint8(rnd.Intn(255)), uint8(rnd.Intn(255)), uint8(rnd.Intn(255)), 255}
}

func toNRGBA(img image.Image) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// outline draws a one pixel rectangle border along the inner edge of r.
func outline(img *image.NRGBA, r image.Rectangle, c color.Color) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

func disc(img *image.NRGBA, cx, cy, radius int, c color.Color) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= radius*radius {
				img.Set(x, y, c)
			}
		}
	}
}

// Overlay returns a copy of img with the outline of every box drawn in c.
func Overlay(img image.Image, boxes []bbox.Box, c color.Color) *image.NRGBA {
	out := toNRGBA(img)
	for _, b := range boxes {
		outline(out, b.Rect(), c)
	}
	return out
}

// OverlayGrid returns a copy of img with the boxes of each grid row outlined
// in RowColor of that row.
func OverlayGrid(img image.Image, g grid.Grid) *image.NRGBA {
	out := toNRGBA(img)
	for r, row := range g {
		for _, b := range row {
			outline(out, b.Rect(), RowColor(r))
		}
	}
	return out
}

// OverlayCentroids returns a copy of img with a small disc on every cell
// center predicted by interpolating between the centroids of the first and
// last box of each row, for all cols columns. The first to last distance
// is spread over cols-1 steps, the same way the grid fit does it.
func OverlayCentroids(img image.Image, g grid.Grid, cols int) *image.NRGBA {
	out := toNRGBA(img)
	for _, row := range g {
		if len(row) == 0 {
			continue
		}
		fy, fx := row[0].Centroid()
		ly, lx := row[len(row)-1].Centroid()
		var sx, sy float64
		if cols > 1 {
			sx = (lx - fx) / float64(cols-1)
			sy = (ly - fy) / float64(cols-1)
		}
		for c := 0; c < cols; c++ {
			disc(out, int(fx+sx*float64(c)), int(fy+sy*float64(c)), 2, CentroidColor)
		}
	}
	return out
}

// OverlayFit returns a copy of img with the first n cells of f outlined.
// The fit must be in the same coordinates as img.
func OverlayFit(img image.Image, f *grid.Fit, n int) *image.NRGBA {
	out := toNRGBA(img)
	for _, r := range f.Cells(n) {
		outline(out, r, CellColor)
	}
	return out
}

// Paletted reduces img to at most colors colors with a median cut palette,
// for GIF and sixel output.
func Paletted(img image.Image, colors int) *image.Paletted {
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, colors), img)
	out := image.NewPaletted(img.Bounds(), p)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// Scale enlarges img by an integer factor without smoothing, so single
// sprite pixels stay sharp.
func Scale(img image.Image, factor int) *image.NRGBA {
	if factor <= 1 {
		return toNRGBA(img)
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*factor, b.Dy()*factor, imaging.NearestNeighbor)
}
