// Package bbox defines the inclusive integer bounding box passed between the
// sprite pipeline stages.
package bbox

import (
	"fmt"
	"image"
)

// Box is an axis aligned rectangle with inclusive bounds on both ends, in
// the (y, x) order the detection stages produce them in.
type Box struct {
	YMin, XMin, YMax, XMax int
}

// New builds a box from the four coordinates in (yMin, xMin, yMax, xMax)
// order.
func New(yMin, xMin, yMax, xMax int) Box {
	return Box{YMin: yMin, XMin: xMin, YMax: yMax, XMax: xMax}
}

// Point returns the single pixel box at (x, y).
func Point(x, y int) Box {
	return Box{YMin: y, XMin: x, YMax: y, XMax: x}
}

// FromRect converts a half-open image.Rectangle into a box. The rectangle
// must not be empty.
func FromRect(r image.Rectangle) Box {
	return Box{YMin: r.Min.Y, XMin: r.Min.X, YMax: r.Max.Y - 1, XMax: r.Max.X - 1}
}

// Rect converts the box into a half-open image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.XMin, b.YMin, b.XMax+1, b.YMax+1)
}

// Valid reports whether the min coordinates do not exceed the max ones.
func (b Box) Valid() bool {
	return b.YMin <= b.YMax && b.XMin <= b.XMax
}

// Width is the number of pixel columns covered.
func (b Box) Width() int { return b.XMax - b.XMin + 1 }

// Height is the number of pixel rows covered.
func (b Box) Height() int { return b.YMax - b.YMin + 1 }

// Centroid returns the geometric center as (y, x).
func (b Box) Centroid() (y, x float64) {
	return float64(b.YMin+b.YMax) / 2, float64(b.XMin+b.XMax) / 2
}

// Extend grows the box to include pixel (x, y).
func (b Box) Extend(x, y int) Box {
	b.YMin, b.YMax = min(b.YMin, y), max(b.YMax, y)
	b.XMin, b.XMax = min(b.XMin, x), max(b.XMax, x)
	return b
}

// Overlaps reports whether the two boxes share at least one pixel.
func (b Box) Overlaps(o Box) bool {
	return b.YMin <= o.YMax && b.YMax >= o.YMin && b.XMin <= o.XMax && b.XMax >= o.XMin
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(o Box) Box {
	return Box{
		YMin: min(b.YMin, o.YMin),
		XMin: min(b.XMin, o.XMin),
		YMax: max(b.YMax, o.YMax),
		XMax: max(b.XMax, o.XMax),
	}
}

// Translate shifts the box by d.
func (b Box) Translate(d image.Point) Box {
	return Box{YMin: b.YMin + d.Y, XMin: b.XMin + d.X, YMax: b.YMax + d.Y, XMax: b.XMax + d.X}
}

// String formats the box like the detection scripts print them.
func (b Box) String() string {
	return fmt.Sprintf("[%d %d %d %d]", b.YMin, b.XMin, b.YMax, b.XMax)
}

// Slice returns the box as a 4 element slice, in (yMin, xMin, yMax, xMax)
// order.
func (b Box) Slice() []int {
	return []int{b.YMin, b.XMin, b.YMax, b.XMax}
}

// Translated returns a copy of boxes, each shifted by d.
func Translated(boxes []Box, d image.Point) []Box {
	out := make([]Box, len(boxes))
	for i, b := range boxes {
		out[i] = b.Translate(d)
	}
	return out
}
