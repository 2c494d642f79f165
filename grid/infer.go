// Package grid arranges detected sprite boxes into rows and columns, and
// fits a uniform sampling rule (cell size, step, offsets) to the result.
//
// The fitted rule lets a renderer address sprite index i as
// row = i / cols, col = i % cols without storing a rectangle per sprite.
package grid

import (
	"image"
	"sort"

	"github.com/pkg/errors"

	"badc0de.net/pkg/spritegrid"
	"badc0de.net/pkg/spritegrid/bbox"
)

// Grid holds boxes ordered into rows, top to bottom, each row left to right.
// Only the last row may be shorter than the others.
type Grid [][]bbox.Box

// Count returns the number of boxes in the grid.
func (g Grid) Count() int {
	n := 0
	for _, row := range g {
		n += len(row)
	}
	return n
}

// Boxes flattens the grid in row-major order.
func (g Grid) Boxes() []bbox.Box {
	out := make([]bbox.Box, 0, g.Count())
	for _, row := range g {
		out = append(out, row...)
	}
	return out
}

// Translated returns a copy of g with every box moved by d.
func (g Grid) Translated(d image.Point) Grid {
	out := make(Grid, len(g))
	for r, row := range g {
		out[r] = bbox.Translated(row, d)
	}
	return out
}

// CheckShape validates a rows x cols layout holding count sprites, where
// only the last row may be short.
func CheckShape(rows, cols, count int) error {
	if rows < 1 || cols < 1 {
		return errors.Wrapf(spritegrid.ErrGridMismatch, "grid of %dx%d", rows, cols)
	}
	if count < 1 || count > rows*cols {
		return errors.Wrapf(spritegrid.ErrGridMismatch, "%d sprites do not fit a %dx%d grid", count, rows, cols)
	}
	if count <= rows*cols-cols {
		return errors.Wrapf(spritegrid.ErrGridMismatch, "%d sprites in a %dx%d grid leave more than the last row short", count, rows, cols)
	}
	return nil
}

// Infer orders boxes into a rows x cols grid holding count sprites.
//
// Boxes are sorted top to bottom by YMin and cut into rows of cols boxes,
// each sorted left to right by XMin. The row which reaches count is truncated
// and any further boxes are ignored, so noise boxes sorting below the sprites
// do no harm. The input slice is not modified.
func Infer(boxes []bbox.Box, rows, cols, count int) (Grid, error) {
	if err := CheckShape(rows, cols, count); err != nil {
		return nil, err
	}
	if len(boxes) < count {
		return nil, errors.Wrapf(spritegrid.ErrGridMismatch, "found %d boxes; want at least %d", len(boxes), count)
	}

	tmp := append([]bbox.Box(nil), boxes...)
	sort.SliceStable(tmp, func(i, j int) bool { return tmp[i].YMin < tmp[j].YMin })

	g := make(Grid, 0, rows)
	taken := 0
	for r := 0; r < rows && taken < count; r++ {
		row := append([]bbox.Box(nil), tmp[:min(cols, len(tmp))]...)
		tmp = tmp[len(row):]
		sort.SliceStable(row, func(i, j int) bool { return row[i].XMin < row[j].XMin })
		if taken+len(row) > count {
			row = row[:count-taken]
		}
		g = append(g, row)
		taken += len(row)
	}
	return g, nil
}

// RowRange returns the vertical extent reserved for row idx: from just below
// the previous row's lowest box (0 for the first row) to the top of the next
// row's highest box (height for the last row), exclusive. bottom is one past
// the lowest pixel of the row's own boxes.
func (g Grid) RowRange(idx, height int) (start, end, bottom int) {
	end = height
	if idx > 0 {
		for _, b := range g[idx-1] {
			start = max(start, b.YMax+1)
		}
	}
	if idx < len(g)-1 {
		for i, b := range g[idx+1] {
			if i == 0 || b.YMin < end {
				end = b.YMin
			}
		}
	}
	for _, b := range g[idx] {
		bottom = max(bottom, b.YMax+1)
	}
	return start, end, bottom
}
