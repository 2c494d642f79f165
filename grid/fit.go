package grid

import (
	"fmt"
	"image"
	"math"

	"github.com/bradfitz/iter"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"badc0de.net/pkg/spritegrid"
	"badc0de.net/pkg/spritegrid/bbox"
)

// Fit is a uniform sampling rule for a sheet of equally sized sprites.
//
// Cell (row, col) spans Width x Height pixels starting at
// (XOffset + col*XStep, YOffset + RowY[row]).
type Fit struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// Width and Height are the cell size, 2*Dx+1 and 2*Dy+1.
	Width  int `json:"width"`
	Height int `json:"height"`

	// XStep is the horizontal distance between neighbouring cells. YStep is
	// the average distance between row anchors; RowY is authoritative.
	XStep int `json:"x_step"`
	YStep int `json:"y_step"`

	// StepOffsetX is the empty space between horizontally neighbouring cells
	// (XStep - Width). StepOffsetY is always 0 since rows are placed through
	// RowY.
	StepOffsetX int `json:"step_offset_x"`
	StepOffsetY int `json:"step_offset_y"`

	// XOffset and YOffset locate the top-left corner of the first cell.
	XOffset int `json:"x_offset"`
	YOffset int `json:"y_offset"`

	// RowY holds the vertical position of each row relative to YOffset.
	RowY []int `json:"row_y"`

	// Dx and Dy are the largest distances of any box edge from the fitted
	// cell center, i.e. the observed jitter half-extents.
	Dx int `json:"dx"`
	Dy int `json:"dy"`

	// XLimits are the averaged centroid X of the first and last box per row,
	// in grid-local coordinates.
	XLimits [2]int `json:"x_limits"`
}

// FitOptions tunes FitGridAt.
type FitOptions struct {
	// Origin is added to the offsets. Use it when the boxes were detected on
	// a cutout of a larger sheet.
	Origin image.Point
}

// FitGrid is FitGridAt with zero options.
func FitGrid(g Grid, cols int) (*Fit, error) {
	return FitGridAt(g, cols, FitOptions{})
}

// round matches the rounding used when existing sprite descriptions were
// generated: halves go to the even neighbour.
func round(f float64) int {
	return int(math.RoundToEven(f))
}

// ceil rounds a half-extent up, ignoring float noise from the
// interpolation.
func ceil(f float64) int {
	return int(math.Ceil(f - 1e-9))
}

// rowLine describes the line through the centroids of a row's first and last
// boxes.
type rowLine struct {
	firstX, lastX float64
	// step is the per-column distance along the line: the first to last
	// distance spread over cols-1 gaps, even for a short row.
	step float64
}

func (l rowLine) at(col int) float64 {
	return l.firstX + l.step*float64(col)
}

func lineOf(row []bbox.Box, cols int) rowLine {
	_, fx := row[0].Centroid()
	_, lx := row[len(row)-1].Centroid()
	l := rowLine{firstX: fx, lastX: lx}
	if cols > 1 {
		l.step = (lx - fx) / float64(cols-1)
	}
	return l
}

// FitGridAt fits one uniform cell size, horizontal step and per-row vertical
// anchors to g, which should come from Infer with the same cols.
//
// Horizontal step is averaged over full rows only; a short last row is only
// used when no row is full. Every row's line spreads its first to last
// centroid distance over cols-1 steps, so a short row predicts its later
// boxes too far left and widens the cell. Cell half-extents are the largest distance of any
// box edge from where its row's centroid line (horizontally) or row anchor
// (vertically) puts its center, rounded up.
func FitGridAt(g Grid, cols int, o FitOptions) (*Fit, error) {
	if g.Count() == 0 {
		return nil, errors.Wrap(spritegrid.ErrEmptyBoxSet, "fitting grid")
	}
	if cols < 1 {
		return nil, errors.Wrapf(spritegrid.ErrGridMismatch, "fitting grid with %d columns", cols)
	}
	for r, row := range g {
		if len(row) == 0 || len(row) > cols {
			return nil, errors.Wrapf(spritegrid.ErrGridMismatch, "row %d holds %d boxes; want 1 to %d", r, len(row), cols)
		}
		if len(row) < cols && r != len(g)-1 {
			return nil, errors.Wrapf(spritegrid.ErrGridMismatch, "row %d is short but is not the last row", r)
		}
	}

	f := &Fit{Rows: len(g), Cols: cols}

	// Horizontal axis.
	lines := make([]rowLine, len(g))
	var fullSteps, shortSteps, firstXs, lastXs []float64
	for r := range iter.N(len(g)) {
		l := lineOf(g[r], cols)
		lines[r] = l
		firstXs = append(firstXs, l.firstX)
		lastXs = append(lastXs, l.lastX)
		switch {
		case len(g[r]) == cols:
			fullSteps = append(fullSteps, l.step)
		case len(g[r]) > 1:
			shortSteps = append(shortSteps, l.step)
		}
	}
	switch {
	case cols == 1:
		f.XStep = 0
	case len(fullSteps) > 0:
		f.XStep = round(stat.Mean(fullSteps, nil))
	case len(shortSteps) > 0:
		f.XStep = round(stat.Mean(shortSteps, nil))
	}
	f.XLimits = [2]int{round(stat.Mean(firstXs, nil)), round(stat.Mean(lastXs, nil))}

	var xDevs []float64
	for r, row := range g {
		for c, b := range row {
			center := lines[r].at(c)
			xDevs = append(xDevs, center-float64(b.XMin), float64(b.XMax)-center)
		}
	}
	f.Dx = max(0, ceil(floats.Max(xDevs)))
	f.Width = 2*f.Dx + 1
	f.StepOffsetX = f.XStep - f.Width

	// Vertical axis.
	anchors := make([]int, len(g))
	var yDevs []float64
	for r, row := range g {
		cys := make([]float64, len(row))
		for c, b := range row {
			cys[c], _ = b.Centroid()
		}
		anchors[r] = round(stat.Mean(cys, nil))
		for _, b := range row {
			yDevs = append(yDevs, float64(anchors[r]-b.YMin), float64(b.YMax-anchors[r]))
		}
		glog.V(2).Infof("row %d: x %.1f..%.1f step %.2f, y anchor %d", r, lines[r].firstX, lines[r].lastX, lines[r].step, anchors[r])
	}
	f.Dy = max(0, ceil(floats.Max(yDevs)))
	f.Height = 2*f.Dy + 1
	if len(anchors) > 1 {
		f.YStep = round(float64(anchors[len(anchors)-1]-anchors[0]) / float64(len(anchors)-1))
	}

	f.XOffset = o.Origin.X + f.XLimits[0] - f.Dx
	f.YOffset = o.Origin.Y + anchors[0] - f.Dy
	f.RowY = make([]int, len(anchors))
	for r := range anchors {
		f.RowY[r] = anchors[r] - anchors[0]
	}

	glog.V(1).Infof("grid fit: %s", f)
	return f, nil
}

// Cell returns the rectangle of sprite index i, counted row-major. Indices
// past the last row are extrapolated using YStep.
func (f *Fit) Cell(i int) image.Rectangle {
	row, col := i/f.Cols, i%f.Cols
	var y int
	if row < len(f.RowY) {
		y = f.RowY[row]
	} else if len(f.RowY) > 0 {
		y = f.RowY[len(f.RowY)-1] + (row-len(f.RowY)+1)*f.YStep
	}
	x := f.XOffset + col*f.XStep
	y += f.YOffset
	return image.Rect(x, y, x+f.Width, y+f.Height)
}

// Box is Cell as an inclusive bounding box.
func (f *Fit) Box(i int) bbox.Box {
	return bbox.FromRect(f.Cell(i))
}

// Cells returns the rectangles of the first n cells.
func (f *Fit) Cells(n int) []image.Rectangle {
	out := make([]image.Rectangle, n)
	for i := range out {
		out[i] = f.Cell(i)
	}
	return out
}

func (f *Fit) String() string {
	return fmt.Sprintf("size %dx%d step %d (+%d) offset %d,%d rows %v jitter %d,%d",
		f.Width, f.Height, f.XStep, f.StepOffsetX, f.XOffset, f.YOffset, f.RowY, f.Dx, f.Dy)
}
