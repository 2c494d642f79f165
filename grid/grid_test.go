package grid

import (
	"image"
	"math/rand"
	"testing"

	"badc0de.net/pkg/spritegrid"
	"badc0de.net/pkg/spritegrid/bbox"
	"badc0de.net/pkg/spritegrid/ttesting"
)

// uniformBoxes lays out count size x size boxes on a rows x cols grid with
// the passed spacing, starting at origin.
func uniformBoxes(rows, cols, count, size, xStep, yStep int, origin image.Point) []bbox.Box {
	var out []bbox.Box
	for r := 0; r < rows; r++ {
		for c := 0; c < cols && len(out) < count; c++ {
			x, y := origin.X+c*xStep, origin.Y+r*yStep
			out = append(out, bbox.New(y, x, y+size-1, x+size-1))
		}
	}
	return out
}

func TestInferPerfectGrid(t *testing.T) {
	want := uniformBoxes(4, 5, 20, 7, 10, 12, image.Pt(3, 2))
	shuffled := append([]bbox.Box(nil), want...)
	rand.New(rand.NewSource(3)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	g, err := Infer(shuffled, 4, 5, 20)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	ttesting.AssertEqualInt(t, "rows", len(g), 4)
	ttesting.AssertDeepEqual(t, "row-major order", g.Boxes(), want)
}

func TestInferShortLastRow(t *testing.T) {
	boxes := uniformBoxes(3, 4, 10, 5, 8, 8, image.Point{})
	// A noise box below and right of everything must not end up in the grid.
	boxes = append(boxes, bbox.New(100, 50, 101, 51))

	g, err := Infer(boxes, 3, 4, 10)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	ttesting.AssertEqualInt(t, "row 0", len(g[0]), 4)
	ttesting.AssertEqualInt(t, "row 1", len(g[1]), 4)
	ttesting.AssertEqualInt(t, "row 2", len(g[2]), 2)
	ttesting.AssertEqualInt(t, "count", g.Count(), 10)
	ttesting.AssertDeepEqual(t, "last row", g[2], []bbox.Box{bbox.New(16, 0, 20, 4), bbox.New(16, 8, 20, 12)})
}

func TestGridTranslated(t *testing.T) {
	g := Grid{{bbox.New(0, 0, 2, 2), bbox.New(0, 4, 2, 6)}, {bbox.New(4, 0, 6, 2)}}
	got := g.Translated(image.Pt(10, 5))
	ttesting.AssertDeepEqual(t, "translated", got, Grid{{bbox.New(5, 10, 7, 12), bbox.New(5, 14, 7, 16)}, {bbox.New(9, 10, 11, 12)}})
	ttesting.AssertDeepEqual(t, "source", g[0][0], bbox.New(0, 0, 2, 2))
}

func TestInferJitteredRows(t *testing.T) {
	// Tops vary within a row; rows must still come out whole.
	boxes := []bbox.Box{
		bbox.New(1, 20, 9, 28),
		bbox.New(0, 0, 9, 8),
		bbox.New(2, 10, 9, 18),
		bbox.New(11, 10, 20, 18),
		bbox.New(12, 0, 20, 8),
		bbox.New(10, 20, 20, 28),
	}
	g, err := Infer(boxes, 2, 3, 6)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	for r, row := range g {
		for c, b := range row {
			ttesting.AssertEqualInt(t, "column position", b.XMin, c*10)
			if r == 0 && b.YMin > 2 || r == 1 && b.YMin < 10 {
				t.Errorf("box %v placed in row %d", b, r)
			}
		}
	}
}

func TestInferErrors(t *testing.T) {
	boxes := uniformBoxes(2, 3, 6, 3, 4, 4, image.Point{})
	for _, tc := range []struct {
		name              string
		boxes             []bbox.Box
		rows, cols, count int
	}{
		{"too few boxes", boxes[:5], 2, 3, 6},
		{"count over capacity", boxes, 2, 3, 7},
		{"two short rows", boxes, 3, 3, 6},
		{"zero rows", boxes, 0, 3, 1},
		{"zero cols", boxes, 2, 0, 1},
		{"zero count", boxes, 2, 3, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Infer(tc.boxes, tc.rows, tc.cols, tc.count)
			if spritegrid.Kind(err) != spritegrid.ErrGridMismatch {
				t.Errorf("got %v; want ErrGridMismatch", err)
			}
		})
	}
}

func TestFitThreeSprites(t *testing.T) {
	g, err := Infer([]bbox.Box{
		bbox.New(0, 0, 2, 2),
		bbox.New(0, 4, 2, 6),
		bbox.New(0, 8, 2, 10),
	}, 1, 3, 3)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	f, err := FitGrid(g, 3)
	if err != nil {
		t.Fatalf("FitGrid: %v", err)
	}
	ttesting.AssertEqualInt(t, "step", f.XStep, 4)
	ttesting.AssertEqualInt(t, "width", f.Width, 3)
	ttesting.AssertEqualInt(t, "height", f.Height, 3)
	ttesting.AssertEqualInt(t, "dx", f.Dx, 1)
	ttesting.AssertEqualInt(t, "dy", f.Dy, 1)
	ttesting.AssertEqualInt(t, "step offset", f.StepOffsetX, 1)
	ttesting.AssertEqualInt(t, "x offset", f.XOffset, 0)
	ttesting.AssertEqualInt(t, "y offset", f.YOffset, 0)
	ttesting.AssertDeepEqual(t, "row y", f.RowY, []int{0})
}

func TestFitZeroJitter(t *testing.T) {
	for _, tc := range []struct {
		name               string
		rows, cols, count  int
		size, xStep, yStep int
		origin, cutout     image.Point
	}{
		{"single row", 1, 6, 6, 5, 9, 0, image.Pt(2, 3), image.Point{}},
		{"square", 4, 4, 16, 9, 12, 14, image.Pt(1, 1), image.Point{}},
		{"cutout origin", 2, 3, 6, 3, 5, 6, image.Pt(1, 1), image.Pt(40, 30)},
		{"single column", 3, 1, 3, 5, 0, 8, image.Pt(2, 2), image.Point{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			boxes := uniformBoxes(tc.rows, tc.cols, tc.count, tc.size, tc.xStep, tc.yStep, tc.origin)
			g, err := Infer(boxes, tc.rows, tc.cols, tc.count)
			if err != nil {
				t.Fatalf("Infer: %v", err)
			}
			f, err := FitGridAt(g, tc.cols, FitOptions{Origin: tc.cutout})
			if err != nil {
				t.Fatalf("FitGridAt: %v", err)
			}
			half := (tc.size - 1) / 2
			ttesting.AssertEqualInt(t, "dx", f.Dx, half)
			ttesting.AssertEqualInt(t, "dy", f.Dy, half)
			ttesting.AssertEqualInt(t, "width", f.Width, tc.size)
			ttesting.AssertEqualInt(t, "height", f.Height, tc.size)
			ttesting.AssertEqualInt(t, "x step", f.XStep, tc.xStep)
			ttesting.AssertEqualInt(t, "y step", f.YStep, tc.yStep)
			ttesting.AssertEqualInt(t, "x offset", f.XOffset, tc.cutout.X+tc.origin.X)
			ttesting.AssertEqualInt(t, "y offset", f.YOffset, tc.cutout.Y+tc.origin.Y)

			// Every cell lands exactly on its source box.
			for i, b := range boxes {
				ttesting.AssertDeepEqual(t, "cell", f.Box(i), b.Translate(tc.cutout))
			}
		})
	}
}

func TestFitShortLastRow(t *testing.T) {
	// Row 0 centroids at x 1, 5, 9; row 1 holds two boxes at x 1, 5.
	boxes := uniformBoxes(2, 3, 5, 3, 4, 6, image.Point{})
	g, err := Infer(boxes, 2, 3, 5)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	f, err := FitGrid(g, 3)
	if err != nil {
		t.Fatalf("FitGrid: %v", err)
	}
	// Row 1 steps (5-1)/2 = 2 per column, so its second box (x 4..6) sits
	// 3 pixels right of the predicted center at x 3.
	ttesting.AssertEqualInt(t, "x step", f.XStep, 4)
	ttesting.AssertDeepEqual(t, "x limits", f.XLimits, [2]int{1, 7})
	ttesting.AssertEqualInt(t, "dx", f.Dx, 3)
	ttesting.AssertEqualInt(t, "width", f.Width, 7)
	ttesting.AssertEqualInt(t, "step offset", f.StepOffsetX, -3)
	ttesting.AssertEqualInt(t, "dy", f.Dy, 1)
	ttesting.AssertEqualInt(t, "y step", f.YStep, 6)
	ttesting.AssertEqualInt(t, "x offset", f.XOffset, -2)
	ttesting.AssertDeepEqual(t, "row y", f.RowY, []int{0, 6})
}

func TestFitJitter(t *testing.T) {
	boxes := uniformBoxes(2, 4, 8, 5, 8, 10, image.Point{})
	// Middle box of the first row pokes one pixel further right, and one in
	// the second row one pixel further down.
	boxes[1].XMax++
	boxes[6].YMax++

	g, err := Infer(boxes, 2, 4, 8)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	f, err := FitGrid(g, 4)
	if err != nil {
		t.Fatalf("FitGrid: %v", err)
	}
	ttesting.AssertEqualInt(t, "x step", f.XStep, 8)
	ttesting.AssertEqualInt(t, "dx", f.Dx, 3)
	ttesting.AssertEqualInt(t, "dy", f.Dy, 3)
	ttesting.AssertEqualInt(t, "width", f.Width, 7)
	ttesting.AssertEqualInt(t, "step offset", f.StepOffsetX, 1)
	ttesting.AssertEqualInt(t, "x offset", f.XOffset, -1)
	ttesting.AssertDeepEqual(t, "row y", f.RowY, []int{0, 10})

	for i, b := range boxes {
		if !b.Rect().In(f.Cell(i)) {
			t.Errorf("box %d %v not inside cell %v", i, b, f.Cell(i))
		}
	}
}

func TestFitErrors(t *testing.T) {
	if _, err := FitGrid(nil, 3); spritegrid.Kind(err) != spritegrid.ErrEmptyBoxSet {
		t.Errorf("nil grid: got %v; want ErrEmptyBoxSet", err)
	}
	if _, err := FitGrid(Grid{{}}, 3); spritegrid.Kind(err) != spritegrid.ErrEmptyBoxSet {
		t.Errorf("empty row: got %v; want ErrEmptyBoxSet", err)
	}
	short := Grid{{bbox.New(0, 0, 1, 1)}, {bbox.New(5, 0, 6, 1), bbox.New(5, 3, 6, 4)}}
	if _, err := FitGrid(short, 2); spritegrid.Kind(err) != spritegrid.ErrGridMismatch {
		t.Errorf("short first row: got %v; want ErrGridMismatch", err)
	}
	if _, err := FitGrid(short, 0); spritegrid.Kind(err) != spritegrid.ErrGridMismatch {
		t.Errorf("zero cols: got %v; want ErrGridMismatch", err)
	}
}

func TestRowRange(t *testing.T) {
	g := Grid{
		{bbox.New(2, 0, 9, 5), bbox.New(3, 8, 10, 13)},
		{bbox.New(15, 0, 22, 5), bbox.New(14, 8, 21, 13)},
		{bbox.New(30, 0, 37, 5)},
	}
	for _, tc := range []struct {
		idx                            int
		wantStart, wantEnd, wantBottom int
	}{
		{0, 0, 14, 11},
		{1, 11, 30, 23},
		{2, 23, 40, 38},
	} {
		start, end, bottom := g.RowRange(tc.idx, 40)
		ttesting.AssertEqualInt(t, "start", start, tc.wantStart)
		ttesting.AssertEqualInt(t, "end", end, tc.wantEnd)
		ttesting.AssertEqualInt(t, "bottom", bottom, tc.wantBottom)
	}
}
