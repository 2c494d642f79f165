// Package slicer chains the pipeline stages: it turns a decoded sprite sheet
// into sprite boxes, a row-major grid, and a uniform grid fit.
package slicer

import (
	"context"
	"image"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/spritegrid"
	"badc0de.net/pkg/spritegrid/bbox"
	"badc0de.net/pkg/spritegrid/components"
	"badc0de.net/pkg/spritegrid/grid"
	"badc0de.net/pkg/spritegrid/mask"
	"badc0de.net/pkg/spritegrid/pixels"
	"badc0de.net/pkg/spritegrid/sheet"
)

// Options controls a single run over one sheet.
type Options struct {
	// Rule marks background pixels.
	Rule mask.Rule

	// Cutout restricts detection to part of the sheet. The zero rectangle
	// means the whole sheet.
	Cutout image.Rectangle

	// ClearTransparent zeroes fully transparent pixels before masking.
	ClearTransparent bool

	// Merge coalesces overlapping boxes after scanning.
	Merge bool

	// Rows and Cols describe the sprite layout. Zero Rows skips grid
	// inference and fitting.
	Rows, Cols int

	// SpriteCount is the number of sprites in the grid. Zero means
	// Rows*Cols.
	SpriteCount int
}

func (o Options) count() int {
	if o.SpriteCount == 0 {
		return o.Rows * o.Cols
	}
	return o.SpriteCount
}

// Result holds everything found on one sheet.
type Result struct {
	// Origin is the top-left corner of the cutout within the sheet.
	Origin image.Point

	// Boxes are the detected sprites in cutout-local coordinates, in scan
	// (or merge) order.
	Boxes []bbox.Box

	// Scanned holds the boxes as found before merging. Nil unless
	// Options.Merge was set.
	Scanned []bbox.Box

	// Grid and Fit are only set when a layout was requested. The grid is in
	// cutout-local coordinates; the fit is in sheet coordinates.
	Grid grid.Grid
	Fit  *grid.Fit
}

// SheetBoxes returns Boxes translated to sheet coordinates.
func (r *Result) SheetBoxes() []bbox.Box {
	return bbox.Translated(r.Boxes, r.Origin)
}

func cutout(buf *pixels.Buffer, r image.Rectangle) (*pixels.Buffer, image.Point, error) {
	if r == (image.Rectangle{}) {
		return buf, image.Point{}, nil
	}
	if r.Empty() || !r.In(buf.Bounds()) {
		return nil, image.Point{}, errors.Wrapf(spritegrid.ErrInvalidInput, "cutout %v outside sheet %v", r, buf.Bounds())
	}
	return buf.Crop(r), r.Min, nil
}

// Detect finds sprite boxes on buf: it crops to the cutout, optionally
// clears transparent pixels, masks, scans, and optionally merges. Boxes are
// in cutout-local coordinates.
func Detect(buf *pixels.Buffer, o Options) ([]bbox.Box, error) {
	res, err := detect(buf, o)
	if err != nil {
		return nil, err
	}
	return res.Boxes, nil
}

func detect(buf *pixels.Buffer, o Options) (*Result, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	work, origin, err := cutout(buf, o.Cutout)
	if err != nil {
		return nil, err
	}
	if o.ClearTransparent {
		if work, err = sheet.ClearTransparent(work); err != nil {
			return nil, errors.Wrap(err, "clearing transparent pixels")
		}
	}
	m, err := mask.Build(work, o.Rule)
	if err != nil {
		return nil, err
	}

	res := &Result{Origin: origin, Boxes: components.Scan(m)}
	glog.Infof("bounding boxes found: %d", len(res.Boxes))

	if o.Merge && len(res.Boxes) > 0 {
		res.Scanned = res.Boxes
		if res.Boxes, err = components.Merge(res.Boxes); err != nil {
			return nil, err
		}
		glog.V(1).Infof("boxes after merging: %d", len(res.Boxes))
	}
	return res, nil
}

// Analyze runs Detect and, when o.Rows is set, orders the boxes into a grid
// and fits it. The fit's offsets include the cutout origin.
func Analyze(buf *pixels.Buffer, o Options) (*Result, error) {
	if o.Rows != 0 {
		if err := grid.CheckShape(o.Rows, o.Cols, o.count()); err != nil {
			return nil, err
		}
	}

	res, err := detect(buf, o)
	if err != nil {
		return nil, err
	}
	if o.Rows == 0 {
		return res, nil
	}

	if res.Grid, err = grid.Infer(res.Boxes, o.Rows, o.Cols, o.count()); err != nil {
		return nil, err
	}
	if res.Fit, err = grid.FitGridAt(res.Grid, o.Cols, grid.FitOptions{Origin: res.Origin}); err != nil {
		return nil, err
	}
	return res, nil
}

// Job is one sheet for Batch.
type Job struct {
	// Name identifies the sheet in errors.
	Name    string
	Buffer  *pixels.Buffer
	Options Options
}

// Batch analyzes independent sheets concurrently, at most parallelism at a
// time (unlimited if parallelism < 1). Results are in job order. The first
// failure cancels the jobs which have not started yet and is returned.
func Batch(ctx context.Context, jobs []Job, parallelism int) ([]*Result, error) {
	g, ctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	results := make([]*Result, len(jobs))
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := Analyze(job.Buffer, job.Options)
			if err != nil {
				return errors.Wrapf(err, "analyzing %s", job.Name)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
