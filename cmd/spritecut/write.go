package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"

	"badc0de.net/pkg/spritegrid/desc"
	"badc0de.net/pkg/spritegrid/slicer"
)

// write prints the results in the passed mode. With a single sheet, boxes,
// sprites, fit and tileset print that sheet's value; with several, boxes,
// fit and tileset are keyed by sheet name and sprites become a merged sheet
// list.
func write(w io.Writer, mode string, jobs []slicer.Job, results []*slicer.Result) error {
	switch mode {
	case "boxes":
		return writeEach(w, jobs, results, func(r *slicer.Result) (interface{}, error) {
			out := [][]int{}
			for _, b := range r.SheetBoxes() {
				out = append(out, b.Slice())
			}
			return out, nil
		})
	case "fit":
		return writeEach(w, jobs, results, func(r *slicer.Result) (interface{}, error) {
			if r.Fit == nil {
				return nil, errors.New("fit mode needs -rows and -cols")
			}
			return desc.FitVector(r.Fit), nil
		})
	case "tileset":
		return writeEach(w, jobs, results, func(r *slicer.Result) (interface{}, error) {
			if r.Fit == nil {
				return nil, errors.New("tileset mode needs -rows and -cols")
			}
			f := r.Fit
			return desc.NewTileset(*texture, f.Rows, f.Cols, f.Width, f.Height, f.StepOffsetX), nil
		})
	case "sprites":
		if len(jobs) == 1 {
			return desc.Write(w, desc.Sprites(*texture, results[0].SheetBoxes(), *prefix))
		}
		var sheets []desc.NamedSheet
		for i, job := range jobs {
			sheets = append(sheets, desc.NamedSheet{Path: job.Name, Sheet: desc.Sprites(*texture, results[i].SheetBoxes(), *prefix)})
		}
		return desc.Write(w, desc.MergeSheets(sheets, nil))
	case "report":
		fmt.Fprint(w, figure.NewFigure("spritecut", "", true).String())
		for i, job := range jobs {
			report(w, job.Name, results[i])
		}
		return nil
	}
	return errors.Errorf("unknown mode %q", mode)
}

func writeEach(w io.Writer, jobs []slicer.Job, results []*slicer.Result, value func(*slicer.Result) (interface{}, error)) error {
	if len(jobs) == 1 {
		v, err := value(results[0])
		if err != nil {
			return err
		}
		return desc.Write(w, v)
	}
	all := map[string]interface{}{}
	for i, job := range jobs {
		v, err := value(results[i])
		if err != nil {
			return errors.Wrapf(err, "sheet %s", job.Name)
		}
		all[job.Name] = v
	}
	return desc.Write(w, all)
}

// report prints the analysis the way sheet authors copy it into sprite
// definitions.
func report(w io.Writer, name string, r *slicer.Result) {
	fmt.Fprintf(w, "%s\n", name)
	fmt.Fprintf(w, "bounding boxes found: %d\n", len(r.Boxes))
	if r.Fit == nil {
		return
	}
	f := r.Fit
	sep := strings.Repeat("-", 20)
	fmt.Fprintf(w, "x-step: %d\n", f.XStep)
	fmt.Fprintf(w, "x-limits: %v\n", f.XLimits)
	fmt.Fprintf(w, "x-edge distance: %d\n", f.Dx)
	fmt.Fprintf(w, "width: %d\n", f.Width)
	fmt.Fprintf(w, "x-step offset: %d\n", f.StepOffsetX)
	fmt.Fprintf(w, "x-initial offset: %d\n", f.XOffset)
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "y-edge distance: %d\n", f.Dy)
	fmt.Fprintf(w, "height: %d\n", f.Height)
	fmt.Fprintf(w, "y-step offset: %d\n", f.StepOffsetY)
	fmt.Fprintf(w, "y-initial offset: %d\n", f.YOffset)
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "vec = %v\n", desc.FitVector(f))
}
