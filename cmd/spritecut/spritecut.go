// Command spritecut detects the sprites on one or more sprite sheets and
// prints their boxes, sprite descriptions or grid fit.
//
// Usage:
//
//	spritecut -rule=alpha -rows=3 -cols=11 -mode=report sheet.png
//
// With several sheets the analysis runs in parallel; in sprites mode the
// descriptions are merged into one list named after the sheet paths.
package main

import (
	"context"
	"flag"
	"image"
	"io"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/spritegrid/mask"
	"badc0de.net/pkg/spritegrid/pixels"
	"badc0de.net/pkg/spritegrid/sheetio"
	"badc0de.net/pkg/spritegrid/slicer"
)

var (
	rule = mask.Transparent()

	yMin = flag.Int("ym", -1, "y-min coordinate of the cutout")
	xMin = flag.Int("xm", -1, "x-min coordinate of the cutout")
	yMax = flag.Int("yM", -1, "y-max coordinate of the cutout (exclusive)")
	xMax = flag.Int("xM", -1, "x-max coordinate of the cutout (exclusive)")

	rows        = flag.Int("rows", 0, "number of sprite rows; 0 skips grid fitting")
	cols        = flag.Int("cols", 0, "number of sprite columns")
	spriteCount = flag.Int("sprite_count", 0, "number of sprites in the grid; 0 means rows*cols")

	merge            = flag.Bool("merge", false, "whether to merge overlapping boxes")
	clearTransparent = flag.Bool("clear_transparent", false, "whether to zero fully transparent pixels before detection")

	mode     = flag.String("mode", "report", "what to print: boxes, sprites, fit, tileset or report")
	outPath  = flag.String("o", "", "where to write the result; stdout if empty")
	texture  = flag.String("texture", "", "texture_filepath written into sprite descriptions")
	prefix   = flag.String("prefix", "sprite", "sprite name prefix in sprite descriptions")
	parallel = flag.Int("parallel", 4, "how many sheets to analyze at once")
	display  = flag.Bool("display", false, "whether to print the sheet with the detected boxes on terminal")
)

func init() {
	flag.Var(&rule, "rule", "background rule: alpha, color:R,G,B,A or channel:N=V")
}

// cutout turns the cut flags into a rectangle on a sheet of the passed
// size. Negative values mean the sheet edge.
func cutout(bounds image.Rectangle) image.Rectangle {
	if *yMin < 0 && *xMin < 0 && *yMax < 0 && *xMax < 0 {
		return image.Rectangle{}
	}
	r := bounds
	if *yMin >= 0 {
		r.Min.Y = *yMin
	}
	if *xMin >= 0 {
		r.Min.X = *xMin
	}
	if *yMax >= 0 {
		r.Max.Y = *yMax
	}
	if *xMax >= 0 {
		r.Max.X = *xMax
	}
	return r
}

func options(buf *pixels.Buffer) slicer.Options {
	return slicer.Options{
		Rule:             rule,
		Cutout:           cutout(buf.Bounds()),
		ClearTransparent: *clearTransparent,
		Merge:            *merge,
		Rows:             *rows,
		Cols:             *cols,
		SpriteCount:      *spriteCount,
	}
}

func openOut() (io.WriteCloser, error) {
	if *outPath == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(*outPath)
	return f, errors.Wrap(err, "creating output")
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if flag.NArg() == 0 {
		glog.Fatal("no sprite sheets passed")
	}

	var jobs []slicer.Job
	bufs := map[string]*pixels.Buffer{}
	for _, name := range flag.Args() {
		buf, err := sheetio.LoadFile(name)
		if err != nil {
			glog.Fatalf("loading sheet: %v", err)
		}
		bufs[name] = buf
		jobs = append(jobs, slicer.Job{Name: name, Buffer: buf, Options: options(buf)})
	}

	results, err := slicer.Batch(context.Background(), jobs, *parallel)
	if err != nil {
		glog.Fatalf("%v", err)
	}

	if *display {
		for i, job := range jobs {
			show(bufs[job.Name], results[i])
		}
	}

	if *plotDir != "" {
		if err := writePlots(*plotDir, jobs, results); err != nil {
			glog.Fatalf("%v", err)
		}
	}

	w, err := openOut()
	if err != nil {
		glog.Fatalf("%v", err)
	}
	if err := write(w, *mode, jobs, results); err != nil {
		glog.Fatalf("%v", err)
	}
	if err := w.Close(); err != nil {
		glog.Fatalf("closing output: %v", err)
	}
	if *outPath != "" {
		glog.Infof("written to %q", *outPath)
	}
}
