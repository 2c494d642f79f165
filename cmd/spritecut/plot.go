package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"badc0de.net/pkg/spritegrid/slicer"
)

var plotDir = flag.String("plot", "", "if set, write a PNG scatter of how far each sprite sits from its fitted cell center into this directory")

// jitter returns, per grid sprite, the offset of its centroid from the
// center of the cell the fit assigned it.
func jitter(r *slicer.Result) plotter.XYs {
	if r.Fit == nil {
		return nil
	}
	boxes := r.Grid.Boxes()
	pts := make(plotter.XYs, 0, len(boxes))
	for i, b := range boxes {
		y, x := b.Translate(r.Origin).Centroid()
		cy, cx := r.Fit.Box(i).Centroid()
		pts = append(pts, plotter.XY{X: x - cx, Y: y - cy})
	}
	return pts
}

func plotName(sheet string) string {
	base := filepath.Base(sheet)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_jitter.png"
}

// writePlots saves one jitter scatter per fitted sheet into dir.
func writePlots(dir string, jobs []slicer.Job, results []*slicer.Result) error {
	for i, job := range jobs {
		pts := jitter(results[i])
		if len(pts) == 0 {
			glog.V(1).Infof("%s: no grid fit, not plotting", job.Name)
			continue
		}

		p := plot.New()
		p.Title.Text = fmt.Sprintf("%s: %s", job.Name, results[i].Fit)
		p.X.Label.Text = "x offset (px)"
		p.Y.Label.Text = "y offset (px)"
		p.Add(plotter.NewGrid())

		s, err := plotter.NewScatter(pts)
		if err != nil {
			return errors.Wrapf(err, "%s: scatter", job.Name)
		}
		s.GlyphStyle.Radius = vg.Points(2)
		p.Add(s)

		name := filepath.Join(dir, plotName(job.Name))
		if err := p.Save(8*vg.Inch, 6*vg.Inch, name); err != nil {
			return errors.Wrapf(err, "saving %s", name)
		}
		glog.Infof("jitter plot written to %q", name)
	}
	return nil
}
