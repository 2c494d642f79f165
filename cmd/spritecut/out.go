package main

import (
	"flag"
	"image"
	"os"

	"github.com/nfnt/resize"

	"badc0de.net/pkg/spritegrid/bbox"
	"badc0de.net/pkg/spritegrid/imageprint"
	"badc0de.net/pkg/spritegrid/pixels"
	"badc0de.net/pkg/spritegrid/slicer"
)

var (
	col      = flag.Bool("col", true, "whether to use color when displaying")
	col256   = flag.Bool("col256", false, "whether to use 256 col instead of 24 bit")
	iterm    = flag.Bool("iterm", false, "whether to print with iterm escape code instead of 24 bit")
	rasterm  = flag.Bool("rasterm", false, "whether to print with kitty, iterm or sixel graphics through rasterm")
	blanks   = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize = flag.Bool("downsize", true, "whether to shrink the sheet to fit the terminal")
)

// annotate draws the analysis onto the sheet: scanned boxes, merged boxes
// on top of them, and when a grid was fit, its rows in per-row colors, the
// fitted cells and the predicted cell centers.
func annotate(img image.Image, r *slicer.Result) *image.NRGBA {
	var out *image.NRGBA
	if r.Scanned != nil {
		out = imageprint.Overlay(img, bbox.Translated(r.Scanned, r.Origin), imageprint.BoxColor)
		out = imageprint.Overlay(out, r.SheetBoxes(), imageprint.MergedColor)
	} else {
		out = imageprint.Overlay(img, r.SheetBoxes(), imageprint.BoxColor)
	}
	if r.Fit == nil {
		return out
	}
	g := r.Grid.Translated(r.Origin)
	out = imageprint.OverlayGrid(out, g)
	out = imageprint.OverlayFit(out, r.Fit, r.Grid.Count())
	return imageprint.OverlayCentroids(out, g, r.Fit.Cols)
}

// show displays the annotated sheet on the terminal.
func show(buf *pixels.Buffer, r *slicer.Result) {
	out(annotate(buf.Image(), r))
}

func out(img image.Image) {
	if *downsize {
		termSize, err := GetTermSize()
		if err == nil {
			if (termSize.WSXPixel != 0 && termSize.WSYPixel != 0) && (*rasterm || *iterm) {
				// Pixel based renderers can show the sheet at native size.
				img = resize.Thumbnail(termSize.WSXPixel/2, termSize.WSYPixel/2, img, resize.NearestNeighbor)
			} else {
				img = resize.Thumbnail(termSize.WSCol/2, termSize.WSRow, img, resize.NearestNeighbor)
			}
		}
	}

	switch {
	case *rasterm:
		if !imageprint.PrintRasTerm(os.Stdout, img) {
			imageprint.Print24bit(os.Stdout, img, *blanks)
		}
	case !*col:
		imageprint.PrintNoColor(os.Stdout, img, *blanks)
	case *iterm:
		imageprint.PrintITerm(os.Stdout, img, "sheet.png")
	case *col256:
		imageprint.Print256Color(os.Stdout, img, *blanks)
	default:
		imageprint.Print24bit(os.Stdout, img, *blanks)
	}
}
