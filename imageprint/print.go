// Package imageprint prints sprite sheets on terminal, and draws the debug
// overlays (boxes, grid rows, centroids, fitted cells) onto them.
//
// The terminal printers have an API with no stability guarantees.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"

	"github.com/gookit/color"
)

type dumper interface {
	Printf(s string, arg ...interface{})
}

type fmtDumper struct{ w io.Writer }

func (d fmtDumper) Printf(s string, arg ...interface{}) {
	fmt.Fprintf(d.w, s, arg...)
}

type rgbDumper struct {
	w io.Writer
	c color.RGBColor
}

func (d rgbDumper) Printf(s string, arg ...interface{}) {
	fmt.Fprint(d.w, d.c.Sprintf(s, arg...))
}

func shade(w io.Writer, col ic.Color, escapesTrueColor, blanks, noColor bool) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		if noColor {
			fmt.Fprintf(w, "  ")
		} else {
			fmt.Fprintf(w, "\x1b[0m  ")
		}
		return
	}

	var d dumper = fmtDumper{w}
	switch {
	case noColor:
	case escapesTrueColor:
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm", uint8(cR>>8), uint8(cG>>8), uint8(cB>>8))
	default:
		d = rgbDumper{w, color.RGB(uint8(cR>>8), uint8(cG>>8), uint8(cB>>8), true)}
	}
	if blanks {
		d.Printf("  ")
	} else {
		a := ((cR + cG + cB) / 3) >> 8
		switch {
		case a < 32:
			d.Printf("..")
		case a < 64:
			d.Printf("--")
		case a < 128:
			d.Printf("==")
		default:
			d.Printf("##")
		}
	}
	if escapesTrueColor && !noColor {
		fmt.Fprintf(w, "\x1b[0m")
	}
}

func printImage(w io.Writer, i image.Image, trueColor, blanks, noColor bool) {
	for y := i.Bounds().Min.Y; y < i.Bounds().Max.Y; y++ {
		for x := i.Bounds().Min.X; x < i.Bounds().Max.X; x++ {
			shade(w, i.At(x, y), trueColor, blanks, noColor)
		}
		if !noColor {
			fmt.Fprintf(w, "\x1b[0m")
		}
		fmt.Fprintf(w, "\n")
	}
}

// Print256Color draws an image using 256color'd ascii art.
func Print256Color(w io.Writer, i image.Image, blanks bool) {
	printImage(w, i, false, blanks, false)
}

// Print24bit draws an image using 24bit color escape sequences by changing background.
func Print24bit(w io.Writer, i image.Image, blanks bool) {
	printImage(w, i, true, blanks, false)
}

// PrintNoColor draws an image without using color escape sequences. Only
// makes sense with blanks=false.
func PrintNoColor(w io.Writer, i image.Image, blanks bool) {
	printImage(w, i, false, blanks, true)
}

// PrintITerm draws an image using iTerm2's escape sequences.
//
// https://www.iterm2.com/documentation-images.html
func PrintITerm(w io.Writer, i image.Image, fn string) {
	if !isTermItermWez() {
		return
	}
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	png.Encode(bEnc, i)
	bEnc.Close()
	fmt.Fprintf(w, "\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n", name, b.Len(), i.Bounds().Size().X, i.Bounds().Size().Y, b.String())
}
