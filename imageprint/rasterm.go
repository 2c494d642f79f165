//go:build !windows
// +build !windows

package imageprint

import (
	"fmt"
	"image"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
)

func isTermItermWez() bool {
	return rasterm.IsTermItermWez()
}

// PrintRasTerm draws an image using the RasTerm library.
//
// This should enable drawing in Kitty, iTerm/WezTerm and sixel capable
// terminals. It returns false if the terminal supports none of them.
func PrintRasTerm(w io.Writer, i image.Image) bool {
	if rasterm.IsTermKitty() {
		rasterm.Settings{}.KittyWriteImage(w, i)
		fmt.Fprintf(w, "\n")
		return true
	}
	if rasterm.IsTermItermWez() {
		rasterm.Settings{}.ItermWriteImage(w, i)
		fmt.Fprintf(w, "\n")
		return true
	}
	if capable, err := rasterm.IsSixelCapable(); capable && err == nil {
		palettedImage := image.NewPaletted(i.Bounds(), nil)
		quantizer := gogif.MedianCutQuantizer{NumColor: 64}
		quantizer.Quantize(palettedImage, i.Bounds(), i, image.Point{})

		rasterm.Settings{}.SixelWriteImage(w, palettedImage)
		fmt.Fprintf(w, "\n")
		return true
	}
	return false
}
