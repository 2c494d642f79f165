//go:build windows
// +build windows

package imageprint

import (
	"flag"
	"image"
	"io"
)

var (
	forceITerm = flag.Bool("force_iterm", false, "value to force iterm detection to take (implementation variant: no rasterm)")
)

func isTermItermWez() bool {
	return *forceITerm
}

// PrintRasTerm is not supported on windows and always returns false.
func PrintRasTerm(w io.Writer, i image.Image) bool {
	return false
}
