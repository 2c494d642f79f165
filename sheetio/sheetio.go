// Package sheetio decodes sprite sheets into pixel buffers and encodes them
// back.
//
// PNG, GIF, JPEG, BMP and WebP sheets are understood.
package sheetio

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"badc0de.net/pkg/spritegrid/paths"
	"badc0de.net/pkg/spritegrid/pixels"
)

// Load decodes an image from r into a 4 channel RGBA buffer, returning the
// name of the decoded format.
func Load(r io.Reader) (*pixels.Buffer, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", errors.Wrap(err, "decoding sheet")
	}
	buf := pixels.FromImage(img)
	glog.V(1).Infof("decoded %s sheet of %dx%d", format, buf.Width, buf.Height)
	return buf, format, nil
}

// LoadFile locates the named sheet using paths.Open and decodes it.
func LoadFile(name string) (*pixels.Buffer, error) {
	f, err := paths.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "opening sheet %q", name)
	}
	defer f.Close()
	buf, _, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading sheet %q", name)
	}
	return buf, nil
}

// Save encodes buf as PNG.
func Save(w io.Writer, buf *pixels.Buffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	return errors.Wrap(png.Encode(w, buf.Image()), "encoding sheet")
}
