// Package pixels holds the raw pixel buffer the sprite pipeline works on.
//
// A Buffer is a plain height x width x channels array of bytes. It does not
// implement image.Image on purpose: the pipeline compares raw channel values
// (for example an exact background color, or alpha == 0) and should not go
// through color model conversions to do it.
package pixels

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/pkg/errors"

	"badc0de.net/pkg/spritegrid"
)

// Buffer is a row-major pixel array. Channel c of pixel (x, y) lives at
// Pix[(y*Width+x)*Channels+c].
type Buffer struct {
	Width, Height int
	Channels      int
	Pix           []uint8
}

// New allocates a zeroed buffer.
func New(width, height, channels int) *Buffer {
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// Validate checks that the buffer is non-empty and that Pix has the size the
// dimensions promise.
func (b *Buffer) Validate() error {
	if b == nil {
		return errors.Wrap(spritegrid.ErrInvalidInput, "nil pixel buffer")
	}
	if b.Width <= 0 || b.Height <= 0 {
		return errors.Wrapf(spritegrid.ErrInvalidInput, "empty pixel buffer %dx%d", b.Width, b.Height)
	}
	if b.Channels <= 0 {
		return errors.Wrapf(spritegrid.ErrInvalidInput, "pixel buffer has %d channels", b.Channels)
	}
	if want := b.Width * b.Height * b.Channels; len(b.Pix) != want {
		return errors.Wrapf(spritegrid.ErrInvalidInput, "pixel buffer holds %d values; want %d", len(b.Pix), want)
	}
	return nil
}

// Bounds returns the buffer extent as a rectangle anchored at 0,0.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// offset returns the index of the first channel of pixel (x, y).
func (b *Buffer) offset(x, y int) int {
	return (y*b.Width + x) * b.Channels
}

// At returns the channel values of pixel (x, y). The returned slice aliases
// the buffer.
func (b *Buffer) At(x, y int) []uint8 {
	o := b.offset(x, y)
	return b.Pix[o : o+b.Channels : o+b.Channels]
}

// Set copies v into pixel (x, y). Extra values in v are ignored, missing ones
// leave the channel untouched.
func (b *Buffer) Set(x, y int, v []uint8) {
	copy(b.At(x, y), v)
}

// Fill sets every pixel in r (clipped to the buffer) to v.
func (b *Buffer) Fill(r image.Rectangle, v []uint8) {
	r = r.Intersect(b.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.Set(x, y, v)
		}
	}
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	c := *b
	c.Pix = append([]uint8(nil), b.Pix...)
	return &c
}

// Crop returns a copy of the part of b within r. The rectangle is clipped to
// the buffer first; an empty intersection yields an invalid (empty) buffer.
func (b *Buffer) Crop(r image.Rectangle) *Buffer {
	r = r.Intersect(b.Bounds())
	out := New(r.Dx(), r.Dy(), b.Channels)
	rowLen := r.Dx() * b.Channels
	for y := 0; y < r.Dy(); y++ {
		src := b.offset(r.Min.X, r.Min.Y+y)
		copy(out.Pix[y*rowLen:(y+1)*rowLen], b.Pix[src:src+rowLen])
	}
	return out
}

// Blit copies src into b with its top-left corner at dst. Parts falling
// outside b are dropped. Both buffers must have the same channel count.
func (b *Buffer) Blit(dst image.Point, src *Buffer) {
	r := image.Rectangle{Min: dst, Max: dst.Add(image.Pt(src.Width, src.Height))}.Intersect(b.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.Set(x, y, src.At(x-dst.X, y-dst.Y))
		}
	}
}

// FromImage converts img into a 4 channel, non-premultiplied RGBA buffer.
// The image's bounds are rebased to 0,0.
//
// *image.NRGBA sources are copied verbatim, so fully transparent pixels keep
// their color channels (sheets often key on a transparent color). Any other
// image type goes through the NRGBA color model, which zeroes them.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(bounds)
		draw.Draw(nrgba, bounds, img, bounds.Min, draw.Src)
	}

	buf := New(bounds.Dx(), bounds.Dy(), 4)
	rowLen := buf.Width * 4
	for y := 0; y < buf.Height; y++ {
		src := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(buf.Pix[y*rowLen:(y+1)*rowLen], nrgba.Pix[src:src+rowLen])
	}
	return buf
}

// Image converts the buffer back into an image. One channel is treated as
// gray, two as gray+alpha, three as RGB and four or more as RGBA with the
// extra channels dropped.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(b.Bounds())
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			img.SetNRGBA(x, y, b.color(x, y))
		}
	}
	return img
}

func (b *Buffer) color(x, y int) color.NRGBA {
	p := b.At(x, y)
	switch len(p) {
	case 1:
		return color.NRGBA{p[0], p[0], p[0], 0xFF}
	case 2:
		return color.NRGBA{p[0], p[0], p[0], p[1]}
	case 3:
		return color.NRGBA{p[0], p[1], p[2], 0xFF}
	default:
		return color.NRGBA{p[0], p[1], p[2], p[3]}
	}
}
