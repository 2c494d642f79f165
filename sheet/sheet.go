// Package sheet holds whole-sheet pixel edits used while preparing sprite
// sheets: normalizing the background, padding, and restacking sprite rows.
//
// Every function returns a new buffer; the input is left untouched.
package sheet

import (
	"image"

	"github.com/bradfitz/iter"
	"github.com/pkg/errors"

	"badc0de.net/pkg/spritegrid"
	"badc0de.net/pkg/spritegrid/grid"
	"badc0de.net/pkg/spritegrid/mask"
	"badc0de.net/pkg/spritegrid/pixels"
)

func checkFill(buf *pixels.Buffer, fill []uint8) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	if len(fill) != buf.Channels {
		return errors.Wrapf(spritegrid.ErrInvalidInput, "fill color has %d channels; buffer has %d", len(fill), buf.Channels)
	}
	return nil
}

// Replace rewrites every pixel matching rule to fill.
func Replace(buf *pixels.Buffer, rule mask.Rule, fill []uint8) (*pixels.Buffer, error) {
	if err := checkFill(buf, fill); err != nil {
		return nil, err
	}
	if err := rule.Check(buf.Channels); err != nil {
		return nil, err
	}
	out := buf.Clone()
	for y := range iter.N(out.Height) {
		for x := range iter.N(out.Width) {
			if rule.Match(out.At(x, y)) {
				out.Set(x, y, fill)
			}
		}
	}
	return out, nil
}

// ClearTransparent rewrites every fully transparent pixel of an RGBA buffer
// to zero, so that leftover color in invisible pixels cannot break an exact
// color background rule.
func ClearTransparent(buf *pixels.Buffer) (*pixels.Buffer, error) {
	return Replace(buf, mask.Transparent(), make([]uint8, buf.Channels))
}

// ReplaceColor rewrites every pixel equal to from into to.
func ReplaceColor(buf *pixels.Buffer, from, to []uint8) (*pixels.Buffer, error) {
	return Replace(buf, mask.ExactColor(from...), to)
}

// Pad grows the sheet by the passed number of pixels on each side, filling
// the new area with fill.
func Pad(buf *pixels.Buffer, top, left, bottom, right int, fill []uint8) (*pixels.Buffer, error) {
	if err := checkFill(buf, fill); err != nil {
		return nil, err
	}
	if top < 0 || left < 0 || bottom < 0 || right < 0 {
		return nil, errors.Wrapf(spritegrid.ErrInvalidInput, "negative padding %d,%d,%d,%d", top, left, bottom, right)
	}
	out := pixels.New(buf.Width+left+right, buf.Height+top+bottom, buf.Channels)
	out.Fill(out.Bounds(), fill)
	out.Blit(image.Pt(left, top), buf)
	return out, nil
}

// ReorderRows restacks the sprite rows of g vertically in the passed order.
// order[i] names the source row which becomes row i; rows may be repeated or
// left out.
//
// Each row is moved together with the empty space above it, up to the
// previous row's lowest pixel, so the spacing between rows is kept. The
// sprites are copied box by box onto a sheet filled with fill.
func ReorderRows(buf *pixels.Buffer, g grid.Grid, order []int, fill []uint8) (*pixels.Buffer, error) {
	if err := checkFill(buf, fill); err != nil {
		return nil, err
	}

	type span struct{ start, bottom int }
	spans := make([]span, len(g))
	for idx := range g {
		start, _, bottom := g.RowRange(idx, buf.Height)
		spans[idx] = span{start, bottom}
	}

	height := 0
	for _, src := range order {
		if src < 0 || src >= len(g) {
			return nil, errors.Wrapf(spritegrid.ErrGridMismatch, "row %d not in a %d row grid", src, len(g))
		}
		height += spans[src].bottom - spans[src].start
	}
	if height == 0 {
		return nil, errors.Wrap(spritegrid.ErrInvalidInput, "reordered sheet would be empty")
	}

	out := pixels.New(buf.Width, height, buf.Channels)
	out.Fill(out.Bounds(), fill)

	pos := 0
	for _, src := range order {
		s := spans[src]
		for _, b := range g[src] {
			out.Blit(image.Pt(b.XMin, b.YMin-s.start+pos), buf.Crop(b.Rect()))
		}
		pos += s.bottom - s.start
	}
	return out, nil
}
