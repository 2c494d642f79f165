// Command sheetedit prepares sprite sheets before slicing.
//
//	sheetedit -op=extend -top=4 -left=4 -fill=0,0,0,0 -o out.png in.png
//	sheetedit -op=fill_bg -from=83,103,141,255 -to=0,0,0,0 -o out.png in.png
//	sheetedit -op=clear -o out.png in.png
//	sheetedit -op=swap_rows -rows=3 -cols=8 -order=2,0,1 -o out.png in.png
package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/spritegrid/mask"
	"badc0de.net/pkg/spritegrid/pixels"
	"badc0de.net/pkg/spritegrid/sheet"
	"badc0de.net/pkg/spritegrid/sheetio"
	"badc0de.net/pkg/spritegrid/slicer"
)

// colorFlag is a flag.Value holding comma separated channel values.
type colorFlag []uint8

func (c *colorFlag) String() string {
	parts := make([]string, len(*c))
	for i, v := range *c {
		parts[i] = strconv.Itoa(int(v))
	}
	return strings.Join(parts, ",")
}

func (c *colorFlag) Set(s string) error {
	v, err := mask.ParseColor(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

var (
	op      = flag.String("op", "", "edit to perform: extend, fill_bg, clear or swap_rows")
	outPath = flag.String("o", "", "where to write the edited sheet (PNG)")

	top    = flag.Int("top", 0, "extend: rows added above")
	left   = flag.Int("left", 0, "extend: columns added on the left")
	bottom = flag.Int("bottom", 0, "extend: rows added below")
	right  = flag.Int("right", 0, "extend: columns added on the right")

	rows        = flag.Int("rows", 0, "swap_rows: number of sprite rows")
	cols        = flag.Int("cols", 0, "swap_rows: number of sprite columns")
	spriteCount = flag.Int("sprite_count", 0, "swap_rows: number of sprites; 0 means rows*cols")
	order       = flag.String("order", "", "swap_rows: comma separated source row for each output row")

	fill = colorFlag{0, 0, 0, 0}
	from colorFlag
	to   colorFlag
	rule = mask.Transparent()
)

func init() {
	flag.Var(&fill, "fill", "extend, swap_rows: color of the new area")
	flag.Var(&from, "from", "fill_bg: color to replace")
	flag.Var(&to, "to", "fill_bg: replacement color")
	flag.Var(&rule, "rule", "swap_rows: background rule used to find the sprites")
}

func parseOrder(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "parsing row order %q", s)
		}
		out = append(out, i)
	}
	return out, nil
}

func edit(buf *pixels.Buffer) (*pixels.Buffer, error) {
	switch *op {
	case "extend":
		return sheet.Pad(buf, *top, *left, *bottom, *right, fill)
	case "fill_bg":
		return sheet.ReplaceColor(buf, from, to)
	case "clear":
		return sheet.ClearTransparent(buf)
	case "swap_rows":
		ord, err := parseOrder(*order)
		if err != nil {
			return nil, err
		}
		res, err := slicer.Analyze(buf, slicer.Options{Rule: rule, Rows: *rows, Cols: *cols, SpriteCount: *spriteCount})
		if err != nil {
			return nil, errors.Wrap(err, "finding sprite rows")
		}
		return sheet.ReorderRows(buf, res.Grid, ord, fill)
	}
	return nil, errors.Errorf("unknown op %q", *op)
}

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if flag.NArg() != 1 || *outPath == "" {
		glog.Fatal("usage: sheetedit -op=... -o out.png in.png")
	}

	buf, err := sheetio.LoadFile(flag.Arg(0))
	if err != nil {
		glog.Fatalf("%v", err)
	}
	edited, err := edit(buf)
	if err != nil {
		glog.Fatalf("%s: %v", *op, err)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		glog.Fatalf("creating output: %v", err)
	}
	if err := sheetio.Save(f, edited); err != nil {
		glog.Fatalf("%v", err)
	}
	if err := f.Close(); err != nil {
		glog.Fatalf("closing output: %v", err)
	}
	glog.Infof("%s: %dx%d -> %dx%d, written to %q", *op, buf.Width, buf.Height, edited.Width, edited.Height, *outPath)
}
