// Package mask turns a pixel buffer into an occupancy mask using a
// background rule.
//
// A mask cell is true where the pixel is background (empty), and false where
// it belongs to a sprite.
package mask

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"badc0de.net/pkg/spritegrid"
	"badc0de.net/pkg/spritegrid/pixels"
)

// Rule decides whether a pixel is background.
//
// The zero value is not a usable rule; build one with ExactColor,
// ChannelEquals or ParseRule.
type Rule struct {
	kind    ruleKind
	color   []uint8
	channel int
	value   uint8
}

type ruleKind int

const (
	ruleNone ruleKind = iota
	ruleExactColor
	ruleChannel
)

// ExactColor matches pixels whose channels all equal c. The length of c must
// equal the channel count of the buffer the rule is applied to.
func ExactColor(c ...uint8) Rule {
	return Rule{kind: ruleExactColor, color: append([]uint8(nil), c...)}
}

// ChannelEquals matches pixels whose channel ch equals v.
func ChannelEquals(ch int, v uint8) Rule {
	return Rule{kind: ruleChannel, channel: ch, value: v}
}

// Transparent matches fully transparent pixels of an RGBA buffer.
func Transparent() Rule {
	return ChannelEquals(3, 0)
}

// Check reports whether the rule can be evaluated on a buffer with the
// passed channel count.
func (r Rule) Check(channels int) error {
	switch r.kind {
	case ruleExactColor:
		if len(r.color) != channels {
			return errors.Wrapf(spritegrid.ErrInvalidInput, "background color has %d channels; buffer has %d", len(r.color), channels)
		}
	case ruleChannel:
		if r.channel < 0 || r.channel >= channels {
			return errors.Wrapf(spritegrid.ErrInvalidInput, "background channel %d out of range for %d channel buffer", r.channel, channels)
		}
	default:
		return errors.Wrap(spritegrid.ErrInvalidInput, "no background rule")
	}
	return nil
}

// Match reports whether pixel p is background. p must have the channel count
// the rule was checked against.
func (r Rule) Match(p []uint8) bool {
	switch r.kind {
	case ruleExactColor:
		for i, c := range r.color {
			if p[i] != c {
				return false
			}
		}
		return true
	case ruleChannel:
		return p[r.channel] == r.value
	}
	return false
}

// String formats the rule in the syntax accepted by ParseRule.
func (r Rule) String() string {
	switch r.kind {
	case ruleExactColor:
		parts := make([]string, len(r.color))
		for i, c := range r.color {
			parts[i] = strconv.Itoa(int(c))
		}
		return "color:" + strings.Join(parts, ",")
	case ruleChannel:
		return fmt.Sprintf("channel:%d=%d", r.channel, r.value)
	}
	return "none"
}

// ParseColor parses comma separated channel values, e.g. "83,103,141,0".
func ParseColor(s string) ([]uint8, error) {
	var c []uint8
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing color %q", s)
		}
		c = append(c, uint8(v))
	}
	return c, nil
}

// ParseRule parses a background rule. Accepted forms:
//
//	alpha                 same as channel:3=0
//	color:R,G,B,A         exact color match (any number of channels)
//	channel:N=V           channel N equals V
func ParseRule(s string) (Rule, error) {
	kind, arg, _ := strings.Cut(strings.TrimSpace(s), ":")
	switch kind {
	case "alpha", "transparent":
		return Transparent(), nil
	case "color":
		c, err := ParseColor(arg)
		if err != nil {
			return Rule{}, errors.Wrap(err, "parsing background color")
		}
		return ExactColor(c...), nil
	case "channel":
		chStr, vStr, ok := strings.Cut(arg, "=")
		if !ok {
			return Rule{}, errors.Errorf("parsing channel rule %q: want N=V", arg)
		}
		ch, err := strconv.Atoi(chStr)
		if err != nil {
			return Rule{}, errors.Wrapf(err, "parsing channel index %q", chStr)
		}
		v, err := strconv.ParseUint(vStr, 10, 8)
		if err != nil {
			return Rule{}, errors.Wrapf(err, "parsing channel value %q", vStr)
		}
		return ChannelEquals(ch, uint8(v)), nil
	}
	return Rule{}, errors.Errorf("unknown background rule %q", s)
}

// Set implements flag.Value.
func (r *Rule) Set(s string) error {
	parsed, err := ParseRule(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Mask is a width x height grid of booleans, true where the background rule
// held.
type Mask struct {
	Width, Height int
	Bits          []bool
}

// NewMask allocates an all-foreground mask.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, Bits: make([]bool, width*height)}
}

// At reports whether (x, y) is background.
func (m *Mask) At(x, y int) bool {
	return m.Bits[y*m.Width+x]
}

// Set marks (x, y) as background or foreground.
func (m *Mask) Set(x, y int, background bool) {
	m.Bits[y*m.Width+x] = background
}

// Build evaluates rule on every pixel of buf.
func Build(buf *pixels.Buffer, rule Rule) (*Mask, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if err := rule.Check(buf.Channels); err != nil {
		return nil, err
	}

	m := NewMask(buf.Width, buf.Height)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			m.Bits[y*m.Width+x] = rule.Match(buf.At(x, y))
		}
	}
	return m, nil
}
