// Package desc produces the JSON sheet descriptions the game engine loads:
// per-sprite rectangles, the compact grid fit vector, tileset headers, and
// merged sheet lists.
package desc

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"badc0de.net/pkg/spritegrid/bbox"
	"badc0de.net/pkg/spritegrid/grid"
)

// DefaultTexture is written as texture_filepath when none is known; the
// sheet author is expected to fill it in.
const DefaultTexture = "res/textures/..."

// Frames describes an animation strip starting at a sprite's offset. Sprites
// detected one by one are single frames.
type Frames struct {
	LineLength int    `json:"line_length"`
	LineCount  int    `json:"line_count"`
	StartFrame int    `json:"start_frame"`
	Offset     [2]int `json:"offset"`
}

// Sprite is one named rectangle of a sheet. Size and Offset are [x, y].
type Sprite struct {
	Name   string `json:"name"`
	Size   [2]int `json:"size"`
	Offset [2]int `json:"offset"`
	Frames Frames `json:"frames"`
}

// Sheet describes a texture and the sprites within it.
type Sheet struct {
	// Name is only set in merged sheet lists.
	Name    string   `json:"name,omitempty"`
	Texture string   `json:"texture_filepath"`
	Sprites []Sprite `json:"sprites"`
}

// Sprites describes every box as a single frame sprite named prefix_i.
func Sprites(texture string, boxes []bbox.Box, prefix string) *Sheet {
	if texture == "" {
		texture = DefaultTexture
	}
	if prefix == "" {
		prefix = "sprite"
	}
	s := &Sheet{Texture: texture, Sprites: make([]Sprite, 0, len(boxes))}
	for i, b := range boxes {
		s.Sprites = append(s.Sprites, Sprite{
			Name:   fmt.Sprintf("%s_%d", prefix, i),
			Size:   [2]int{b.Width(), b.Height()},
			Offset: [2]int{b.XMin, b.YMin},
			Frames: Frames{LineLength: 1, LineCount: 1},
		})
	}
	return s
}

// FitVector flattens a fit into the engine's animation vector:
//
//	[[width, height], [stepOffsetX, stepOffsetY], [xOffset, yOffset], rowY, [rows, cols]]
func FitVector(f *grid.Fit) [][]int {
	return [][]int{
		{f.Width, f.Height},
		{f.StepOffsetX, f.StepOffsetY},
		{f.XOffset, f.YOffset},
		append([]int{}, f.RowY...),
		{f.Rows, f.Cols},
	}
}

// Tileset is the header of a uniform tileset texture.
type Tileset struct {
	Texture string `json:"texture_filepath"`
	// TileCount is [cols, rows].
	TileCount [2]int `json:"tile_count"`
	TileSize  [2]int `json:"tile_size"`
	// Offset is the empty space between neighbouring tiles.
	Offset int `json:"offset"`
}

// NewTileset describes a rows x cols tileset of tileW x tileH tiles.
func NewTileset(texture string, rows, cols, tileW, tileH, offset int) *Tileset {
	return &Tileset{
		Texture:   texture,
		TileCount: [2]int{cols, rows},
		TileSize:  [2]int{tileW, tileH},
		Offset:    offset,
	}
}

// Write encodes v as JSON indented by four spaces.
func Write(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return errors.Wrap(enc.Encode(v), "writing description")
}

// Read decodes a single sheet description.
func Read(r io.Reader) (*Sheet, error) {
	s := &Sheet{}
	if err := json.NewDecoder(r).Decode(s); err != nil {
		return nil, errors.Wrap(err, "reading description")
	}
	return s, nil
}

// SheetName names a sheet found at relPath within a sheet tree: the
// directory prefix, renamed through aliases if listed, followed by the file
// name without its extension, with any remaining dots turned into path
// separators. "oc/grunt.walk.json" with aliases {"oc": "orc"} becomes
// "orc/grunt/walk".
func SheetName(relPath string, aliases map[string]string) string {
	dir, file := filepath.Split(filepath.ToSlash(relPath))
	dir = strings.TrimSuffix(dir, "/")
	if a, ok := aliases[dir]; ok {
		dir = a
	}
	parts := strings.Split(file, ".")
	if len(parts) > 1 {
		parts = parts[:len(parts)-1]
	}
	if dir != "" {
		parts = append([]string{dir}, parts...)
	}
	return strings.Join(parts, "/")
}

// NamedSheet pairs a sheet with its path inside a sheet tree.
type NamedSheet struct {
	Path  string
	Sheet *Sheet
}

// MergeSheets names each sheet with SheetName and collects them into one
// list, in the passed order. The input sheets are not modified.
func MergeSheets(sheets []NamedSheet, aliases map[string]string) []Sheet {
	out := make([]Sheet, 0, len(sheets))
	for _, ns := range sheets {
		s := *ns.Sheet
		s.Name = SheetName(ns.Path, aliases)
		out = append(out, s)
	}
	return out
}
