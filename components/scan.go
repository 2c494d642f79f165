// Package components finds the sprites on an occupancy mask.
//
// Scan extracts 4-connected foreground regions as bounding boxes; Merge
// coalesces the fragments a loose background rule may split one sprite into.
package components

import (
	"image"

	"badc0de.net/pkg/spritegrid/bbox"
	"badc0de.net/pkg/spritegrid/mask"
)

// Scan flood fills every 4-connected foreground region of m and returns the
// bounding box of each.
//
// Boxes come out in the order their first pixel is met by a row-major scan,
// not in any spatial order. A region whose box never grows past its seed
// pixel is not reported, so isolated single pixels are dropped.
//
// m is not modified.
func Scan(m *mask.Mask) []bbox.Box {
	w, h := m.Width, m.Height
	visited := make([]bool, len(m.Bits))

	var boxes []bbox.Box
	var stack []image.Point

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited[y*w+x] {
				continue
			}

			seed := bbox.Point(x, y)
			box := seed

			stack = append(stack[:0], image.Point{X: x, Y: y})
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
					continue
				}
				idx := p.Y*w + p.X
				if visited[idx] {
					continue
				}
				visited[idx] = true

				if m.Bits[idx] {
					continue
				}
				box = box.Extend(p.X, p.Y)

				stack = append(stack,
					image.Point{X: p.X, Y: p.Y - 1},
					image.Point{X: p.X, Y: p.Y + 1},
					image.Point{X: p.X - 1, Y: p.Y},
					image.Point{X: p.X + 1, Y: p.Y},
				)
			}

			if box != seed {
				boxes = append(boxes, box)
			}
		}
	}
	return boxes
}
