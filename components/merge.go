package components

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/spritegrid"
	"badc0de.net/pkg/spritegrid/bbox"
)

// Merge coalesces overlapping boxes in a single greedy pass.
//
// The first box seeds the result. Every following box is compared against
// the result boxes in order; the first one it overlaps is replaced by the
// union of both. A box overlapping nothing is appended.
//
// BUG: a union is not re-checked against the rest of the result, so when a
// grown box starts overlapping a later result box the two stay separate.
// Running Merge again on its own output picks those up. The single pass is
// kept because it is what existing sprite descriptions were generated with.
func Merge(boxes []bbox.Box) ([]bbox.Box, error) {
	if len(boxes) == 0 {
		return nil, errors.Wrap(spritegrid.ErrEmptyBoxSet, "merging boxes")
	}
	glog.V(1).Infof("box count: %d", len(boxes))

	res := []bbox.Box{boxes[0]}
	for _, b := range boxes[1:] {
		merged := false
		for j := range res {
			if b.Overlaps(res[j]) {
				res[j] = res[j].Union(b)
				merged = true
				break
			}
		}
		if !merged {
			res = append(res, b)
		}
	}

	glog.V(1).Infof("box count after merge: %d", len(res))
	return res, nil
}
