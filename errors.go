package spritegrid

import (
	"github.com/pkg/errors"
)

// Error kinds reported by the pipeline stages. Stages wrap these with
// context, so compare using errors.Is.
var (
	// ErrInvalidInput is returned for an empty or malformed pixel buffer, or
	// a background rule which does not fit the buffer.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGridMismatch is returned when the requested rows, cols and sprite
	// count are inconsistent with each other or with the detected boxes.
	ErrGridMismatch = errors.New("grid mismatch")

	// ErrEmptyBoxSet is returned by stages which are undefined on zero boxes.
	ErrEmptyBoxSet = errors.New("empty box set")
)

// Kind returns the error kind err was derived from, or nil if err does not
// wrap any of the kinds above.
func Kind(err error) error {
	for _, k := range []error{ErrInvalidInput, ErrGridMismatch, ErrEmptyBoxSet} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
