// Package ttesting holds small assertion helpers shared by the package tests.
package ttesting

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertInRangeInt(t *testing.T, name string, got, wantMin, wantMax int) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got < wantMin || got > wantMax {
			t.Errorf("got %d; want [%d,%d]", got, wantMin, wantMax)
		}
	})
}

// AssertDeepEqual compares got and want with go-cmp and reports the diff.
func AssertDeepEqual(t *testing.T, name string, got, want interface{}, opts ...cmp.Option) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if diff := cmp.Diff(want, got, opts...); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}
