package bbox

import (
	"image"
	"testing"
)

func TestOverlaps(t *testing.T) {
	for _, tc := range []struct {
		name string
		a, b Box
		want bool
	}{
		{"shared corner pixel", New(0, 0, 2, 2), New(2, 2, 3, 3), true},
		{"nested", New(0, 0, 10, 10), New(3, 3, 4, 4), true},
		{"touching edges only", New(0, 0, 2, 2), New(0, 3, 2, 5), false},
		{"disjoint", New(0, 0, 2, 2), New(10, 10, 11, 11), false},
		{"vertical strip through", New(0, 5, 20, 5), New(10, 0, 10, 20), true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.want {
				t.Errorf("%v.Overlaps(%v) = %v; want %v", tc.a, tc.b, got, tc.want)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.want {
				t.Errorf("%v.Overlaps(%v) = %v; want %v", tc.b, tc.a, got, tc.want)
			}
		})
	}
}

func TestUnionAndExtend(t *testing.T) {
	if got, want := New(0, 0, 2, 2).Union(New(1, 1, 3, 3)), New(0, 0, 3, 3); got != want {
		t.Errorf("union got %v; want %v", got, want)
	}
	if got, want := Point(4, 7).Extend(2, 9), New(7, 2, 9, 4); got != want {
		t.Errorf("extend got %v; want %v", got, want)
	}
}

func TestRectConversion(t *testing.T) {
	b := New(1, 2, 3, 5)
	r := b.Rect()
	if r != image.Rect(2, 1, 6, 4) {
		t.Errorf("got %v; want (2,1)-(6,4)", r)
	}
	if got := FromRect(r); got != b {
		t.Errorf("round trip got %v; want %v", got, b)
	}
	if b.Width() != 4 || b.Height() != 3 {
		t.Errorf("got %dx%d; want 4x3", b.Width(), b.Height())
	}
	y, x := b.Centroid()
	if y != 2 || x != 3.5 {
		t.Errorf("centroid got (%g, %g); want (2, 3.5)", y, x)
	}
}
