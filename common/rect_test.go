package common

import "testing"

func TestRectIntersects(t *testing.T) {
	cases := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlap", Rect{X: 0, Y: 0, Width: 10, Height: 10}, Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"touching_edges", Rect{X: 0, Y: 0, Width: 10, Height: 10}, Rect{X: 10, Y: 10, Width: 5, Height: 5}, true},
		{"disjoint_x", Rect{X: 0, Y: 0, Width: 10, Height: 10}, Rect{X: 1000, Y: 0, Width: 10, Height: 10}, false},
		{"disjoint_y", Rect{X: 0, Y: 0, Width: 10, Height: 10}, Rect{X: 0, Y: 20, Width: 10, Height: 10}, false},
		{"contained", Rect{X: 0, Y: 0, Width: 100, Height: 100}, Rect{X: 40, Y: 40, Width: 5, Height: 5}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Intersects(c.b); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
			if got := c.b.Intersects(c.a); got != c.want {
				t.Fatalf("reversed: expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 10) != 0 || Clamp(11, 0, 10) != 10 || Clamp(5, 0, 10) != 5 {
		t.Fatalf("Clamp out of range")
	}
}
