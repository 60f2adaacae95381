package common

import "github.com/jakecoffman/cp"

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// BB converts the rectangle to a Chipmunk bounding box. Screen y grows down,
// so B holds the top edge and T the bottom edge; the overlap test does not
// care which way the axis points.
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
}

// Intersects reports whether the rectangles overlap on both axes. Touching
// edges count as overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.BB().Intersects(other.BB())
}

func (r Rect) Right() float64 { return r.X + r.Width }
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }
