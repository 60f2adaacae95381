package common

import "github.com/jakecoffman/cp"

// Vector2 is a plain 2D value used for positions and velocities. Screen
// coordinates: x grows right, y grows down.
type Vector2 = cp.Vector

func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}
