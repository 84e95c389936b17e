package solver

import (
	"math"

	"github.com/philipparndt/gosketch/pkg/geometry"
)

const (
	// MinMove is the smallest translation applied by the move tool
	MinMove = 1e-6
	// RotateDegreesPerPixel is the rotate tool's drag sensitivity
	RotateDegreesPerPixel = 0.5
)

// MoveDelta returns the translation between two world points. Tiny moves
// report false and should be ignored.
func MoveDelta(from, to geometry.Vector3) (geometry.Vector3, bool) {
	d := to.Sub(from)
	if d.Length() < MinMove {
		return geometry.Vector3{}, false
	}
	return d, true
}

// RotateIncrement returns the rotation for a drag of (dx, dy) pixels:
// vertical movement turns about world X, horizontal movement about world Z,
// both through center
func RotateIncrement(dx, dy float64, center geometry.Vector3) geometry.Transform {
	toRad := math.Pi / 180
	rx := geometry.Rotation(geometry.Axis{Origin: center, Direction: geometry.NewVector3(1, 0, 0)}, dy*RotateDegreesPerPixel*toRad)
	rz := geometry.Rotation(geometry.Axis{Origin: center, Direction: geometry.NewVector3(0, 0, 1)}, dx*RotateDegreesPerPixel*toRad)
	return rz.Mul(rx)
}
