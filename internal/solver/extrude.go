package solver

import "github.com/philipparndt/gosketch/pkg/geometry"

// DefaultRevolveAngle is the revolve sweep in degrees used until the user
// sets another one
const DefaultRevolveAngle = 360.0

// ExtrudeHeight maps a vertical drag in pixels to an extrusion height.
// Dragging up (negative dy) extrudes along the normal of world aligned
// planes; on other faces the sign follows dy.
func ExtrudeHeight(dy float64, normal geometry.Vector3) float64 {
	if geometry.NewPlane(geometry.Vector3{}, normal).IsWorldAligned() {
		return -dy
	}
	return dy
}

// ExtrudeVector returns the extrusion vector for height along normal
func ExtrudeVector(height float64, normal geometry.Vector3) geometry.Vector3 {
	return normal.Normalize().Mul(height)
}
