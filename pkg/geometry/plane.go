package geometry

import "math"

// Plane is an infinite plane through Origin with unit Normal
type Plane struct {
	Origin Vector3
	Normal Vector3
}

// NewPlane creates a plane, normalizing the normal
func NewPlane(origin, normal Vector3) Plane {
	return Plane{Origin: origin, Normal: normal.Normalize()}
}

// XYPlane is the world plane Z = 0
var XYPlane = Plane{Normal: Vector3{Z: 1}}

// Axes returns two orthonormal in-plane directions u and v with u x v = Normal.
// For the world planes u and v are the remaining world axes in XYZ order.
func (p Plane) Axes() (u, v Vector3) {
	n := p.Normal.Normalize()
	ref := Vector3{X: 1}
	if math.Abs(n.X) > 0.9 {
		ref = Vector3{Y: 1}
	}
	u = ref.Sub(n.Mul(ref.Dot(n))).Normalize()
	v = n.Cross(u)
	return u, v
}

// IsWorldAligned reports whether the normal is parallel to one of the world axes
func (p Plane) IsWorldAligned() bool {
	const tol = 1e-9
	n := p.Normal.Normalize()
	return math.Abs(math.Abs(n.X)-1) < tol ||
		math.Abs(math.Abs(n.Y)-1) < tol ||
		math.Abs(math.Abs(n.Z)-1) < tol
}

// SignedDistance returns the distance of point from the plane along the normal
func (p Plane) SignedDistance(point Vector3) float64 {
	return point.Sub(p.Origin).Dot(p.Normal)
}

// Coordinates returns the (u, v) position of point in the plane's frame
func (p Plane) Coordinates(point Vector3) (float64, float64) {
	u, v := p.Axes()
	d := point.Sub(p.Origin)
	return d.Dot(u), d.Dot(v)
}

// Axis is a directed line in space, used for revolve axes and rotations
type Axis struct {
	Origin    Vector3
	Direction Vector3
}

// Ray is a half line starting at Origin
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
