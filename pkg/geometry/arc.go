package geometry

import (
	"fmt"
	"math"
)

// DefaultSegments is the tessellation used for full circles and ellipses
const DefaultSegments = 48

// SampleCircle returns segments+1 points on a circle in the plane with the
// given normal; the first and last point coincide.
func SampleCircle(center, normal Vector3, radius float64, segments int) []Vector3 {
	u, v := NewPlane(center, normal).Axes()
	return SampleEllipse(center, u, v, radius, radius, segments)
}

// SampleEllipse returns segments+1 points on an ellipse spanned by the unit
// directions u and v; the first and last point coincide.
func SampleEllipse(center, u, v Vector3, radiusU, radiusV float64, segments int) []Vector3 {
	if segments < 3 {
		segments = DefaultSegments
	}
	points := make([]Vector3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		p := center.Add(u.Mul(radiusU * math.Cos(a))).Add(v.Mul(radiusV * math.Sin(a)))
		points = append(points, p)
	}
	return points
}

// ArcFit describes the circle an arc lies on
type ArcFit struct {
	Center Vector3 // Circle center
	Radius float64 // Circle radius
	Normal Vector3 // Rotation axis taking start towards end
	Sweep  float64 // Angle from start to end in radians, in (0, pi)
}

// FitArc validates an arc running from start to end around center.
// Both endpoints must lie at the same distance from the center and must not
// be collinear with it.
func FitArc(start, center, end Vector3) (*ArcFit, error) {
	r1 := start.Distance(center)
	r2 := end.Distance(center)
	if r1 < 1e-9 || r2 < 1e-9 {
		return nil, fmt.Errorf("arc endpoint coincides with center")
	}
	if math.Abs(r1-r2) > 1e-6*math.Max(1, r1) {
		return nil, fmt.Errorf("arc endpoints at different radii: %.6f and %.6f", r1, r2)
	}

	a := start.Sub(center).Normalize()
	b := end.Sub(center).Normalize()
	normal := a.Cross(b)
	if normal.Length() < 1e-9 {
		return nil, fmt.Errorf("arc endpoints are collinear with center")
	}

	sweep := math.Acos(math.Max(-1, math.Min(1, a.Dot(b))))
	return &ArcFit{
		Center: center,
		Radius: r1,
		Normal: normal.Normalize(),
		Sweep:  sweep,
	}, nil
}

// SampleArc returns segments+1 points from start to end along the shorter arc
func SampleArc(start, center, end Vector3, segments int) ([]Vector3, error) {
	fit, err := FitArc(start, center, end)
	if err != nil {
		return nil, err
	}
	if segments < 1 {
		segments = 16
	}

	points := make([]Vector3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		rot := Rotation(Axis{Origin: center, Direction: fit.Normal}, fit.Sweep*float64(i)/float64(segments))
		points = append(points, rot.Apply(start))
	}
	points[len(points)-1] = end
	return points, nil
}
