package solver

import (
	"math"

	"github.com/philipparndt/gosketch/pkg/geometry"
)

// Segment is a straight line piece
type Segment struct {
	Start geometry.Vector3
	End   geometry.Vector3
}

// Length returns the distance between the ends
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// At returns the point at parameter t, 0 at Start and 1 at End
func (s Segment) At(t float64) geometry.Vector3 {
	return s.Start.Lerp(s.End, t)
}

// Param returns the parameter of the point on the infinite line closest to p
func (s Segment) Param(p geometry.Vector3) float64 {
	d := s.End.Sub(s.Start)
	l2 := d.Dot(d)
	if l2 == 0 {
		return 0
	}
	return p.Sub(s.Start).Dot(d) / l2
}

// lineIntersection returns the parameters where the infinite lines through
// a and b meet. It reports false for parallel or skew lines.
func lineIntersection(a, b Segment, tol float64) (ta, tb float64, ok bool) {
	d1 := a.End.Sub(a.Start)
	d2 := b.End.Sub(b.Start)
	r := a.Start.Sub(b.Start)

	aa := d1.Dot(d1)
	ee := d2.Dot(d2)
	bb := d1.Dot(d2)
	c := d1.Dot(r)
	f := d2.Dot(r)
	denom := aa*ee - bb*bb
	if aa == 0 || ee == 0 || math.Abs(denom) < 1e-12*aa*ee {
		return 0, 0, false
	}

	ta = (bb*f - c*ee) / denom
	tb = (aa*f - bb*c) / denom
	if a.At(ta).Distance(b.At(tb)) > tol {
		return 0, 0, false
	}
	return ta, tb, true
}
