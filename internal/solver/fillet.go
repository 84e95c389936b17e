package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/gosketch/pkg/geometry"
)

const (
	// DefaultFilletRadius is the radius used until the user sets another one
	DefaultFilletRadius = 20.0
	// cornerTolerance decides whether two line ends form a shared corner
	cornerTolerance = 1e-4
)

var (
	ErrCollinear      = errors.New("lines are collinear")
	ErrZeroBisector   = errors.New("corner bisector has zero length")
	ErrNoCorner       = errors.New("lines do not meet")
	ErrInvalidRadius  = errors.New("fillet radius must be positive")
	ErrRadiusTooLarge = errors.New("fillet radius too large for the lines")
)

// FilletResult is the geometry of a rounded corner
type FilletResult struct {
	Corner   geometry.Vector3 // Point where the lines meet
	Center   geometry.Vector3 // Arc center
	Tangent1 geometry.Vector3 // Arc start on the first line
	Tangent2 geometry.Vector3 // Arc end on the second line
	Other1   geometry.Vector3 // Far end of the first line
	Other2   geometry.Vector3 // Far end of the second line
	Radius   float64
}

// Segments returns the trimmed lines other1→t1 and t2→other2
func (f FilletResult) Segments() (Segment, Segment) {
	return Segment{Start: f.Other1, End: f.Tangent1}, Segment{Start: f.Tangent2, End: f.Other2}
}

// Fillet rounds the corner between a and b with an arc of radius. The
// corner is a shared endpoint, or else the intersection of the two lines.
func Fillet(a, b Segment, radius float64) (FilletResult, error) {
	if radius <= 0 {
		return FilletResult{}, ErrInvalidRadius
	}

	corner, other1, other2, err := findCorner(a, b)
	if err != nil {
		return FilletResult{}, err
	}

	v1 := other1.Sub(corner).Normalize()
	v2 := other2.Sub(corner).Normalize()
	if v1.Cross(v2).Length() < 1e-9 {
		return FilletResult{}, ErrCollinear
	}
	bisector := v1.Add(v2)
	if bisector.Length() < 1e-9 {
		return FilletResult{}, ErrZeroBisector
	}

	theta := math.Acos(math.Max(-1, math.Min(1, v1.Dot(v2))))
	offset := radius / math.Tan(theta/2)
	if offset > corner.Distance(other1) || offset > corner.Distance(other2) {
		return FilletResult{}, fmt.Errorf("%w: needs %.3f along each line", ErrRadiusTooLarge, offset)
	}

	return FilletResult{
		Corner:   corner,
		Center:   corner.Add(bisector.Normalize().Mul(radius / math.Sin(theta/2))),
		Tangent1: corner.Add(v1.Mul(offset)),
		Tangent2: corner.Add(v2.Mul(offset)),
		Other1:   other1,
		Other2:   other2,
		Radius:   radius,
	}, nil
}

func findCorner(a, b Segment) (corner, other1, other2 geometry.Vector3, err error) {
	aEnds := [2]geometry.Vector3{a.Start, a.End}
	bEnds := [2]geometry.Vector3{b.Start, b.End}
	for i, pa := range aEnds {
		for j, pb := range bEnds {
			if pa.Distance(pb) < cornerTolerance {
				return pa, aEnds[1-i], bEnds[1-j], nil
			}
		}
	}

	ta, _, ok := lineIntersection(a, b, 1e-6)
	if !ok {
		if a.End.Sub(a.Start).Cross(b.End.Sub(b.Start)).Length() < 1e-12 {
			return corner, other1, other2, ErrCollinear
		}
		return corner, other1, other2, ErrNoCorner
	}
	corner = a.At(ta)
	other1 = farther(corner, a)
	other2 = farther(corner, b)
	return corner, other1, other2, nil
}

func farther(p geometry.Vector3, s Segment) geometry.Vector3 {
	if p.Distance(s.Start) > p.Distance(s.End) {
		return s.Start
	}
	return s.End
}
