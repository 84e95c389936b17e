package measurement

import (
	"errors"

	"github.com/philipparndt/gosketch/pkg/geometry"
)

const (
	// ArrowLength is the length of an arrowhead along the offset line
	ArrowLength = 2.5
	minLength   = 1e-6
)

// ErrCoincident is returned when both measured points are the same
var ErrCoincident = errors.New("dimension points coincide")

// Compute lays out a dimension from p1 to p2 whose offset line passes
// through placement. normal is the drawing plane normal.
func Compute(p1, p2, placement, normal geometry.Vector3) (Dimension, error) {
	edge := p2.Sub(p1)
	if edge.Length() < minLength {
		return Dimension{}, ErrCoincident
	}
	if normal.Length() < minLength {
		normal = geometry.NewVector3(0, 0, 1)
	}
	normal = normal.Normalize()
	edge = edge.Normalize()

	perp := normal.Cross(edge).Normalize()
	offset := placement.Sub(p1).Dot(perp)
	a1 := p1.Add(perp.Mul(offset))
	a2 := p2.Add(perp.Mul(offset))

	return Dimension{
		P1:        p1,
		P2:        p2,
		Placement: placement,
		Normal:    normal,
		Offset:    offset,
		Extension: [2]Segment{{Start: p1, End: a1}, {Start: p2, End: a2}},
		Line:      Segment{Start: a1, End: a2},
		Arrows:    [2]Arrow{arrow(a1, edge.Negate(), normal), arrow(a2, edge, normal)},
		Label:     newLabel(p1, p2, a1, a2, normal),
	}, nil
}

// arrow builds an arrowhead at tip pointing along direction
func arrow(tip, direction, normal geometry.Vector3) Arrow {
	dir := direction.Normalize().Mul(ArrowLength)
	side := normal.Cross(dir).Mul(ArrowLength / 2)
	back := tip.Sub(dir)
	return Arrow{Tip: tip, Barb1: back.Add(side), Barb2: back.Sub(side)}
}

// Value returns the measured distance
func (d Dimension) Value() float64 {
	return d.P1.Distance(d.P2)
}

// Path returns the dimension drawing as one connected polyline: extension
// line, both arrows on the offset line, back down the second extension line.
// Zero length extension lines are skipped.
func (d Dimension) Path() []geometry.Vector3 {
	var path []geometry.Vector3
	add := func(p geometry.Vector3) {
		if n := len(path); n > 0 && path[n-1].NearlyEqual(p, minLength) {
			return
		}
		path = append(path, p)
	}

	a1, a2 := d.Line.Start, d.Line.End
	add(d.P1)
	add(a1)
	add(d.Arrows[0].Barb1)
	add(a1)
	add(d.Arrows[0].Barb2)
	add(a1)
	add(a2)
	add(d.Arrows[1].Barb1)
	add(a2)
	add(d.Arrows[1].Barb2)
	add(a2)
	add(d.P2)
	return path
}

// Click feeds the next picked point into the three click protocol. It
// returns the finished dimension after the placement click and resets.
func (s *State) Click(p geometry.Vector3) (Dimension, bool, error) {
	switch s.Step {
	case AwaitingFirst:
		s.P1 = p
		s.Step = AwaitingSecond
	case AwaitingSecond:
		if p.Distance(s.P1) < minLength {
			return Dimension{}, false, ErrCoincident
		}
		s.P2 = p
		s.Step = AwaitingPlacement
	case AwaitingPlacement:
		d, err := Compute(s.P1, s.P2, p, s.Normal)
		if err != nil {
			return Dimension{}, false, err
		}
		s.Reset()
		return d, true, nil
	}
	return Dimension{}, false, nil
}

// Preview lays out the dimension for a cursor position while waiting for
// the placement click
func (s *State) Preview(cursor geometry.Vector3) (Dimension, bool) {
	if s.Step != AwaitingPlacement {
		return Dimension{}, false
	}
	d, err := Compute(s.P1, s.P2, cursor, s.Normal)
	return d, err == nil
}

// Reset returns to waiting for the first point
func (s *State) Reset() {
	normal := s.Normal
	*s = State{Normal: normal}
}
