package solver

import (
	"errors"
	"math"
)

// ErrNoIntersection is returned when nothing cuts the trimmed segment
var ErrNoIntersection = errors.New("segment has no intersection to trim at")

// Trim cuts seg at the intersection with cutters nearest the click
// parameter and drops the piece containing the click. The remaining piece
// is returned.
func Trim(seg Segment, cutters []Segment, clickParam float64) (Segment, error) {
	const eps = 1e-9

	best := -1.0
	bestDist := math.MaxFloat64
	for _, c := range cutters {
		ts, tc, ok := lineIntersection(seg, c, 1e-6)
		if !ok {
			continue
		}
		if ts <= eps || ts >= 1-eps || tc < -eps || tc > 1+eps {
			continue
		}
		if d := math.Abs(ts - clickParam); d < bestDist {
			best, bestDist = ts, d
		}
	}
	if best < 0 {
		return Segment{}, ErrNoIntersection
	}

	cut := seg.At(best)
	if clickParam < best {
		return Segment{Start: cut, End: seg.End}, nil
	}
	return Segment{Start: seg.Start, End: cut}, nil
}
