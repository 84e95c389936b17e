package snap

import (
	"fmt"

	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/viewer"
)

// Segment is a straight piece of a chain
type Segment struct {
	Start  geometry.Vector3
	End    geometry.Vector3
	Source viewer.Handle // Zero for synthesized segments
}

func (s Segment) reversed() Segment {
	return Segment{Start: s.End, End: s.Start, Source: s.Source}
}

// OrderSegments chains segments starting with the first one, repeatedly
// taking the unused segment whose start or end touches the running end.
// Segments touching with their end are reversed.
func OrderSegments(segs []Segment, tol float64) ([]Segment, error) {
	if len(segs) == 0 {
		return nil, fmt.Errorf("%w: no segments", ErrLoopNotConnected)
	}
	chain, err := chainFrom(segs[0], segs[1:], tol)
	if err == nil {
		return chain, nil
	}
	// The first segment may have been drawn against the chain direction
	if chain, retry := chainFrom(segs[0].reversed(), segs[1:], tol); retry == nil {
		return chain, nil
	}
	return nil, err
}

func chainFrom(first Segment, rest []Segment, tol float64) ([]Segment, error) {
	chain := []Segment{first}
	used := make([]bool, len(rest))
	end := first.End

	for range rest {
		next := -1
		flip := false
		for i, s := range rest {
			if used[i] {
				continue
			}
			if s.Start.NearlyEqual(end, tol) {
				next = i
				break
			}
			if s.End.NearlyEqual(end, tol) {
				next, flip = i, true
				break
			}
		}
		if next < 0 {
			return nil, fmt.Errorf("%w: no segment continues at %s", ErrLoopNotConnected, end)
		}

		s := rest[next]
		if flip {
			s = s.reversed()
		}
		used[next] = true
		chain = append(chain, s)
		end = s.End
	}
	return chain, nil
}

// CloseChain appends a segment back to the chain start when the chain ends
// elsewhere
func CloseChain(chain []Segment, tol float64) []Segment {
	if len(chain) == 0 {
		return chain
	}
	first := chain[0].Start
	last := chain[len(chain)-1].End
	if last.NearlyEqual(first, tol) {
		return chain
	}
	return append(chain, Segment{Start: last, End: first})
}
