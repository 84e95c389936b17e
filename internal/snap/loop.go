package snap

import (
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/viewer"
)

// Loop tracks the lines drawn since the current chain began
type Loop struct {
	Handles    []viewer.Handle
	FirstPoint geometry.Vector3 // Start of the very first segment
	LastPoint  geometry.Vector3 // End of the most recent segment, possibly snapped
}

// Active reports whether the chain has at least one segment
func (l Loop) Active() bool {
	return len(l.Handles) > 0
}

// Len returns the number of segments in the chain
func (l Loop) Len() int {
	return len(l.Handles)
}

// Append adds a segment from start to end
func (l *Loop) Append(h viewer.Handle, start, end geometry.Vector3) {
	if !l.Active() {
		l.FirstPoint = start
	}
	l.Handles = append(l.Handles, h)
	l.LastPoint = end
}

// Reset forgets the chain
func (l *Loop) Reset() {
	l.Handles = nil
	l.FirstPoint = geometry.Vector3{}
	l.LastPoint = geometry.Vector3{}
}
