package measurement

import "github.com/philipparndt/gosketch/pkg/geometry"

// Segment represents a single straight piece of a dimension drawing
type Segment struct {
	Start geometry.Vector3
	End   geometry.Vector3
}

// Arrow is an open arrowhead: two barbs meeting at Tip
type Arrow struct {
	Tip   geometry.Vector3
	Barb1 geometry.Vector3
	Barb2 geometry.Vector3
}

// Dimension is a linear distance annotation between two points
type Dimension struct {
	P1        geometry.Vector3 // First measured point
	P2        geometry.Vector3 // Second measured point
	Placement geometry.Vector3 // Point the offset line passes through
	Normal    geometry.Vector3 // Normal of the drawing plane
	Offset    float64          // Signed distance of the offset line from P1-P2
	Extension [2]Segment       // P1 and P2 to the offset line
	Line      Segment          // Offset line carrying the arrows
	Arrows    [2]Arrow
	Label     Label
}

// Step is the progress of the three click dimension protocol
type Step int

const (
	AwaitingFirst Step = iota
	AwaitingSecond
	AwaitingPlacement
)

func (s Step) String() string {
	switch s {
	case AwaitingFirst:
		return "awaiting first point"
	case AwaitingSecond:
		return "awaiting second point"
	case AwaitingPlacement:
		return "awaiting placement"
	default:
		return "unknown"
	}
}

// State holds the points picked so far
type State struct {
	Step   Step
	P1     geometry.Vector3
	P2     geometry.Vector3
	Normal geometry.Vector3 // Drawing plane normal, +Z when zero
}
