package measurement

import (
	"fmt"
	"math"

	"github.com/philipparndt/gosketch/pkg/geometry"
)

// labelLift raises the label off the drawing plane so it is not hidden by
// the lines
const labelLift = 0.1

// Label is the text of a dimension and where to draw it
type Label struct {
	Text     string
	Position geometry.Vector3
	Angle    float64 // Text direction in degrees, counter-clockwise from +X
}

// FormatDistance renders a distance the way dimensions show it
func FormatDistance(d float64) string {
	return fmt.Sprintf("%.2f", d)
}

func newLabel(p1, p2, lineStart, lineEnd, normal geometry.Vector3) Label {
	dir := p2.Sub(p1)
	return Label{
		Text:     FormatDistance(p1.Distance(p2)),
		Position: lineStart.Midpoint(lineEnd).Add(normal.Mul(labelLift)),
		Angle:    math.Atan2(dir.Y, dir.X) * 180 / math.Pi,
	}
}
