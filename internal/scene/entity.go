// Package scene keeps the persisted sketch entities and the kernel shapes
// they are displayed from.
package scene

import (
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"github.com/philipparndt/gosketch/pkg/viewer"
)

// Kind is the type of a sketch entity
type Kind int

const (
	Line Kind = iota
	Circle
	Ellipse
	Rectangle
	Arc
	Wire
	Solid
	Dimension
)

func (k Kind) String() string {
	switch k {
	case Line:
		return "line"
	case Circle:
		return "circle"
	case Ellipse:
		return "ellipse"
	case Rectangle:
		return "rectangle"
	case Arc:
		return "arc"
	case Wire:
		return "wire"
	case Solid:
		return "solid"
	case Dimension:
		return "dimension"
	default:
		return "unknown"
	}
}

// IsCurve reports whether entities of this kind are sketch curves that can
// be snapped to, trimmed and assembled into profiles
func (k Kind) IsCurve() bool {
	switch k {
	case Line, Circle, Ellipse, Rectangle, Arc, Wire:
		return true
	}
	return false
}

// Entity is a finalized shape in the scene
type Entity struct {
	Handle viewer.Handle
	Kind   Kind

	Points  []geometry.Vector3 // Line endpoints, rectangle corners, arc start/end, wire chain
	Center  geometry.Vector3   // Circle, ellipse and arc center
	Normal  geometry.Vector3   // Circle normal
	UDir    geometry.Vector3   // Ellipse first axis
	VDir    geometry.Vector3   // Ellipse second axis
	Radius  float64            // Circle radius
	RadiusU float64            // Ellipse radius along UDir
	RadiusV float64            // Ellipse radius along VDir
	Label   string             // Dimension text
	LabelAt geometry.Vector3   // Dimension text position

	LabelAngle float64 // Dimension text direction in degrees

	// Base is the shape the entity was built from, before Transform.
	// Shape is what is displayed.
	Base      kernel.Shape
	Shape     kernel.Shape
	Transform geometry.Transform
	Style     viewer.Style

	seq int
}

// Seq returns the creation order of the entity within its scene
func (e *Entity) Seq() int {
	return e.seq
}

// Endpoints returns the entity's open ends: the two ends of a line, an arc
// or an open wire. Closed curves and solids have none.
func (e *Entity) Endpoints() []geometry.Vector3 {
	switch e.Kind {
	case Line, Arc, Wire:
		if len(e.Points) < 2 {
			return nil
		}
		ends := []geometry.Vector3{e.Points[0], e.Points[len(e.Points)-1]}
		if ends[0].NearlyEqual(ends[1], 1e-9) {
			return nil
		}
		if e.Transform.IsIdentity(1e-12) {
			return ends
		}
		for i, p := range ends {
			ends[i] = e.Transform.Apply(p)
		}
		return ends
	}
	return nil
}

// NewLine creates a line entity
func NewLine(p1, p2 geometry.Vector3, shape kernel.Shape) *Entity {
	return &Entity{
		Kind:   Line,
		Points: []geometry.Vector3{p1, p2},
		Base:   shape,
		Shape:  shape,
		Style:  viewer.StyleSketch,
	}
}

// NewCircle creates a circle entity
func NewCircle(center, normal geometry.Vector3, radius float64, shape kernel.Shape) *Entity {
	return &Entity{
		Kind:   Circle,
		Center: center,
		Normal: normal,
		Radius: radius,
		Base:   shape,
		Shape:  shape,
		Style:  viewer.StyleSketch,
	}
}

// NewEllipse creates an ellipse entity
func NewEllipse(center, u, v geometry.Vector3, ru, rv float64, shape kernel.Shape) *Entity {
	return &Entity{
		Kind:    Ellipse,
		Center:  center,
		UDir:    u,
		VDir:    v,
		RadiusU: ru,
		RadiusV: rv,
		Base:    shape,
		Shape:   shape,
		Style:   viewer.StyleSketch,
	}
}

// NewRectangle creates a rectangle entity from four ordered corners
func NewRectangle(corners []geometry.Vector3, shape kernel.Shape) *Entity {
	return &Entity{
		Kind:   Rectangle,
		Points: corners,
		Base:   shape,
		Shape:  shape,
		Style:  viewer.StyleSketch,
	}
}

// NewShape creates an entity of the given kind from a kernel shape
func NewShape(kind Kind, shape kernel.Shape, style viewer.Style) *Entity {
	return &Entity{
		Kind:  kind,
		Base:  shape,
		Shape: shape,
		Style: style,
	}
}
