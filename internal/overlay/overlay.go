// Package overlay computes the transient preview drawn while a shape is
// being dragged out.
package overlay

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/viewer"
)

// Epsilon is the smallest accepted size of a preview
const Epsilon = 1e-9

// ErrDegenerate is returned when a drag yields no visible shape
var ErrDegenerate = errors.New("degenerate preview")

// Shape is the kind of preview
type Shape int

const (
	Line Shape = iota
	Circle
	Ellipse
	Rectangle
)

func (s Shape) String() string {
	switch s {
	case Line:
		return "line"
	case Circle:
		return "circle"
	case Ellipse:
		return "ellipse"
	case Rectangle:
		return "rectangle"
	default:
		return "unknown"
	}
}

// Space is the coordinate space a preview lives in
type Space int

const (
	// Screen previews use pixel coordinates with Y pointing up
	Screen Space = iota
	// Plane previews use world points on a construction plane
	Plane
)

func (s Space) String() string {
	if s == Plane {
		return "plane"
	}
	return "screen"
}

// Input is the drag a preview is computed from
type Input struct {
	StartPixel geometry.Pixel
	EndPixel   geometry.Pixel
	StartWorld geometry.Vector3 // Plane points, used when Plane is set
	EndWorld   geometry.Vector3
	Plane      *geometry.Plane
}

// Params describes a preview shape
type Params struct {
	Shape   Shape
	Space   Space
	Points  []geometry.Vector3 // Line endpoints or rectangle corners
	Center  geometry.Vector3
	Normal  geometry.Vector3
	UDir    geometry.Vector3
	VDir    geometry.Vector3
	Radius  float64 // Circle radius
	RadiusU float64 // Ellipse radius along UDir
	RadiusV float64 // Ellipse radius along VDir
}

// flip converts a window pixel to a point with Y pointing up
func flip(px geometry.Pixel, height int) geometry.Vector3 {
	return geometry.NewVector3(float64(px.X), float64(height-px.Y), 0)
}

// Compute returns the preview parameters of shape for a drag. height is the
// viewport height used to flip screen coordinates.
func Compute(shape Shape, in Input, height int) (Params, error) {
	p := Params{Shape: shape, Space: Screen}

	var start, end, normal, u, v geometry.Vector3
	if in.Plane != nil {
		p.Space = Plane
		start, end = in.StartWorld, in.EndWorld
		normal = in.Plane.Normal
		u, v = in.Plane.Axes()
	} else {
		start, end = flip(in.StartPixel, height), flip(in.EndPixel, height)
		normal = geometry.NewVector3(0, 0, 1)
		u, v = geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 1, 0)
	}
	p.Normal = normal

	d := end.Sub(start)
	du := d.Dot(u)
	dv := d.Dot(v)

	switch shape {
	case Line:
		if d.Length() < Epsilon {
			return Params{}, fmt.Errorf("%w: zero length line", ErrDegenerate)
		}
		p.Points = []geometry.Vector3{start, end}

	case Circle:
		p.Center = start
		p.Radius = start.Distance(end)
		if p.Radius < Epsilon {
			return Params{}, fmt.Errorf("%w: zero radius circle", ErrDegenerate)
		}
		p.UDir, p.VDir = u, v

	case Ellipse:
		p.RadiusU = math.Abs(du) / 2
		p.RadiusV = math.Abs(dv) / 2
		if p.RadiusU < Epsilon || p.RadiusV < Epsilon {
			return Params{}, fmt.Errorf("%w: ellipse radii %.3g, %.3g", ErrDegenerate, p.RadiusU, p.RadiusV)
		}
		p.Center = start.Add(u.Mul(du / 2)).Add(v.Mul(dv / 2))
		p.UDir, p.VDir = u, v

	case Rectangle:
		if math.Abs(du) < Epsilon || math.Abs(dv) < Epsilon {
			return Params{}, fmt.Errorf("%w: flat rectangle", ErrDegenerate)
		}
		su := u.Mul(du)
		sv := v.Mul(dv)
		p.Points = []geometry.Vector3{start, start.Add(su), start.Add(su).Add(sv), start.Add(sv)}

	default:
		return Params{}, fmt.Errorf("unknown preview shape %d", shape)
	}
	return p, nil
}

// Overlay converts the parameters to a displayable overlay
func (p Params) Overlay(style viewer.Style) viewer.Overlay {
	o := viewer.Overlay{
		Billboard: p.Space == Screen,
		Style:     style,
	}
	switch p.Shape {
	case Circle:
		o.Kind = viewer.OverlayCircle
		o.Center = p.Center
		o.UDir, o.VDir = p.UDir, p.VDir
		o.RadiusU, o.RadiusV = p.Radius, p.Radius
	case Ellipse:
		o.Kind = viewer.OverlayEllipse
		o.Center = p.Center
		o.UDir, o.VDir = p.UDir, p.VDir
		o.RadiusU, o.RadiusV = p.RadiusU, p.RadiusV
	default:
		o.Kind = viewer.OverlayPolyline
		o.Points = p.Points
		o.Closed = p.Shape == Rectangle
	}
	return o
}
