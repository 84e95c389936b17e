// Package kernel defines the narrow boundary between the sketch session and
// the geometry kernel that builds edges, wires, faces and solids.
package kernel

import (
	"errors"

	"github.com/philipparndt/gosketch/pkg/geometry"
)

// ErrNotDone is wrapped by every failed kernel operation
var ErrNotDone = errors.New("kernel operation not done")

// ShapeKind classifies a shape
type ShapeKind int

const (
	KindEdge ShapeKind = iota
	KindWire
	KindFace
	KindSolid
	KindCompound
)

func (k ShapeKind) String() string {
	switch k {
	case KindEdge:
		return "edge"
	case KindWire:
		return "wire"
	case KindFace:
		return "face"
	case KindSolid:
		return "solid"
	case KindCompound:
		return "compound"
	default:
		return "unknown"
	}
}

// IsBody reports whether shapes of this kind can take part in booleans
func (k ShapeKind) IsBody() bool {
	return k == KindSolid || k == KindCompound
}

// Shape is an opaque handle to kernel geometry
type Shape interface {
	Kind() ShapeKind
}

// BooleanOp selects a boolean combination
type BooleanOp int

const (
	Union BooleanOp = iota
	Cut
	Intersect
)

func (op BooleanOp) String() string {
	switch op {
	case Union:
		return "union"
	case Cut:
		return "cut"
	case Intersect:
		return "intersect"
	default:
		return "unknown"
	}
}

// PickFilter restricts which sub-shapes a pick may return
type PickFilter int

const (
	PickEdge PickFilter = 1 << iota
	PickFace

	PickAny = PickEdge | PickFace
)

// Accepts reports whether a sub-shape of kind k passes the filter
func (f PickFilter) Accepts(k ShapeKind) bool {
	switch k {
	case KindEdge, KindWire:
		return f&PickEdge != 0
	case KindFace, KindSolid, KindCompound:
		return f&PickFace != 0
	}
	return false
}

// Hit is the result of casting a ray against a shape
type Hit struct {
	Sub      Shape            // Detected sub-shape (edge or face)
	Index    int              // Index of Sub within its owner, stable across picks
	Point    geometry.Vector3 // World point on the sub-shape
	Distance float64          // Ray parameter of Point
}

// Kernel builds and queries geometry. Every constructor either returns a
// usable shape or an error wrapping ErrNotDone.
type Kernel interface {
	BuildEdge(p1, p2 geometry.Vector3) (Shape, error)
	BuildArc(start, center, end geometry.Vector3) (Shape, error)
	BuildCircle(center, normal geometry.Vector3, radius float64) (Shape, error)
	BuildEllipse(center, uDir, vDir geometry.Vector3, radiusU, radiusV float64) (Shape, error)
	BuildWire(edges []Shape) (Shape, error)
	BuildFace(wire Shape) (Shape, error)
	Extrude(face Shape, v geometry.Vector3) (Shape, error)
	Revolve(face Shape, axis geometry.Axis, angleDeg float64) (Shape, error)
	Boolean(op BooleanOp, a, b Shape) (Shape, error)
	Transform(s Shape, t geometry.Transform) (Shape, error)

	// Vertices returns the corner points of a shape; closed curves have none.
	Vertices(s Shape) []geometry.Vector3
	// FacePlane returns the plane of a planar face.
	FacePlane(face Shape) (geometry.Plane, bool)
	Bounds(s Shape) geometry.BoundingBox
	// Polylines tessellates a shape into line strips for display.
	Polylines(s Shape) [][]geometry.Vector3
	// RayCast intersects a ray with the sub-shapes accepted by filter. Edges
	// count as hit within tolerance world units of the ray.
	RayCast(s Shape, ray geometry.Ray, filter PickFilter, tolerance float64) (Hit, bool)
}
