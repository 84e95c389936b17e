package memkernel

import (
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
)

// Edge is a polyline curve. Circles and ellipses are closed edges whose
// first and last points coincide.
type Edge struct {
	Points []geometry.Vector3
}

func (e *Edge) Kind() kernel.ShapeKind { return kernel.KindEdge }

// Start returns the first point of the edge
func (e *Edge) Start() geometry.Vector3 { return e.Points[0] }

// End returns the last point of the edge
func (e *Edge) End() geometry.Vector3 { return e.Points[len(e.Points)-1] }

// Closed reports whether the edge is a closed curve
func (e *Edge) Closed() bool {
	return len(e.Points) > 2 && e.Start().NearlyEqual(e.End(), 1e-9)
}

func (e *Edge) reversed() *Edge {
	points := make([]geometry.Vector3, len(e.Points))
	for i, p := range e.Points {
		points[len(points)-1-i] = p
	}
	return &Edge{Points: points}
}

// Wire is a connected chain of edges, each starting where the previous ends
type Wire struct {
	Edges []*Edge
}

func (w *Wire) Kind() kernel.ShapeKind { return kernel.KindWire }

// Closed reports whether the chain returns to its starting point
func (w *Wire) Closed(tol float64) bool {
	if len(w.Edges) == 0 {
		return false
	}
	return w.Edges[0].Start().NearlyEqual(w.Edges[len(w.Edges)-1].End(), tol)
}

// Points returns the chain's points without duplicated joints
func (w *Wire) Points() []geometry.Vector3 {
	var points []geometry.Vector3
	for i, e := range w.Edges {
		start := 0
		if i > 0 {
			start = 1
		}
		points = append(points, e.Points[start:]...)
	}
	return points
}

// Face is a planar polygon bounded by Loop (no repeated closing point)
type Face struct {
	Loop   []geometry.Vector3
	Normal geometry.Vector3
}

func (f *Face) Kind() kernel.ShapeKind { return kernel.KindFace }

// Centroid returns the vertex average of the boundary
func (f *Face) Centroid() geometry.Vector3 {
	var sum geometry.Vector3
	for _, p := range f.Loop {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(f.Loop)))
}

// Plane returns the plane the face lies in
func (f *Face) Plane() geometry.Plane {
	return geometry.NewPlane(f.Centroid(), f.Normal)
}

// Solid is a closed set of faces
type Solid struct {
	Faces []*Face
}

func (s *Solid) Kind() kernel.ShapeKind { return kernel.KindSolid }

// Compound groups the operands of a boolean. The reference kernel does not
// trim bodies, it records which operation produced the group.
type Compound struct {
	Op    kernel.BooleanOp
	Parts []kernel.Shape
}

func (c *Compound) Kind() kernel.ShapeKind { return kernel.KindCompound }

// newellNormal computes the normal of a polygon; its length is twice the area
func newellNormal(loop []geometry.Vector3) geometry.Vector3 {
	var n geometry.Vector3
	for i := range loop {
		cur := loop[i]
		next := loop[(i+1)%len(loop)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n
}

// newFace builds a face from a polygon, or nil when it has no area
func newFace(loop []geometry.Vector3) *Face {
	if len(loop) < 3 {
		return nil
	}
	n := newellNormal(loop)
	if n.Length() < 1e-12 {
		return nil
	}
	return &Face{Loop: loop, Normal: n.Normalize()}
}

// faces flattens every face reachable from s
func faces(s kernel.Shape) []*Face {
	switch v := s.(type) {
	case *Face:
		return []*Face{v}
	case *Solid:
		return v.Faces
	case *Compound:
		var all []*Face
		for _, p := range v.Parts {
			all = append(all, faces(p)...)
		}
		return all
	}
	return nil
}

// edges flattens every edge reachable from s
func edges(s kernel.Shape) []*Edge {
	switch v := s.(type) {
	case *Edge:
		return []*Edge{v}
	case *Wire:
		return v.Edges
	case *Compound:
		var all []*Edge
		for _, p := range v.Parts {
			all = append(all, edges(p)...)
		}
		return all
	}
	return nil
}

// mapPoints returns a deep copy of s with every point passed through fn
func mapPoints(s kernel.Shape, point func(geometry.Vector3) geometry.Vector3, dir func(geometry.Vector3) geometry.Vector3) kernel.Shape {
	mapSlice := func(in []geometry.Vector3) []geometry.Vector3 {
		out := make([]geometry.Vector3, len(in))
		for i, p := range in {
			out[i] = point(p)
		}
		return out
	}
	mapFace := func(f *Face) *Face {
		return &Face{Loop: mapSlice(f.Loop), Normal: dir(f.Normal).Normalize()}
	}

	switch v := s.(type) {
	case *Edge:
		return &Edge{Points: mapSlice(v.Points)}
	case *Wire:
		w := &Wire{Edges: make([]*Edge, len(v.Edges))}
		for i, e := range v.Edges {
			w.Edges[i] = &Edge{Points: mapSlice(e.Points)}
		}
		return w
	case *Face:
		return mapFace(v)
	case *Solid:
		out := &Solid{Faces: make([]*Face, len(v.Faces))}
		for i, f := range v.Faces {
			out.Faces[i] = mapFace(f)
		}
		return out
	case *Compound:
		out := &Compound{Op: v.Op, Parts: make([]kernel.Shape, len(v.Parts))}
		for i, p := range v.Parts {
			out.Parts[i] = mapPoints(p, point, dir)
		}
		return out
	}
	return s
}
