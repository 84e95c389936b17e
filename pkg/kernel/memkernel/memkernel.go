// Package memkernel is a small in-memory geometry kernel. Curves are
// polylines, faces are planar polygons and solids are face sets; booleans
// group their operands instead of trimming them.
package memkernel

import (
	"fmt"
	"math"

	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
)

// Kernel implements kernel.Kernel in memory
type Kernel struct {
	tolerance float64 // Coincidence tolerance for joints and planarity
	segments  int     // Tessellation of full circles and ellipses
	stepDeg   float64 // Angular step for revolved bodies
}

// Option configures a Kernel
type Option func(*Kernel)

// WithTolerance sets the coincidence tolerance
func WithTolerance(tol float64) Option {
	return func(k *Kernel) { k.tolerance = tol }
}

// WithSegments sets the number of segments used for full curves
func WithSegments(n int) Option {
	return func(k *Kernel) { k.segments = n }
}

// New creates a kernel with default tolerances
func New(opts ...Option) *Kernel {
	k := &Kernel{
		tolerance: 1e-6,
		segments:  geometry.DefaultSegments,
		stepDeg:   10,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

var _ kernel.Kernel = (*Kernel)(nil)

func notDone(format string, args ...any) error {
	return fmt.Errorf("%w: %s", kernel.ErrNotDone, fmt.Sprintf(format, args...))
}

// BuildEdge creates a straight edge
func (k *Kernel) BuildEdge(p1, p2 geometry.Vector3) (kernel.Shape, error) {
	if p1.Distance(p2) <= k.tolerance {
		return nil, notDone("edge endpoints coincide at %s", p1)
	}
	return &Edge{Points: []geometry.Vector3{p1, p2}}, nil
}

// BuildArc creates the shorter circular arc from start to end around center
func (k *Kernel) BuildArc(start, center, end geometry.Vector3) (kernel.Shape, error) {
	points, err := geometry.SampleArc(start, center, end, k.segments/4)
	if err != nil {
		return nil, notDone("arc: %v", err)
	}
	return &Edge{Points: points}, nil
}

// BuildCircle creates a closed circular edge
func (k *Kernel) BuildCircle(center, normal geometry.Vector3, radius float64) (kernel.Shape, error) {
	if radius <= k.tolerance {
		return nil, notDone("circle radius %.6f too small", radius)
	}
	if normal.Length() < k.tolerance {
		return nil, notDone("circle normal is zero")
	}
	return &Edge{Points: geometry.SampleCircle(center, normal, radius, k.segments)}, nil
}

// BuildEllipse creates a closed elliptical edge
func (k *Kernel) BuildEllipse(center, uDir, vDir geometry.Vector3, radiusU, radiusV float64) (kernel.Shape, error) {
	if radiusU <= k.tolerance || radiusV <= k.tolerance {
		return nil, notDone("ellipse radii %.6f, %.6f too small", radiusU, radiusV)
	}
	u := uDir.Normalize()
	v := vDir.Normalize()
	if u.Length() == 0 || v.Length() == 0 || math.Abs(u.Dot(v)) > 1e-6 {
		return nil, notDone("ellipse axes must be orthogonal")
	}
	return &Edge{Points: geometry.SampleEllipse(center, u, v, radiusU, radiusV, k.segments)}, nil
}

// BuildWire chains edges in the given order, flipping an edge when its end
// touches the running end of the chain
func (k *Kernel) BuildWire(shapes []kernel.Shape) (kernel.Shape, error) {
	var chain []*Edge
	for _, s := range shapes {
		switch v := s.(type) {
		case *Edge:
			chain = append(chain, v)
		case *Wire:
			chain = append(chain, v.Edges...)
		default:
			return nil, notDone("wire input must be edges, got %T", s)
		}
	}
	if len(chain) == 0 {
		return nil, notDone("wire needs at least one edge")
	}

	if len(chain) > 1 {
		first, second := chain[0], chain[1]
		if !k.touches(first.End(), second) && k.touches(first.Start(), second) {
			chain[0] = first.reversed()
		}
	}

	wire := &Wire{Edges: []*Edge{chain[0]}}
	for i, e := range chain[1:] {
		end := wire.Edges[len(wire.Edges)-1].End()
		switch {
		case e.Start().NearlyEqual(end, k.tolerance):
			wire.Edges = append(wire.Edges, e)
		case e.End().NearlyEqual(end, k.tolerance):
			wire.Edges = append(wire.Edges, e.reversed())
		default:
			return nil, notDone("edge %d does not connect to %s", i+1, end)
		}
	}
	return wire, nil
}

func (k *Kernel) touches(p geometry.Vector3, e *Edge) bool {
	return e.Start().NearlyEqual(p, k.tolerance) || e.End().NearlyEqual(p, k.tolerance)
}

// BuildFace creates a planar face bounded by a closed wire or closed edge
func (k *Kernel) BuildFace(s kernel.Shape) (kernel.Shape, error) {
	var wire *Wire
	switch v := s.(type) {
	case *Wire:
		wire = v
	case *Edge:
		wire = &Wire{Edges: []*Edge{v}}
	case *Face:
		return v, nil
	default:
		return nil, notDone("face boundary must be a wire, got %T", s)
	}
	if !wire.Closed(k.tolerance) {
		return nil, notDone("face boundary is not closed")
	}

	points := wire.Points()
	loop := points[:len(points)-1]
	face := newFace(loop)
	if face == nil {
		return nil, notDone("face boundary has no area")
	}
	plane := face.Plane()
	for _, p := range loop {
		if math.Abs(plane.SignedDistance(p)) > k.tolerance*math.Max(1, plane.Origin.Length()) {
			return nil, notDone("face boundary is not planar")
		}
	}
	return face, nil
}

// Extrude sweeps a face along v into a prism
func (k *Kernel) Extrude(s kernel.Shape, v geometry.Vector3) (kernel.Shape, error) {
	face, ok := s.(*Face)
	if !ok {
		return nil, notDone("extrude needs a face, got %T", s)
	}
	if v.Length() <= k.tolerance {
		return nil, notDone("extrusion vector is zero")
	}
	if math.Abs(v.Normalize().Dot(face.Normal)) < 1e-9 {
		return nil, notDone("extrusion vector lies in the face plane")
	}

	n := len(face.Loop)
	bottom := make([]geometry.Vector3, n)
	top := make([]geometry.Vector3, n)
	for i, p := range face.Loop {
		bottom[n-1-i] = p
		top[i] = p.Add(v)
	}

	solid := &Solid{}
	if f := newFace(bottom); f != nil {
		solid.Faces = append(solid.Faces, f)
	}
	if f := newFace(top); f != nil {
		solid.Faces = append(solid.Faces, f)
	}
	for i := 0; i < n; i++ {
		a := face.Loop[i]
		b := face.Loop[(i+1)%n]
		if f := newFace([]geometry.Vector3{a, b, b.Add(v), a.Add(v)}); f != nil {
			solid.Faces = append(solid.Faces, f)
		}
	}
	return solid, nil
}

// Revolve sweeps a face about axis by angleDeg degrees
func (k *Kernel) Revolve(s kernel.Shape, axis geometry.Axis, angleDeg float64) (kernel.Shape, error) {
	face, ok := s.(*Face)
	if !ok {
		return nil, notDone("revolve needs a face, got %T", s)
	}
	if angleDeg <= 0 || angleDeg > 360 {
		return nil, notDone("revolve angle %.3f out of range (0, 360]", angleDeg)
	}
	if axis.Direction.Length() <= k.tolerance {
		return nil, notDone("revolve axis has no direction")
	}
	if math.Abs(axis.Direction.Normalize().Dot(face.Normal)) > 1-1e-9 {
		return nil, notDone("revolve axis is perpendicular to the profile")
	}

	steps := int(math.Ceil(angleDeg / k.stepDeg))
	if steps < 3 {
		steps = 3
	}
	rings := make([][]geometry.Vector3, steps+1)
	for i := 0; i <= steps; i++ {
		rot := geometry.Rotation(axis, angleDeg*math.Pi/180*float64(i)/float64(steps))
		ring := make([]geometry.Vector3, len(face.Loop))
		for j, p := range face.Loop {
			ring[j] = rot.Apply(p)
		}
		rings[i] = ring
	}

	solid := &Solid{}
	n := len(face.Loop)
	for i := 0; i < steps; i++ {
		cur, next := rings[i], rings[i+1]
		for j := 0; j < n; j++ {
			a, b := cur[j], cur[(j+1)%n]
			c, d := next[(j+1)%n], next[j]
			if f := newFace([]geometry.Vector3{a, b, c}); f != nil {
				solid.Faces = append(solid.Faces, f)
			}
			if f := newFace([]geometry.Vector3{a, c, d}); f != nil {
				solid.Faces = append(solid.Faces, f)
			}
		}
	}
	if angleDeg < 360 {
		if f := newFace(rings[0]); f != nil {
			solid.Faces = append(solid.Faces, f)
		}
		if f := newFace(rings[steps]); f != nil {
			solid.Faces = append(solid.Faces, f)
		}
	}
	if len(solid.Faces) == 0 {
		return nil, notDone("revolved body has no faces")
	}
	return solid, nil
}

// Boolean groups two bodies. Cut and intersect need overlapping bounds,
// otherwise the result would be empty.
func (k *Kernel) Boolean(op kernel.BooleanOp, a, b kernel.Shape) (kernel.Shape, error) {
	if a == nil || b == nil || !a.Kind().IsBody() || !b.Kind().IsBody() {
		return nil, notDone("%s needs two solids", op)
	}
	if op != kernel.Union && !k.Bounds(a).Overlaps(k.Bounds(b)) {
		return nil, notDone("%s of disjoint bodies is empty", op)
	}
	return &Compound{Op: op, Parts: []kernel.Shape{a, b}}, nil
}

// Transform returns a moved copy of s
func (k *Kernel) Transform(s kernel.Shape, t geometry.Transform) (kernel.Shape, error) {
	if s == nil {
		return nil, notDone("transform of nil shape")
	}
	return mapPoints(s, t.Apply, t.ApplyVector), nil
}

// Vertices returns the corner points of s in order, without duplicates
func (k *Kernel) Vertices(s kernel.Shape) []geometry.Vector3 {
	var out []geometry.Vector3
	add := func(p geometry.Vector3) {
		for _, q := range out {
			if q.NearlyEqual(p, k.tolerance) {
				return
			}
		}
		out = append(out, p)
	}

	for _, e := range edges(s) {
		if e.Closed() {
			continue
		}
		add(e.Start())
		add(e.End())
	}
	for _, f := range faces(s) {
		for _, p := range f.Loop {
			add(p)
		}
	}
	return out
}

// FacePlane returns the plane of a face
func (k *Kernel) FacePlane(s kernel.Shape) (geometry.Plane, bool) {
	face, ok := s.(*Face)
	if !ok {
		return geometry.Plane{}, false
	}
	return face.Plane(), true
}

// Bounds returns the axis-aligned bounds of s
func (k *Kernel) Bounds(s kernel.Shape) geometry.BoundingBox {
	b := geometry.NewBoundingBox()
	for _, line := range k.Polylines(s) {
		for _, p := range line {
			b.Extend(p)
		}
	}
	return b
}

// Polylines returns line strips for display
func (k *Kernel) Polylines(s kernel.Shape) [][]geometry.Vector3 {
	var lines [][]geometry.Vector3
	for _, e := range edges(s) {
		lines = append(lines, e.Points)
	}
	for _, f := range faces(s) {
		loop := append(append([]geometry.Vector3{}, f.Loop...), f.Loop[0])
		lines = append(lines, loop)
	}
	return lines
}

// RayCast returns the nearest sub-shape of s hit by ray
func (k *Kernel) RayCast(s kernel.Shape, ray geometry.Ray, filter kernel.PickFilter, tolerance float64) (kernel.Hit, bool) {
	best := kernel.Hit{Distance: math.MaxFloat64}
	found := false

	if filter&kernel.PickEdge != 0 {
		for i, e := range edges(s) {
			for j := 0; j+1 < len(e.Points); j++ {
				t, dist := rayToSegment(ray, e.Points[j], e.Points[j+1])
				if dist <= tolerance && t < best.Distance {
					best = kernel.Hit{Sub: e, Index: i, Point: ray.At(t), Distance: t}
					found = true
				}
			}
		}
	}

	if filter&kernel.PickFace != 0 {
		for i, f := range faces(s) {
			t, ok := rayToFace(ray, f)
			if ok && t < best.Distance {
				best = kernel.Hit{Sub: f, Index: i, Point: ray.At(t), Distance: t}
				found = true
			}
		}
	}
	return best, found
}

// rayToSegment returns the ray parameter of the closest approach to segment
// ab and the distance at that point
func rayToSegment(ray geometry.Ray, a, b geometry.Vector3) (float64, float64) {
	d := ray.Direction
	e := b.Sub(a)
	w := ray.Origin.Sub(a)

	dd := d.Dot(d)
	ee := e.Dot(e)
	if ee < 1e-18 {
		t := math.Max(0, -w.Dot(d)/dd)
		return t, ray.At(t).Distance(a)
	}

	de := d.Dot(e)
	denom := dd*ee - de*de
	s := 0.0
	if denom > 1e-12 {
		s = (dd*e.Dot(w) - de*d.Dot(w)) / denom
	}
	s = clamp01(s)

	q := a.Add(e.Mul(s))
	t := math.Max(0, q.Sub(ray.Origin).Dot(d)/dd)
	s = clamp01(ray.At(t).Sub(a).Dot(e) / ee)
	q = a.Add(e.Mul(s))
	return t, ray.At(t).Distance(q)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// rayToFace intersects a ray with a planar polygon
func rayToFace(ray geometry.Ray, f *Face) (float64, bool) {
	denom := f.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	plane := f.Plane()
	t := -f.Normal.Dot(ray.Origin.Sub(plane.Origin)) / denom
	if t < 0 {
		return 0, false
	}

	px, py := plane.Coordinates(ray.At(t))
	inside := false
	n := len(f.Loop)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := plane.Coordinates(f.Loop[i])
		xj, yj := plane.Coordinates(f.Loop[j])
		if (yi > py) != (yj > py) && px < (xj-xi)*(py-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return t, inside
}
