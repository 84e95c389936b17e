package memkernel

import (
	"math"
	"testing"

	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(x, y, z float64) geometry.Vector3 { return geometry.NewVector3(x, y, z) }

func square(t *testing.T, k *Kernel, size float64) kernel.Shape {
	t.Helper()
	corners := []geometry.Vector3{v(0, 0, 0), v(size, 0, 0), v(size, size, 0), v(0, size, 0)}
	var edges []kernel.Shape
	for i := range corners {
		e, err := k.BuildEdge(corners[i], corners[(i+1)%4])
		require.NoError(t, err)
		edges = append(edges, e)
	}
	wire, err := k.BuildWire(edges)
	require.NoError(t, err)
	face, err := k.BuildFace(wire)
	require.NoError(t, err)
	return face
}

func TestBuildEdgeRejectsCoincidentPoints(t *testing.T) {
	k := New()
	_, err := k.BuildEdge(v(1, 1, 0), v(1, 1, 0))
	assert.ErrorIs(t, err, kernel.ErrNotDone)

	e, err := k.BuildEdge(v(0, 0, 0), v(10, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, kernel.KindEdge, e.Kind())
	assert.Len(t, k.Vertices(e), 2)
}

func TestBuildWireFlipsEdges(t *testing.T) {
	k := New()
	a, _ := k.BuildEdge(v(10, 0, 0), v(0, 0, 0))
	b, _ := k.BuildEdge(v(10, 10, 0), v(10, 0, 0))
	wire, err := k.BuildWire([]kernel.Shape{a, b})
	require.NoError(t, err)

	points := wire.(*Wire).Points()
	require.Len(t, points, 3)
	assert.True(t, points[0].NearlyEqual(v(0, 0, 0), 1e-9))
	assert.True(t, points[1].NearlyEqual(v(10, 0, 0), 1e-9))
	assert.True(t, points[2].NearlyEqual(v(10, 10, 0), 1e-9))
}

func TestBuildWireRejectsGaps(t *testing.T) {
	k := New()
	a, _ := k.BuildEdge(v(0, 0, 0), v(10, 0, 0))
	b, _ := k.BuildEdge(v(20, 0, 0), v(30, 0, 0))
	_, err := k.BuildWire([]kernel.Shape{a, b})
	assert.ErrorIs(t, err, kernel.ErrNotDone)

	_, err = k.BuildWire(nil)
	assert.ErrorIs(t, err, kernel.ErrNotDone)
}

func TestBuildFace(t *testing.T) {
	k := New()
	face := square(t, k, 10)
	plane, ok := k.FacePlane(face)
	require.True(t, ok)
	assert.InDelta(t, 1, math.Abs(plane.Normal.Z), 1e-9)
	assert.Len(t, k.Vertices(face), 4)

	open, _ := k.BuildEdge(v(0, 0, 0), v(10, 0, 0))
	wire, _ := k.BuildWire([]kernel.Shape{open})
	_, err := k.BuildFace(wire)
	assert.ErrorIs(t, err, kernel.ErrNotDone)
}

func TestBuildFaceRejectsNonPlanar(t *testing.T) {
	k := New()
	pts := []geometry.Vector3{v(0, 0, 0), v(10, 0, 0), v(10, 10, 5), v(0, 10, 0)}
	var edges []kernel.Shape
	for i := range pts {
		e, err := k.BuildEdge(pts[i], pts[(i+1)%4])
		require.NoError(t, err)
		edges = append(edges, e)
	}
	wire, err := k.BuildWire(edges)
	require.NoError(t, err)
	_, err = k.BuildFace(wire)
	assert.ErrorIs(t, err, kernel.ErrNotDone)
}

func TestCircleFace(t *testing.T) {
	k := New()
	c, err := k.BuildCircle(v(0, 0, 0), v(0, 0, 1), 5)
	require.NoError(t, err)
	assert.Empty(t, k.Vertices(c))

	face, err := k.BuildFace(c)
	require.NoError(t, err)
	b := k.Bounds(face)
	assert.InDelta(t, 10, b.Size().X, 1e-6)

	_, err = k.BuildCircle(v(0, 0, 0), v(0, 0, 1), 0)
	assert.ErrorIs(t, err, kernel.ErrNotDone)
}

func TestEllipseNeedsOrthogonalAxes(t *testing.T) {
	k := New()
	_, err := k.BuildEllipse(v(0, 0, 0), v(1, 0, 0), v(1, 1, 0), 4, 2)
	assert.ErrorIs(t, err, kernel.ErrNotDone)

	e, err := k.BuildEllipse(v(0, 0, 0), v(1, 0, 0), v(0, 1, 0), 4, 2)
	require.NoError(t, err)
	b := k.Bounds(e)
	assert.InDelta(t, 8, b.Size().X, 1e-6)
	assert.InDelta(t, 4, b.Size().Y, 1e-6)
}

func TestBuildArc(t *testing.T) {
	k := New()
	arc, err := k.BuildArc(v(10, 0, 0), v(0, 0, 0), v(0, 10, 0))
	require.NoError(t, err)
	verts := k.Vertices(arc)
	require.Len(t, verts, 2)
	assert.True(t, verts[1].NearlyEqual(v(0, 10, 0), 1e-9))

	_, err = k.BuildArc(v(10, 0, 0), v(0, 0, 0), v(-10, 0, 0))
	assert.ErrorIs(t, err, kernel.ErrNotDone)
}

func TestExtrude(t *testing.T) {
	k := New()
	face := square(t, k, 10)
	solid, err := k.Extrude(face, v(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, kernel.KindSolid, solid.Kind())
	assert.Len(t, solid.(*Solid).Faces, 6)

	b := k.Bounds(solid)
	assert.InDelta(t, 5, b.Size().Z, 1e-9)

	_, err = k.Extrude(face, v(0, 0, 0))
	assert.ErrorIs(t, err, kernel.ErrNotDone)
	_, err = k.Extrude(face, v(1, 0, 0))
	assert.ErrorIs(t, err, kernel.ErrNotDone)
}

func TestRevolve(t *testing.T) {
	k := New()
	pts := []geometry.Vector3{v(5, 0, 0), v(10, 0, 0), v(10, 10, 0), v(5, 10, 0)}
	var edges []kernel.Shape
	for i := range pts {
		e, _ := k.BuildEdge(pts[i], pts[(i+1)%4])
		edges = append(edges, e)
	}
	wire, _ := k.BuildWire(edges)
	face, err := k.BuildFace(wire)
	require.NoError(t, err)

	axis := geometry.Axis{Direction: v(0, 1, 0)}
	solid, err := k.Revolve(face, axis, 360)
	require.NoError(t, err)
	b := k.Bounds(solid)
	assert.InDelta(t, 20, b.Size().X, 1e-6)
	assert.InDelta(t, 20, b.Size().Z, 1e-6)

	_, err = k.Revolve(face, axis, 0)
	assert.ErrorIs(t, err, kernel.ErrNotDone)
	_, err = k.Revolve(face, axis, 400)
	assert.ErrorIs(t, err, kernel.ErrNotDone)
	_, err = k.Revolve(face, geometry.Axis{}, 90)
	assert.ErrorIs(t, err, kernel.ErrNotDone)
}

func TestBoolean(t *testing.T) {
	k := New()
	a, err := k.Extrude(square(t, k, 10), v(0, 0, 10))
	require.NoError(t, err)
	b, err := k.Transform(a, geometry.Translation(v(5, 5, 5)))
	require.NoError(t, err)
	far, err := k.Transform(a, geometry.Translation(v(100, 0, 0)))
	require.NoError(t, err)

	for _, op := range []kernel.BooleanOp{kernel.Union, kernel.Cut, kernel.Intersect} {
		res, err := k.Boolean(op, a, b)
		require.NoError(t, err, op.String())
		assert.Equal(t, kernel.KindCompound, res.Kind())
		assert.Equal(t, op, res.(*Compound).Op)
	}

	_, err = k.Boolean(kernel.Cut, a, far)
	assert.ErrorIs(t, err, kernel.ErrNotDone)
	_, err = k.Boolean(kernel.Union, a, far)
	assert.NoError(t, err)

	face := square(t, k, 10)
	_, err = k.Boolean(kernel.Union, a, face)
	assert.ErrorIs(t, err, kernel.ErrNotDone)
}

func TestTransformCopies(t *testing.T) {
	k := New()
	e, _ := k.BuildEdge(v(0, 0, 0), v(1, 0, 0))
	moved, err := k.Transform(e, geometry.Translation(v(0, 0, 3)))
	require.NoError(t, err)

	assert.True(t, e.(*Edge).Start().NearlyEqual(v(0, 0, 0), 1e-12))
	assert.True(t, moved.(*Edge).Start().NearlyEqual(v(0, 0, 3), 1e-12))
}

func TestRayCast(t *testing.T) {
	k := New()
	face := square(t, k, 10)
	solid, err := k.Extrude(face, v(0, 0, 10))
	require.NoError(t, err)

	down := geometry.Ray{Origin: v(5, 5, 100), Direction: v(0, 0, -1)}
	hit, ok := k.RayCast(solid, down, kernel.PickFace, 0)
	require.True(t, ok)
	assert.InDelta(t, 10, hit.Point.Z, 1e-9)
	assert.Equal(t, kernel.KindFace, hit.Sub.Kind())

	miss := geometry.Ray{Origin: v(50, 5, 100), Direction: v(0, 0, -1)}
	_, ok = k.RayCast(solid, miss, kernel.PickFace, 0)
	assert.False(t, ok)

	edge, _ := k.BuildEdge(v(0, 0, 0), v(10, 0, 0))
	near := geometry.Ray{Origin: v(5, 0.5, 100), Direction: v(0, 0, -1)}
	hit, ok = k.RayCast(edge, near, kernel.PickEdge, 1)
	require.True(t, ok)
	assert.Same(t, edge, hit.Sub)

	_, ok = k.RayCast(edge, near, kernel.PickEdge, 0.1)
	assert.False(t, ok)
	_, ok = k.RayCast(edge, near, kernel.PickFace, 1)
	assert.False(t, ok)
}
