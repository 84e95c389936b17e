package projection

import (
	"testing"

	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"github.com/philipparndt/gosketch/pkg/kernel/memkernel"
	"github.com/philipparndt/gosketch/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectRay(t *testing.T) {
	plane := geometry.NewPlane(geometry.NewVector3(0, 0, 5), geometry.NewVector3(0, 0, 1))
	p, err := IntersectRay(geometry.NewVector3(1, 2, 10), geometry.NewVector3(0, 0, -1), plane)
	require.NoError(t, err)
	assert.True(t, p.NearlyEqual(geometry.NewVector3(1, 2, 5), 1e-12), p.String())

	_, err = IntersectRay(geometry.NewVector3(1, 2, 10), geometry.NewVector3(1, 0, 0), plane)
	assert.ErrorIs(t, err, ErrRayParallel)
}

func TestIntersectRayTilted(t *testing.T) {
	plane := geometry.NewPlane(geometry.Vector3{}, geometry.NewVector3(1, 0, 1))
	p, err := IntersectRay(geometry.NewVector3(0, 0, 10), geometry.NewVector3(0, 0, -1), plane)
	require.NoError(t, err)
	assert.InDelta(t, 0, plane.SignedDistance(p), 1e-12)
}

func newService(t *testing.T) (*Service, *viewer.Headless, *memkernel.Kernel) {
	t.Helper()
	k := memkernel.New()
	h := viewer.NewHeadless(k, 800, 600)
	return New(h, k), h, k
}

func TestScreenToPlaneThroughViewport(t *testing.T) {
	s, _, _ := newService(t)
	plane := geometry.NewPlane(geometry.NewVector3(0, 0, 3), geometry.NewVector3(0, 0, 1))

	p, err := s.ScreenToPlane(geometry.NewPixel(410, 290), plane)
	require.NoError(t, err)
	assert.True(t, p.NearlyEqual(geometry.NewVector3(10, 10, 3), 1e-9), p.String())

	side := geometry.NewPlane(geometry.Vector3{}, geometry.NewVector3(1, 0, 0))
	_, err = s.ScreenToPlane(geometry.NewPixel(410, 290), side)
	assert.ErrorIs(t, err, ErrRayParallel)

	w := s.ScreenToWorld(geometry.NewPixel(410, 290))
	assert.True(t, w.NearlyEqual(geometry.NewVector3(10, 10, 0), 1e-9), w.String())
}

func TestAcquirePlaneFromFace(t *testing.T) {
	s, h, k := newService(t)

	_, ok := s.AcquirePlaneFromFace(geometry.NewPixel(400, 300))
	assert.False(t, ok, "no face displayed")

	corners := []geometry.Vector3{
		geometry.NewVector3(-50, -50, 0), geometry.NewVector3(50, -50, 0),
		geometry.NewVector3(50, 50, 0), geometry.NewVector3(-50, 50, 0),
	}
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
	box, err := k.Extrude(face, geometry.NewVector3(0, 0, 20))
	require.NoError(t, err)
	h.Show(viewer.NewHandle(), box, viewer.StyleSolid)

	plane, ok := s.AcquirePlaneFromFace(geometry.NewPixel(410, 300))
	require.True(t, ok)
	assert.InDelta(t, 1, plane.Normal.Z, 1e-9)
	assert.InDelta(t, 20, plane.Origin.Z, 1e-9)
	assert.InDelta(t, 10, plane.Origin.X, 1e-9)

	_, ok = s.AcquirePlaneFromFace(geometry.NewPixel(700, 300))
	assert.False(t, ok, "outside the box")
}
