package scene

import (
	"testing"

	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel/memkernel"
	"github.com/philipparndt/gosketch/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene() (*Scene, *viewer.Headless, *memkernel.Kernel) {
	k := memkernel.New()
	h := viewer.NewHeadless(k, 800, 600)
	return New(k, h), h, k
}

func addLine(t *testing.T, s *Scene, k *memkernel.Kernel, p1, p2 geometry.Vector3) *Entity {
	t.Helper()
	shape, err := k.BuildEdge(p1, p2)
	require.NoError(t, err)
	return s.Add(NewLine(p1, p2, shape))
}

func TestAddAndOrder(t *testing.T) {
	s, display, k := newTestScene()
	a := addLine(t, s, k, geometry.NewVector3(0, 0, 0), geometry.NewVector3(10, 0, 0))
	b := addLine(t, s, k, geometry.NewVector3(10, 0, 0), geometry.NewVector3(10, 10, 0))

	assert.NotEqual(t, viewer.Handle{}, a.Handle)
	assert.Less(t, a.Seq(), b.Seq())

	entities := s.Entities()
	require.Len(t, entities, 2)
	assert.Equal(t, a.Handle, entities[0].Handle)
	assert.Len(t, display.Items(), 2)

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, b.Handle, last.Handle)
}

func TestRemove(t *testing.T) {
	s, display, k := newTestScene()
	a := addLine(t, s, k, geometry.NewVector3(0, 0, 0), geometry.NewVector3(10, 0, 0))

	assert.True(t, s.Remove(a.Handle))
	assert.False(t, s.Remove(a.Handle))
	assert.Empty(t, display.Items())
	_, ok := s.Last()
	assert.False(t, ok)
}

func TestSetTransform(t *testing.T) {
	s, display, k := newTestScene()
	a := addLine(t, s, k, geometry.NewVector3(0, 0, 0), geometry.NewVector3(10, 0, 0))

	require.NoError(t, s.SetTransform(a.Handle, geometry.Translation(geometry.NewVector3(0, 5, 0))))
	ends := a.Endpoints()
	require.Len(t, ends, 2)
	assert.InDelta(t, 5, ends[0].Y, 1e-9)

	item, ok := display.Item(a.Handle)
	require.True(t, ok)
	assert.InDelta(t, 5, k.Bounds(item.Shape).Min.Y, 1e-9)

	assert.ErrorIs(t, s.SetTransform(viewer.NewHandle(), geometry.Identity()), ErrUnknownEntity)
}

func TestHighlightKeepsStyle(t *testing.T) {
	s, display, k := newTestScene()
	a := addLine(t, s, k, geometry.NewVector3(0, 0, 0), geometry.NewVector3(10, 0, 0))

	s.Highlight(a.Handle, true)
	item, _ := display.Item(a.Handle)
	assert.Equal(t, viewer.StyleHighlight, item.Style)
	assert.Equal(t, viewer.StyleSketch, a.Style)

	s.Highlight(a.Handle, false)
	item, _ = display.Item(a.Handle)
	assert.Equal(t, viewer.StyleSketch, item.Style)
}

func TestCurvesAndCount(t *testing.T) {
	s, _, k := newTestScene()
	addLine(t, s, k, geometry.NewVector3(0, 0, 0), geometry.NewVector3(10, 0, 0))
	c, err := k.BuildCircle(geometry.Vector3{}, geometry.NewVector3(0, 0, 1), 5)
	require.NoError(t, err)
	circle := s.Add(NewCircle(geometry.Vector3{}, geometry.NewVector3(0, 0, 1), 5, c))
	s.Add(NewShape(Dimension, c, viewer.StyleDimension))

	assert.Len(t, s.Curves(), 2)
	assert.Equal(t, 1, s.Count(Dimension))
	assert.Empty(t, circle.Endpoints())
	assert.Equal(t, "circle", circle.Kind.String())
}
