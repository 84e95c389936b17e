package viewer

import (
	"testing"

	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"github.com/philipparndt/gosketch/pkg/kernel/memkernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViewer() (*Headless, *memkernel.Kernel) {
	k := memkernel.New()
	return NewHeadless(k, 800, 600), k
}

func TestScreenToWorldRoundTrip(t *testing.T) {
	h, _ := newTestViewer()

	center := h.ScreenToWorld(geometry.NewPixel(400, 300))
	assert.InDelta(t, 0, center.Length(), 1e-9)

	p := h.ScreenToWorld(geometry.NewPixel(500, 200))
	assert.InDelta(t, 100, p.X, 1e-9)
	assert.InDelta(t, 100, p.Y, 1e-9)
	assert.InDelta(t, 0, p.Z, 1e-9)

	assert.Equal(t, geometry.NewPixel(500, 200), h.WorldToPixel(p))
}

func TestScaleAndCenter(t *testing.T) {
	h, _ := newTestViewer()
	h.SetScale(2)
	h.SetCenter(geometry.NewVector3(10, 0, 0))

	p := h.ScreenToWorld(geometry.NewPixel(600, 300))
	assert.InDelta(t, 110, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)

	fit := h.FitScale(geometry.NewRect(geometry.NewPixel(0, 0), geometry.NewPixel(400, 100)))
	assert.InDelta(t, 4, fit, 1e-9)
}

func TestDisplayListOrder(t *testing.T) {
	h, k := newTestViewer()
	a, b := NewHandle(), NewHandle()
	ea, _ := k.BuildEdge(geometry.NewVector3(0, 0, 0), geometry.NewVector3(10, 0, 0))
	eb, _ := k.BuildEdge(geometry.NewVector3(0, 10, 0), geometry.NewVector3(10, 10, 0))

	h.Show(a, ea, StyleSketch)
	h.Show(b, eb, StyleSketch)
	h.Replace(a, eb, StyleHighlight)

	items := h.Items()
	require.Len(t, items, 2)
	assert.Equal(t, a, items[0].Handle)
	assert.Equal(t, StyleHighlight, items[0].Style)

	h.Erase(a)
	h.Erase(a)
	_, ok := h.Item(a)
	assert.False(t, ok)
	assert.Len(t, h.Items(), 1)
}

func TestPickUnderCursor(t *testing.T) {
	h, k := newTestViewer()
	line := NewHandle()
	e, _ := k.BuildEdge(geometry.NewVector3(0, 0, 0), geometry.NewVector3(100, 0, 0))
	h.Show(line, e, StyleSketch)

	pick, ok := h.PickUnderCursor(geometry.NewPixel(450, 303), kernel.PickEdge)
	require.True(t, ok)
	assert.Equal(t, line, pick.Handle)

	_, ok = h.PickUnderCursor(geometry.NewPixel(450, 320), kernel.PickEdge)
	assert.False(t, ok)
	_, ok = h.PickUnderCursor(geometry.NewPixel(450, 303), kernel.PickFace)
	assert.False(t, ok)
}

func TestPickInRect(t *testing.T) {
	h, k := newTestViewer()
	inside, outside := NewHandle(), NewHandle()
	e1, _ := k.BuildEdge(geometry.NewVector3(0, 0, 0), geometry.NewVector3(10, 0, 0))
	e2, _ := k.BuildEdge(geometry.NewVector3(200, 200, 0), geometry.NewVector3(210, 200, 0))
	h.Show(inside, e1, StyleSketch)
	h.Show(outside, e2, StyleSketch)

	picks := h.PickInRect(geometry.NewRect(geometry.NewPixel(390, 290), geometry.NewPixel(420, 310)), kernel.PickAny)
	require.Len(t, picks, 1)
	assert.Equal(t, inside, picks[0].Handle)

	assert.Empty(t, h.PickInRect(geometry.NewRect(geometry.NewPixel(390, 290), geometry.NewPixel(420, 310)), kernel.PickFace))
}

func TestOverlaysAndRedraw(t *testing.T) {
	h, _ := newTestViewer()
	calls := 0
	h.OnRedraw = func() { calls++ }

	o := NewHandle()
	h.ShowOverlay(o, Overlay{Kind: OverlayCircle, RadiusU: 5, Billboard: true})
	h.Redraw()
	assert.Len(t, h.Overlays(), 1)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, h.Redraws())

	h.RemoveOverlay(o)
	assert.Empty(t, h.Overlays())
}

func TestOverlayOutline(t *testing.T) {
	square := Overlay{
		Kind:   OverlayPolyline,
		Points: []geometry.Vector3{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}},
		Closed: true,
	}
	assert.Len(t, square.Outline(), 5)

	circle := Overlay{Kind: OverlayCircle, Center: geometry.NewVector3(1, 1, 0), RadiusU: 2}
	for _, p := range circle.Outline() {
		assert.InDelta(t, 2, p.Distance(circle.Center), 1e-9)
	}
}

func TestStyleAlpha(t *testing.T) {
	assert.Equal(t, uint8(127), StylePreview.Alpha().A)
	assert.Equal(t, uint8(255), StyleSolid.Alpha().A)
}
