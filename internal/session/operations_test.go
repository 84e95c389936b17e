package session

import (
	"math"
	"testing"

	"github.com/philipparndt/gosketch/internal/scene"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// extrudeCircle draws a circle of radius pixels around center and extrudes
// it by height model units
func extrudeCircle(t *testing.T, c *Controller, center geometry.Pixel, radius, height int) *scene.Entity {
	t.Helper()
	edge := px(center.X+radius, center.Y)

	c.SetMode(DrawCircle)
	drag(c, center, edge)
	c.SetMode(Extrude)
	drag(c, edge, px(edge.X, edge.Y-height))

	solids := c.Scene().Entities()
	last := solids[len(solids)-1]
	require.Equal(t, scene.Solid, last.Kind)
	return last
}

func TestModeSwitchClearsExtrudePreview(t *testing.T) {
	c, view := newTestController(t)
	c.SetMode(DrawCircle)
	drag(c, px(400, 300), px(420, 300))

	c.SetMode(Extrude)
	c.OnPointerDown(px(420, 300))
	c.OnPointerMove(px(420, 250), true)
	require.True(t, c.Operations().Active())
	_, ok := c.Operations().PreviewHandle()
	require.True(t, ok)
	assert.Len(t, view.Items(), 2)

	c.SetMode(Idle)
	assert.False(t, c.Operations().Active())
	assert.Len(t, view.Items(), 1)
	only(t, c.Scene(), scene.Circle)
}

func TestExtrudeCommit(t *testing.T) {
	c, view := newTestController(t)
	solid := extrudeCircle(t, c, px(400, 300), 20, 50)

	assert.Zero(t, c.Scene().Count(scene.Circle))
	assert.Equal(t, viewer.StyleSolid, solid.Style)
	b := c.kernel.Bounds(solid.Shape)
	assert.InDelta(t, 0, b.Min.Z, 1e-9)
	assert.InDelta(t, 50, b.Max.Z, 1e-9)
	assert.Len(t, view.Items(), 1)
	assert.False(t, c.Operations().Active())
}

func TestExtrudeWithoutHeightKeepsProfile(t *testing.T) {
	c, view := newTestController(t)
	c.SetMode(DrawCircle)
	drag(c, px(400, 300), px(420, 300))

	c.SetMode(Extrude)
	click(c, px(420, 300))
	only(t, c.Scene(), scene.Circle)
	assert.Len(t, view.Items(), 1)
	assert.False(t, c.Operations().Active())
}

func TestExtrudeRejectsOpenProfile(t *testing.T) {
	c, _ := newTestController(t)
	c.SetMode(DrawLine)
	drag(c, px(400, 300), px(500, 300))

	c.SetMode(Extrude)
	c.OnPointerDown(px(450, 300))
	assert.False(t, c.Operations().Active())
}

func TestRevolveAxisThenProfile(t *testing.T) {
	c, view := newTestController(t)
	c.SetMode(DrawLine)
	drag(c, px(400, 300), px(400, 200))
	c.SetMode(DrawRectangle)
	drag(c, px(420, 300), px(460, 250))

	c.SetMode(Revolve)
	click(c, px(400, 250))
	axis := only(t, c.Scene(), scene.Line)
	item, _ := view.Item(axis.Handle)
	assert.Equal(t, viewer.StyleHighlight, item.Style)

	click(c, px(440, 300))
	require.True(t, c.Operations().Active())
	assert.InDelta(t, 360, c.Operations().Revolve().Angle, 1e-12)

	c.SetRevolveAngle(90)
	assert.InDelta(t, 90, c.Operations().Revolve().Angle, 1e-12)

	c.OnKeyUp(KeyEnter)
	solid := only(t, c.Scene(), scene.Solid)
	assert.Equal(t, viewer.StyleSolid, solid.Style)
	assert.Zero(t, c.Scene().Count(scene.Rectangle))
	only(t, c.Scene(), scene.Line)
	item, _ = view.Item(axis.Handle)
	assert.Equal(t, viewer.StyleSketch, item.Style)
	assert.False(t, c.Operations().Active())
}

func TestRevolveAngleOutOfRangeIgnored(t *testing.T) {
	c, _ := newTestController(t)
	c.SetRevolveAngle(0)
	c.SetRevolveAngle(400)
	assert.InDelta(t, 360, c.Settings().RevolveAngle, 1e-12)
}

func TestBooleanUnion(t *testing.T) {
	c, view := newTestController(t)
	extrudeCircle(t, c, px(400, 300), 20, 50)
	extrudeCircle(t, c, px(430, 300), 20, 50)
	require.Equal(t, 2, c.Scene().Count(scene.Solid))

	c.SetMode(BooleanUnion)
	click(c, px(400, 300))
	click(c, px(440, 300))

	result := only(t, c.Scene(), scene.Solid)
	assert.Equal(t, viewer.StyleUnion, result.Style)
	assert.Len(t, view.Items(), 1)
}

func TestBooleanIgnoresSketchCurves(t *testing.T) {
	c, _ := newTestController(t)
	c.SetMode(DrawRectangle)
	drag(c, px(400, 300), px(440, 270))

	c.SetMode(BooleanCut)
	click(c, px(420, 285))
	assert.Equal(t, 1, c.Scene().Len())
	assert.Equal(t, BooleanCut.hint(), c.Hint())
}

func TestMateAlignsFaces(t *testing.T) {
	c, _ := newTestController(t)
	moving := extrudeCircle(t, c, px(400, 300), 20, 50)
	extrudeCircle(t, c, px(500, 300), 20, 50)

	c.SetMode(MateAlign)
	click(c, px(400, 300))
	assert.Equal(t, MateAwaitingSecond, c.Mate().Step)
	assert.Equal(t, moving.Handle, c.Mate().Owner)
	assert.True(t, c.Mate().Normal.NearlyEqual(geometry.NewVector3(0, 0, 1), 1e-9))

	click(c, px(500, 300))
	assert.Equal(t, MateAwaitingFirst, c.Mate().Step)

	moved, ok := c.Scene().Get(moving.Handle)
	require.True(t, ok)
	b := c.kernel.Bounds(moved.Shape)
	assert.InDelta(t, 50, b.Min.Z, 1e-6)
	assert.InDelta(t, 100, b.Max.Z, 1e-6)
	assert.InDelta(t, 100, b.Center().X, 1e-6)
	assert.False(t, moved.Transform.IsIdentity(1e-9))
}

func TestMateUsesFaceCentersNotClickPoints(t *testing.T) {
	c, _ := newTestController(t)
	moving := extrudeCircle(t, c, px(400, 300), 20, 50)
	extrudeCircle(t, c, px(500, 300), 20, 50)

	c.SetMode(MateAlign)
	click(c, px(410, 295))
	assert.True(t, c.Mate().Point.NearlyEqual(geometry.NewVector3(0, 0, 50), 1e-6), c.Mate().Point.String())
	click(c, px(492, 305))

	moved, ok := c.Scene().Get(moving.Handle)
	require.True(t, ok)
	b := c.kernel.Bounds(moved.Shape)
	assert.InDelta(t, 100, b.Center().X, 1e-6)
	assert.InDelta(t, 0, b.Center().Y, 1e-6)
	assert.InDelta(t, 50, b.Min.Z, 1e-6)
}

func TestMateIgnoresSameBody(t *testing.T) {
	c, _ := newTestController(t)
	extrudeCircle(t, c, px(400, 300), 20, 50)

	c.SetMode(MateAlign)
	click(c, px(400, 300))
	click(c, px(405, 300))
	assert.Equal(t, MateAwaitingSecond, c.Mate().Step)

	c.SetMode(Idle)
	assert.Equal(t, MateAwaitingFirst, c.Mate().Step)
}

func TestMoveTranslatesEntity(t *testing.T) {
	c, _ := newTestController(t)
	c.SetMode(DrawLine)
	drag(c, px(400, 300), px(500, 300))

	c.SetMode(Move)
	drag(c, px(450, 300), px(450, 250))

	line := only(t, c.Scene(), scene.Line)
	ends := line.Endpoints()
	require.Len(t, ends, 2)
	assert.True(t, ends[0].NearlyEqual(world(0, 50), 1e-9))
	assert.True(t, ends[1].NearlyEqual(world(100, 50), 1e-9))
}

func TestRotateTurnsAboutCenter(t *testing.T) {
	c, _ := newTestController(t)
	c.SetMode(DrawLine)
	drag(c, px(400, 300), px(500, 300))

	c.SetMode(Rotate)
	drag(c, px(450, 300), px(630, 300))

	line := only(t, c.Scene(), scene.Line)
	ends := line.Endpoints()
	require.Len(t, ends, 2)
	assert.True(t, ends[0].NearlyEqual(world(50, -50), 1e-9), ends[0].String())
	assert.True(t, ends[1].NearlyEqual(world(50, 50), 1e-9), ends[1].String())
	assert.InDelta(t, math.Pi/2, line.Transform.RotationAngle(), 1e-9)
}

func TestTrimRemovesClickedPiece(t *testing.T) {
	c, _ := newTestController(t)
	c.SetMode(DrawLine)
	drag(c, px(400, 300), px(600, 300))
	drag(c, px(500, 200), px(500, 400))

	c.SetMode(Trim)
	click(c, px(550, 300))

	require.Equal(t, 2, c.Scene().Count(scene.Line))
	var trimmed *scene.Entity
	for _, e := range c.Scene().Curves() {
		if e.Points[0].Y == 0 && e.Points[1].Y == 0 {
			trimmed = e
		}
	}
	require.NotNil(t, trimmed)
	assert.True(t, trimmed.Points[0].NearlyEqual(world(0, 0), 1e-9))
	assert.True(t, trimmed.Points[1].NearlyEqual(world(100, 0), 1e-9))
}

func TestTrimWithoutCrossingIsNoop(t *testing.T) {
	c, _ := newTestController(t)
	c.SetMode(DrawLine)
	drag(c, px(400, 300), px(600, 300))
	before := only(t, c.Scene(), scene.Line)

	c.SetMode(Trim)
	click(c, px(550, 300))
	after := only(t, c.Scene(), scene.Line)
	assert.Equal(t, before.Handle, after.Handle)
}

func TestFilletReplacesLinesWithWire(t *testing.T) {
	c, _ := newTestController(t)
	c.SetMode(DrawLine)
	drag(c, px(400, 300), px(500, 300))
	drag(c, px(400, 300), px(400, 200))

	c.SetMode(Fillet)
	click(c, px(450, 300))
	assert.Equal(t, "click the second line", c.Hint())
	click(c, px(400, 250))

	assert.Zero(t, c.Scene().Count(scene.Line))
	wire := only(t, c.Scene(), scene.Wire)
	require.Len(t, wire.Points, 4)
	assert.True(t, wire.Points[1].NearlyEqual(world(20, 0), 1e-9))
	assert.True(t, wire.Points[2].NearlyEqual(world(0, 20), 1e-9))

	ends := wire.Endpoints()
	require.Len(t, ends, 2)
	assert.True(t, ends[0].NearlyEqual(world(100, 0), 1e-9))
	assert.True(t, ends[1].NearlyEqual(world(0, 100), 1e-9))
}

func TestFilletRadiusTooLargeKeepsLines(t *testing.T) {
	c, _ := newTestController(t)
	c.SetMode(DrawLine)
	drag(c, px(400, 300), px(430, 300))
	drag(c, px(400, 300), px(400, 270))

	c.SetFilletRadius(50)
	c.SetMode(Fillet)
	click(c, px(420, 300))
	click(c, px(400, 280))
	assert.Equal(t, 2, c.Scene().Count(scene.Line))
	assert.Zero(t, c.Scene().Count(scene.Wire))
}

func TestSetModeClearsFirstPick(t *testing.T) {
	c, view := newTestController(t)
	c.SetMode(DrawLine)
	drag(c, px(400, 300), px(500, 300))

	c.SetMode(Fillet)
	click(c, px(450, 300))
	line := only(t, c.Scene(), scene.Line)
	item, _ := view.Item(line.Handle)
	require.Equal(t, viewer.StyleHighlight, item.Style)

	c.SetMode(Fillet)
	item, _ = view.Item(line.Handle)
	assert.Equal(t, viewer.StyleSketch, item.Style)
	assert.Equal(t, Fillet.hint(), c.Hint())
}

func TestDimensionThreeClicks(t *testing.T) {
	c, view := newTestController(t)
	c.SetMode(Dimension)

	click(c, px(400, 300))
	click(c, px(500, 300))
	assert.Equal(t, "click where the dimension goes", c.Hint())

	c.OnPointerMove(px(450, 290), false)
	require.Len(t, view.Overlays(), 1)

	click(c, px(450, 280))
	assert.Empty(t, view.Overlays())

	dim := only(t, c.Scene(), scene.Dimension)
	assert.Equal(t, "100.00", dim.Label)
	assert.True(t, dim.LabelAt.NearlyEqual(geometry.NewVector3(50, 20, 0.1), 1e-9))
	assert.Empty(t, dim.Endpoints())
	assert.Equal(t, Dimension, c.CurrentMode())
	assert.Equal(t, Dimension.hint(), c.Hint())
}

func TestDimensionSnapsMeasuredPoints(t *testing.T) {
	c, _ := newTestController(t)
	c.SetMode(DrawLine)
	drag(c, px(400, 300), px(500, 300))

	c.SetMode(Dimension)
	click(c, px(403, 303))
	click(c, px(497, 298))
	click(c, px(450, 260))

	dim := only(t, c.Scene(), scene.Dimension)
	assert.Equal(t, "100.00", dim.Label)
}
