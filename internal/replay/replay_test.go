package replay

import (
	"context"
	"strings"
	"testing"

	"github.com/philipparndt/gosketch/internal/scene"
	"github.com/philipparndt/gosketch/internal/session"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangle = `
# closed triangle
mode line
down 400 300
move 500 300 drag
up 500 300

down 500 300
move 450 200 drag
up 450 200
down 450 200
move 402 298 drag  # snaps back to the first point
up 402 298
`

func TestParse(t *testing.T) {
	cmds, err := Parse(strings.NewReader("mode Circle\nmove 1 2 drag\nmove 3 4\ntick\ntick 5\nangle 90\nkey Escape\nundo\n"))
	require.NoError(t, err)
	require.Len(t, cmds, 8)

	assert.Equal(t, session.DrawCircle, cmds[0].Mode)
	assert.True(t, cmds[1].Drag)
	assert.Equal(t, geometry.NewPixel(1, 2), cmds[1].Pixel)
	assert.False(t, cmds[2].Drag)
	assert.Equal(t, 1, cmds[3].Count)
	assert.Equal(t, 5, cmds[4].Count)
	assert.InDelta(t, 90, cmds[5].Value, 1e-12)
	assert.Equal(t, "Escape", cmds[6].Key)
	assert.Equal(t, OpUndo, cmds[7].Op)
	assert.Equal(t, 8, cmds[7].Line)
}

func TestParseErrorsCarryLine(t *testing.T) {
	_, err := Parse(strings.NewReader("mode line\n\nspin 3\n"))
	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 3, lineErr.Line)
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, err.Error(), "line 3")

	_, err = Parse(strings.NewReader("down 1\n"))
	assert.ErrorIs(t, err, ErrBadArguments)

	_, err = Parse(strings.NewReader("mode spline\n"))
	assert.ErrorIs(t, err, ErrBadArguments)

	_, err = Parse(strings.NewReader("tick 0\n"))
	assert.ErrorIs(t, err, ErrBadArguments)
}

func TestTriangleScript(t *testing.T) {
	ctrl, view := NewSession()
	require.NoError(t, RunScript(context.Background(), ctrl, strings.NewReader(triangle)))

	sc := ctrl.Scene()
	assert.Equal(t, 1, sc.Count(scene.Wire))
	assert.Zero(t, sc.Count(scene.Line))
	assert.Len(t, view.Items(), 1)
	assert.Equal(t, session.Idle, ctrl.CurrentMode())
}

func TestCircleScript(t *testing.T) {
	ctrl, _ := NewSession()
	script := "key C\ndown 400 300\nmove 410 300 drag\nup 410 300\n"
	require.NoError(t, RunScript(context.Background(), ctrl, strings.NewReader(script)))

	circles := ctrl.Scene().Curves()
	require.Len(t, circles, 1)
	assert.Equal(t, scene.Circle, circles[0].Kind)
	assert.InDelta(t, 10, circles[0].Radius, 1e-9)
	assert.True(t, circles[0].Center.NearlyEqual(geometry.Vector3{}, 1e-9))
}

func TestTickStopsWhenAnimationEnds(t *testing.T) {
	ctrl, view := NewSession()
	script := "mode zoom\ndown 300 200\nmove 500 400 drag\nup 500 400\ntick 100\n"
	require.NoError(t, RunScript(context.Background(), ctrl, strings.NewReader(script)))
	assert.False(t, ctrl.Zooming())
	assert.InDelta(t, 600.0/220.0, view.Scale(), 1e-9)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctrl, _ := NewSession()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunScript(ctx, ctrl, strings.NewReader("mode circle\n"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, session.Idle, ctrl.CurrentMode())
}
