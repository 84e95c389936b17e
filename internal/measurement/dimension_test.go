package measurement

import (
	"math"
	"testing"

	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(x, y float64) geometry.Vector3 { return geometry.NewVector3(x, y, 0) }

func TestComputeHorizontal(t *testing.T) {
	d, err := Compute(v(0, 0), v(100, 0), v(40, 20), geometry.Vector3{})
	require.NoError(t, err)

	assert.InDelta(t, 20, d.Offset, 1e-12)
	assert.True(t, d.Line.Start.NearlyEqual(v(0, 20), 1e-12))
	assert.True(t, d.Line.End.NearlyEqual(v(100, 20), 1e-12))
	assert.Equal(t, v(0, 0), d.Extension[0].Start)
	assert.True(t, d.Extension[1].End.NearlyEqual(v(100, 20), 1e-12))

	assert.Equal(t, "100.00", d.Label.Text)
	assert.True(t, d.Label.Position.NearlyEqual(geometry.NewVector3(50, 20, 0.1), 1e-12))
	assert.InDelta(t, 0, d.Label.Angle, 1e-12)
	assert.InDelta(t, 100, d.Value(), 1e-12)
}

func TestComputeBelowLine(t *testing.T) {
	d, err := Compute(v(0, 0), v(100, 0), v(40, -15), geometry.Vector3{})
	require.NoError(t, err)
	assert.InDelta(t, -15, d.Offset, 1e-12)
	assert.True(t, d.Line.Start.NearlyEqual(v(0, -15), 1e-12))
}

func TestArrowheads(t *testing.T) {
	d, err := Compute(v(0, 0), v(100, 0), v(0, 10), geometry.Vector3{})
	require.NoError(t, err)

	start, end := d.Arrows[0], d.Arrows[1]
	assert.True(t, start.Tip.NearlyEqual(v(0, 10), 1e-12))
	// Arrows point outwards, so their barbs lie inside the offset line
	assert.InDelta(t, ArrowLength, start.Barb1.X, 1e-12)
	assert.InDelta(t, 100-ArrowLength, end.Barb1.X, 1e-12)
	assert.InDelta(t, 2*ArrowLength*ArrowLength/2, math.Abs(end.Barb1.Y-end.Barb2.Y), 1e-12)
}

func TestComputeCoincident(t *testing.T) {
	_, err := Compute(v(5, 5), v(5, 5), v(0, 0), geometry.Vector3{})
	assert.ErrorIs(t, err, ErrCoincident)
}

func TestPathIsConnected(t *testing.T) {
	d, err := Compute(v(0, 0), v(30, 40), v(-10, 30), geometry.Vector3{})
	require.NoError(t, err)
	path := d.Path()
	require.NotEmpty(t, path)
	assert.Equal(t, d.P1, path[0])
	assert.Equal(t, d.P2, path[len(path)-1])
	for i := 0; i+1 < len(path); i++ {
		assert.Greater(t, path[i].Distance(path[i+1]), 0.0)
	}
	assert.Equal(t, "50.00", d.Label.Text)

	flat, err := Compute(v(0, 0), v(10, 0), v(5, 0), geometry.Vector3{})
	require.NoError(t, err)
	assert.Equal(t, v(0, 0), flat.Path()[0])
	assert.Len(t, flat.Path(), 10)
}

func TestThreeClickProtocol(t *testing.T) {
	var s State
	assert.Equal(t, AwaitingFirst, s.Step)

	_, done, err := s.Click(v(0, 0))
	require.NoError(t, err)
	assert.False(t, done)
	_, ok := s.Preview(v(1, 1))
	assert.False(t, ok)

	_, _, err = s.Click(v(0, 0))
	assert.ErrorIs(t, err, ErrCoincident)
	assert.Equal(t, AwaitingSecond, s.Step)

	_, done, err = s.Click(v(10, 0))
	require.NoError(t, err)
	assert.False(t, done)

	preview, ok := s.Preview(v(5, 3))
	require.True(t, ok)
	assert.InDelta(t, 3, preview.Offset, 1e-12)

	d, done, err := s.Click(v(5, 4))
	require.NoError(t, err)
	require.True(t, done)
	assert.InDelta(t, 4, d.Offset, 1e-12)
	assert.Equal(t, AwaitingFirst, s.Step)
}
