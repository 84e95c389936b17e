package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModeRoundTrip(t *testing.T) {
	for _, m := range Modes() {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	m, err := ParseMode("  Circle ")
	require.NoError(t, err)
	assert.Equal(t, DrawCircle, m)

	_, err = ParseMode("spline")
	assert.Error(t, err)
}

func TestKeyMode(t *testing.T) {
	cases := map[string]Mode{
		"L": DrawLine,
		"c": DrawCircle,
		"Q": DrawRectangle,
		"E": DrawEllipse,
		"T": Trim,
		"F": Fillet,
		"S": Extrude,
		"W": Revolve,
		"M": Move,
		"R": Rotate,
		"P": MateAlign,
		"U": BooleanUnion,
		"D": BooleanCut,
		"I": BooleanIntersect,
		"O": Dimension,
		"Z": ZoomWindow,
	}
	for key, want := range cases {
		got, ok := KeyMode(key)
		require.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}

	_, ok := KeyMode("X")
	assert.False(t, ok)
}
