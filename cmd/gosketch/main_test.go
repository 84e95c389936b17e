package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gosketch/internal/replay"
	"github.com/philipparndt/gosketch/internal/session"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestVectorFlag(t *testing.T) {
	var v vectorFlag
	require.NoError(t, v.Set("1, 2.5,-3"))
	assert.Equal(t, geometry.NewVector3(1, 2.5, -3), geometry.Vector3(v))
	assert.Equal(t, "1,2.5,-3", v.String())

	assert.Error(t, v.Set("1,2"))
	assert.Error(t, v.Set("a,b,c"))
}

func TestReplayFileReportsSketch(t *testing.T) {
	script := filepath.Join(t.TempDir(), "circle.txt")
	require.NoError(t, os.WriteFile(script, []byte("mode circle\ndown 400 300\nmove 420 300 drag\nup 420 300\n"), 0o644))

	var out bytes.Buffer
	err := replayFile(context.Background(), &out, script, session.DefaultSettings(), zap.NewNop())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "circle")
	assert.Contains(t, out.String(), "Mode: circle")
}

func TestReplayFileReportsLine(t *testing.T) {
	script := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(script, []byte("mode line\nwiggle\n"), 0o644))

	var out bytes.Buffer
	err := replayFile(context.Background(), &out, script, session.DefaultSettings(), zap.NewNop())
	assert.ErrorIs(t, err, replay.ErrUnknownCommand)
	assert.Contains(t, err.Error(), "line 2")
	assert.Empty(t, out.String())
}

func TestReplayMissingFile(t *testing.T) {
	err := replayFile(context.Background(), &bytes.Buffer{}, filepath.Join(t.TempDir(), "none.txt"), session.DefaultSettings(), zap.NewNop())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMateCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"mate", "--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--p1", "0,0,10", "--n1", "0,0,1", "--p2", "0,0,0", "--n2", "0,0,1"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "p1 moves to")
}
