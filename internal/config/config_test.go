package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gosketch/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFiles(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, session.DefaultSettings(), cfg.Settings())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.FilePath)
	assert.Equal(t, "development", cfg.Log.Environment)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GOSKETCH_SNAP_TOLERANCE", "4.5")
	t.Setenv("GOSKETCH_ZOOM_STEPS", "12")
	t.Setenv("GOSKETCH_LOG_LEVEL", "debug")

	cfg, err := LoadFiles(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.InDelta(t, 4.5, cfg.Session.SnapTolerance, 1e-12)
	assert.Equal(t, 12, cfg.Session.ZoomSteps)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GOSKETCH_FILLET_RADIUS=7\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("GOSKETCH_FILLET_RADIUS") })

	cfg, err := LoadFiles(path)
	require.NoError(t, err)
	assert.InDelta(t, 7, cfg.Session.FilletRadius, 1e-12)
}

func TestUnparsableValueFallsBack(t *testing.T) {
	t.Setenv("GOSKETCH_ZOOM_MARGIN", "wide")

	cfg, err := LoadFiles(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Session.ZoomMargin)
}

func TestValidationRejectsOutOfRange(t *testing.T) {
	t.Setenv("GOSKETCH_REVOLVE_ANGLE", "720")
	_, err := LoadFiles(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "invalid configuration")

	t.Setenv("GOSKETCH_REVOLVE_ANGLE", "90")
	t.Setenv("GOSKETCH_LOG_LEVEL", "verbose")
	_, err = LoadFiles(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
