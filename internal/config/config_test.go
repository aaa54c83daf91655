package config

import (
	"math"
	"testing"

	"plot-viewport/internal/viewport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	vc := cfg.Viewport()
	assert.Equal(t, 400.0, vc.CanvasWidth)
	assert.Equal(t, 300.0, vc.CanvasHeight)
	assert.Equal(t, 0.1, vc.MinZoomFactor)
	assert.True(t, math.IsInf(vc.MaxZoomFactor, 1))
	assert.Equal(t, 1.0, vc.ZoomFactor)
	assert.True(t, math.IsInf(vc.MinX, -1))
	assert.True(t, math.IsInf(vc.MaxY, 1))
	assert.True(t, vc.AxisEnabled)
	assert.False(t, vc.Locked)
	assert.False(t, cfg.Bounded())

	_, err = viewport.New(vc)
	assert.NoError(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("VIEWPORT_WIDTH", "640")
	t.Setenv("VIEWPORT_MIN_X", "-100")
	t.Setenv("VIEWPORT_MAX_X", "100")
	t.Setenv("VIEWPORT_ZOOM", "2.5")
	t.Setenv("VIEWPORT_AXIS", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 640.0, cfg.Width)
	assert.Equal(t, -100.0, cfg.MinX)
	assert.Equal(t, 2.5, cfg.Zoom)
	assert.False(t, cfg.Axis)
	assert.True(t, cfg.Bounded())
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("VIEWPORT_MIN_Y", "10")
	t.Setenv("VIEWPORT_MAX_Y", "-10")
	_, err := Load()
	assert.ErrorIs(t, err, viewport.ErrInvalidConfig)
}

func TestLoadRejectsUnparsable(t *testing.T) {
	t.Setenv("VIEWPORT_HEIGHT", "tall")
	_, err := Load()
	assert.Error(t, err)
}
