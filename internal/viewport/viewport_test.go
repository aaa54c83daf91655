package viewport

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViewport(t *testing.T, mutate func(*Config)) *Viewport {
	t.Helper()
	cfg := DefaultConfig(400, 300)
	if mutate != nil {
		mutate(&cfg)
	}
	v, err := New(cfg)
	require.NoError(t, err)
	return v
}

func TestNewDefaults(t *testing.T) {
	v := newTestViewport(t, nil)
	assert.Equal(t, 400.0, v.CanvasWidth())
	assert.Equal(t, 300.0, v.CanvasHeight())
	assert.Equal(t, 1.0, v.ZoomFactor())
	assert.Equal(t, 0.1, v.MinZoomFactor())
	assert.True(t, math.IsInf(v.MaxZoomFactor(), 1))
	assert.True(t, v.AxisEnabled())
	assert.False(t, v.Locked())

	minX, maxX, minY, maxY := v.Bounds()
	assert.True(t, math.IsInf(minX, -1))
	assert.True(t, math.IsInf(maxX, 1))
	assert.True(t, math.IsInf(minY, -1))
	assert.True(t, math.IsInf(maxY, 1))
}

func TestNewZeroZoomFieldsUseDefaults(t *testing.T) {
	v, err := New(Config{
		CanvasWidth: 100, CanvasHeight: 100,
		MinX: -10, MaxX: 10, MinY: -10, MaxY: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.ZoomFactor())
	assert.Equal(t, 0.1, v.MinZoomFactor())
	assert.True(t, math.IsInf(v.MaxZoomFactor(), 1))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.CanvasWidth = 0 }},
		{"negative height", func(c *Config) { c.CanvasHeight = -1 }},
		{"infinite width", func(c *Config) { c.CanvasWidth = math.Inf(1) }},
		{"inverted x bounds", func(c *Config) { c.MinX, c.MaxX = 10, -10 }},
		{"inverted y bounds", func(c *Config) { c.MinY, c.MaxY = 1, 0 }},
		{"negative min zoom", func(c *Config) { c.MinZoomFactor = -1 }},
		{"inverted zoom limits", func(c *Config) { c.MinZoomFactor, c.MaxZoomFactor = 5, 2 }},
		{"nan pan", func(c *Config) { c.PanX = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(400, 300)
			tt.mutate(&cfg)
			_, err := New(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestNewClampsPanAgainstConfiguredBounds(t *testing.T) {
	// Bounds are applied before pan, so the initial pan is clamped by them.
	v := newTestViewport(t, func(c *Config) {
		c.ZoomFactor = 2
		c.MinX, c.MaxX = -100, 100
		c.MinY, c.MaxY = -50, 50
		c.PanX, c.PanY = 1000, -1000
	})
	assert.Equal(t, 200.0, v.PanX())
	assert.Equal(t, -100.0, v.PanY())
}

func TestNewClampsZoom(t *testing.T) {
	v := newTestViewport(t, func(c *Config) {
		c.MaxZoomFactor = 4
		c.ZoomFactor = 10
	})
	assert.Equal(t, 4.0, v.ZoomFactor())
}

func TestSetZoomClamps(t *testing.T) {
	v := newTestViewport(t, func(c *Config) { c.MaxZoomFactor = 3 })

	v.SetZoom(Value(0.01))
	assert.Equal(t, 0.1, v.ZoomFactor())

	v.SetZoom(Value(50))
	assert.Equal(t, 3.0, v.ZoomFactor())

	v.SetZoom(Times(0.5))
	assert.Equal(t, 1.5, v.ZoomFactor())

	v.SetZoom(Value(math.NaN()))
	assert.Equal(t, 1.5, v.ZoomFactor())
}

func TestSetPanUpdaterAndKeep(t *testing.T) {
	v := newTestViewport(t, nil)
	v.SetPan(Value(10), Value(20))
	v.SetPan(By(5), Keep())
	assert.Equal(t, 15.0, v.PanX())
	assert.Equal(t, 20.0, v.PanY())

	v.SetPanY(Func(func(y float64) float64 { return -y }))
	assert.Equal(t, -20.0, v.PanY())
}

func TestSetBoundsDoesNotReclamp(t *testing.T) {
	v := newTestViewport(t, nil)
	v.SetPan(Value(500), Value(500))
	v.SetBounds(-10, 10, -10, 10)
	assert.Equal(t, 500.0, v.PanX())

	v.SetPan(By(0), By(0))
	assert.Equal(t, 10.0, v.PanX())
	assert.Equal(t, 10.0, v.PanY())
}

func TestSetBoundsIgnoresInvertedRange(t *testing.T) {
	v := newTestViewport(t, nil)
	v.SetBounds(5, -5, -1, 1)
	minX, maxX, minY, maxY := v.Bounds()
	assert.True(t, math.IsInf(minX, -1))
	assert.True(t, math.IsInf(maxX, 1))
	assert.Equal(t, -1.0, minY)
	assert.Equal(t, 1.0, maxY)
}

func TestSetZoomReclampsPan(t *testing.T) {
	v := newTestViewport(t, func(c *Config) {
		c.MinX, c.MaxX = -100, 100
		c.ZoomFactor = 2
		c.PanX = 200
	})
	v.SetZoom(Value(1))
	assert.Equal(t, 100.0, v.PanX())
}

func TestSetZoomLimitsDoesNotReclamp(t *testing.T) {
	v := newTestViewport(t, func(c *Config) { c.ZoomFactor = 8 })
	v.SetZoomLimits(0.5, 2)
	assert.Equal(t, 8.0, v.ZoomFactor())
	v.SetZoom(Times(1))
	assert.Equal(t, 2.0, v.ZoomFactor())

	v.SetZoomLimits(0, 1)
	assert.Equal(t, 0.5, v.MinZoomFactor())
}

func TestLockAndAxis(t *testing.T) {
	v := newTestViewport(t, nil)
	v.SetLock(BoolValue(true))
	assert.True(t, v.Locked())
	v.SetLock(Toggle())
	assert.False(t, v.Locked())

	v.SetAxisEnabled(false)
	assert.False(t, v.AxisEnabled())
	assert.False(t, v.Snapshot().AxisEnabled)
}

func TestSetCanvasSize(t *testing.T) {
	v := newTestViewport(t, nil)
	v.SetCanvasSize(800, 600)
	v.SetCanvasSize(0, 10)
	v.SetCanvasSize(math.NaN(), 10)
	assert.Equal(t, 800.0, v.CanvasWidth())
	assert.Equal(t, 600.0, v.CanvasHeight())
}

func TestConfigRoundTrip(t *testing.T) {
	v := newTestViewport(t, func(c *Config) {
		c.MinX, c.MaxX = -100, 100
		c.PanX = 30
		c.Locked = true
	})
	v2, err := New(v.Config())
	require.NoError(t, err)
	assert.Equal(t, v.Config(), v2.Config())
}

// Any sequence of zoom/pan writes keeps zoom and pan within their clamps.
func TestClampsHoldUnderRandomMutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	v := newTestViewport(t, func(c *Config) {
		c.MinZoomFactor, c.MaxZoomFactor = 0.25, 6
		c.MinX, c.MaxX = -80, 120
		c.MinY, c.MaxY = -40, 40
	})

	for i := 0; i < 2000; i++ {
		switch rng.Intn(4) {
		case 0:
			v.SetZoom(Value(rng.Float64() * 10))
		case 1:
			v.SetZoom(Times(0.5 + rng.Float64()))
		case 2:
			v.SetPan(Value(rng.NormFloat64()*1000), Value(rng.NormFloat64()*1000))
		case 3:
			v.SetPan(By(rng.NormFloat64()*100), By(rng.NormFloat64()*100))
		}

		z := v.ZoomFactor()
		require.GreaterOrEqual(t, z, v.MinZoomFactor())
		require.LessOrEqual(t, z, v.MaxZoomFactor())

		require.GreaterOrEqual(t, v.PanX(), -80*v.ZoomFactor())
		require.LessOrEqual(t, v.PanX(), 120*v.ZoomFactor())
		require.GreaterOrEqual(t, v.PanY(), -40*v.ZoomFactor())
		require.LessOrEqual(t, v.PanY(), 40*v.ZoomFactor())
	}
}
