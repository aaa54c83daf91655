// Package viewport holds the pan, zoom, and clamp state that maps the
// logical plane onto a fixed-size pixel canvas.
package viewport

import (
	"errors"
	"fmt"
	"math"
)

// Default zoom limits applied when a Config leaves them unset.
const (
	DefaultMinZoomFactor = 0.1
	DefaultZoomFactor    = 1.0
)

// ErrInvalidConfig is returned by New for misconfigured viewports.
var ErrInvalidConfig = errors.New("invalid viewport config")

// Config is the construction-time configuration of a Viewport.
// Bounds are in logical units.
type Config struct {
	CanvasWidth  float64
	CanvasHeight float64

	MinZoomFactor float64
	MaxZoomFactor float64
	ZoomFactor    float64

	PanX float64
	PanY float64

	MinX, MaxX float64
	MinY, MaxY float64

	Locked      bool
	AxisEnabled bool
}

// DefaultConfig returns a config for a canvas of the given size with
// unbounded pan, zoom limits (0.1, +Inf), zoom 1 and the axis cross enabled.
func DefaultConfig(width, height float64) Config {
	return Config{
		CanvasWidth:   width,
		CanvasHeight:  height,
		MinZoomFactor: DefaultMinZoomFactor,
		MaxZoomFactor: math.Inf(1),
		ZoomFactor:    DefaultZoomFactor,
		MinX:          math.Inf(-1),
		MaxX:          math.Inf(1),
		MinY:          math.Inf(-1),
		MaxY:          math.Inf(1),
		AxisEnabled:   true,
	}
}

// withDefaults fills unset (zero) zoom fields. Bounds have no zero-value
// default because 0 is a meaningful bound; start from DefaultConfig instead.
func (c Config) withDefaults() Config {
	if c.MinZoomFactor == 0 {
		c.MinZoomFactor = DefaultMinZoomFactor
	}
	if c.MaxZoomFactor == 0 {
		c.MaxZoomFactor = math.Inf(1)
	}
	if c.ZoomFactor == 0 {
		c.ZoomFactor = DefaultZoomFactor
	}
	return c
}

// Validate reports the first misconfiguration found in c, after zero zoom
// fields have been replaced by their defaults.
func (c Config) Validate() error {
	c = c.withDefaults()
	fields := []struct {
		name string
		v    float64
	}{
		{"canvas width", c.CanvasWidth}, {"canvas height", c.CanvasHeight},
		{"min zoom", c.MinZoomFactor}, {"max zoom", c.MaxZoomFactor}, {"zoom", c.ZoomFactor},
		{"pan x", c.PanX}, {"pan y", c.PanY},
		{"min x", c.MinX}, {"max x", c.MaxX}, {"min y", c.MinY}, {"max y", c.MaxY},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) {
			return fmt.Errorf("%w: %s is NaN", ErrInvalidConfig, f.name)
		}
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 || math.IsInf(c.CanvasWidth, 0) || math.IsInf(c.CanvasHeight, 0) {
		return fmt.Errorf("%w: canvas size %gx%g must be positive and finite", ErrInvalidConfig, c.CanvasWidth, c.CanvasHeight)
	}
	if c.MinZoomFactor <= 0 {
		return fmt.Errorf("%w: min zoom %g must be positive", ErrInvalidConfig, c.MinZoomFactor)
	}
	if c.MinZoomFactor > c.MaxZoomFactor {
		return fmt.Errorf("%w: min zoom %g exceeds max zoom %g", ErrInvalidConfig, c.MinZoomFactor, c.MaxZoomFactor)
	}
	if c.MinX > c.MaxX {
		return fmt.Errorf("%w: min x %g exceeds max x %g", ErrInvalidConfig, c.MinX, c.MaxX)
	}
	if c.MinY > c.MaxY {
		return fmt.Errorf("%w: min y %g exceeds max y %g", ErrInvalidConfig, c.MinY, c.MaxY)
	}
	return nil
}

// Viewport is the mutable pan/zoom state of one rendering surface.
//
// Every write to zoom or pan goes through a clamping setter, so after any
// mutator MinZoomFactor <= ZoomFactor <= MaxZoomFactor and
// MinX*ZoomFactor <= PanX <= MaxX*ZoomFactor (likewise for Y).
// Pan is stored in pixels; its bounds are logical units scaled by the
// zoom in effect when pan is written.
//
// A Viewport is not safe for concurrent use.
type Viewport struct {
	width, height float64

	minZoom, maxZoom float64
	zoom             float64

	panX, panY float64

	minX, maxX float64
	minY, maxY float64

	locked bool
	axis   bool
}

// New creates a viewport from cfg. Fields are assigned in a fixed order:
// canvas size, zoom limits, pan bounds, zoom, pan, flags. Pan is clamped
// against the configured bounds and zoom, never against stale defaults.
func New(cfg Config) (*Viewport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	v := &Viewport{}
	v.width, v.height = cfg.CanvasWidth, cfg.CanvasHeight
	v.SetZoomLimits(cfg.MinZoomFactor, cfg.MaxZoomFactor)
	v.SetBounds(cfg.MinX, cfg.MaxX, cfg.MinY, cfg.MaxY)
	v.SetZoom(Value(cfg.ZoomFactor))
	v.SetPan(Value(cfg.PanX), Value(cfg.PanY))
	v.locked = cfg.Locked
	v.axis = cfg.AxisEnabled
	return v, nil
}

// Config returns the current state as a Config, suitable for New.
func (v *Viewport) Config() Config {
	return Config{
		CanvasWidth:   v.width,
		CanvasHeight:  v.height,
		MinZoomFactor: v.minZoom,
		MaxZoomFactor: v.maxZoom,
		ZoomFactor:    v.zoom,
		PanX:          v.panX,
		PanY:          v.panY,
		MinX:          v.minX,
		MaxX:          v.maxX,
		MinY:          v.minY,
		MaxY:          v.maxY,
		Locked:        v.locked,
		AxisEnabled:   v.axis,
	}
}

// SetZoom replaces the zoom factor, clamped to the zoom limits, and
// re-clamps pan against the bounds scaled by the new zoom.
// NaN and infinite requests leave the zoom unchanged.
func (v *Viewport) SetZoom(z Number) {
	nz := z.Resolve(v.zoom)
	if math.IsNaN(nz) || math.IsInf(nz, 0) {
		return
	}
	v.zoom = clamp(nz, v.minZoom, v.maxZoom)
	v.panX = clampScaled(v.panX, v.minX, v.maxX, v.zoom)
	v.panY = clampScaled(v.panY, v.minY, v.maxY, v.zoom)
}

// SetPanX replaces the horizontal pan, clamped to [MinX*zoom, MaxX*zoom].
func (v *Viewport) SetPanX(x Number) {
	nx := x.Resolve(v.panX)
	if math.IsNaN(nx) {
		return
	}
	v.panX = clampScaled(nx, v.minX, v.maxX, v.zoom)
}

// SetPanY replaces the vertical pan, clamped to [MinY*zoom, MaxY*zoom].
func (v *Viewport) SetPanY(y Number) {
	ny := y.Resolve(v.panY)
	if math.IsNaN(ny) {
		return
	}
	v.panY = clampScaled(ny, v.minY, v.maxY, v.zoom)
}

// SetPan replaces both pan components. Use Keep() to leave an axis unchanged.
func (v *Viewport) SetPan(x, y Number) {
	v.SetPanX(x)
	v.SetPanY(y)
}

// SetBounds replaces the logical pan bounds. Existing pan is not re-clamped;
// callers that want that must set pan again. An inverted or NaN range on
// an axis leaves that axis unchanged.
func (v *Viewport) SetBounds(minX, maxX, minY, maxY float64) {
	if minX <= maxX {
		v.minX, v.maxX = minX, maxX
	}
	if minY <= maxY {
		v.minY, v.maxY = minY, maxY
	}
}

// SetZoomLimits replaces the zoom clamp range. Existing zoom is not
// re-clamped. The call is ignored unless 0 < lo <= hi.
func (v *Viewport) SetZoomLimits(lo, hi float64) {
	if !(lo > 0) || !(lo <= hi) {
		return
	}
	v.minZoom, v.maxZoom = lo, hi
}

// SetLock sets the advisory lock flag.
func (v *Viewport) SetLock(b Bool) {
	v.locked = b.Resolve(v.locked)
}

// SetAxisEnabled toggles drawing of the coordinate cross.
func (v *Viewport) SetAxisEnabled(enabled bool) {
	v.axis = enabled
}

// SetCanvasSize updates the canvas dimensions after the host surface is
// resized. Non-positive or non-finite sizes are ignored.
func (v *Viewport) SetCanvasSize(width, height float64) {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return
	}
	v.width, v.height = width, height
}

func (v *Viewport) CanvasWidth() float64   { return v.width }
func (v *Viewport) CanvasHeight() float64  { return v.height }
func (v *Viewport) ZoomFactor() float64    { return v.zoom }
func (v *Viewport) MinZoomFactor() float64 { return v.minZoom }
func (v *Viewport) MaxZoomFactor() float64 { return v.maxZoom }
func (v *Viewport) PanX() float64          { return v.panX }
func (v *Viewport) PanY() float64          { return v.panY }
func (v *Viewport) Locked() bool           { return v.locked }
func (v *Viewport) AxisEnabled() bool      { return v.axis }

// Bounds returns the logical pan bounds.
func (v *Viewport) Bounds() (minX, maxX, minY, maxY float64) {
	return v.minX, v.maxX, v.minY, v.maxY
}

// Snapshot returns a value copy of the state the transforms depend on.
func (v *Viewport) Snapshot() Snapshot {
	return Snapshot{
		CanvasWidth:  v.width,
		CanvasHeight: v.height,
		PanX:         v.panX,
		PanY:         v.panY,
		ZoomFactor:   v.zoom,
		AxisEnabled:  v.axis,
	}
}

// Snapshot is an immutable view of a Viewport at one instant.
type Snapshot struct {
	CanvasWidth  float64
	CanvasHeight float64
	PanX         float64
	PanY         float64
	ZoomFactor   float64
	AxisEnabled  bool
}

// Origin returns the pixel position of the logical origin.
func (s Snapshot) Origin() (x, y float64) {
	return s.CanvasWidth/2 + s.PanX, s.CanvasHeight/2 + s.PanY
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// clampScaled clamps v into [lo*zoom, hi*zoom]. An infinite bound stays
// infinite at any positive zoom.
func clampScaled(v, lo, hi, zoom float64) float64 {
	return clamp(v, lo*zoom, hi*zoom)
}
