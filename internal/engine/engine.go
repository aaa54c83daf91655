// Package engine implements the viewport coordinate transforms,
// anchor-preserving zoom, and nearest-curve hover search.
package engine

import (
	"image/color"
	"log/slog"
	"math"

	"plot-viewport/internal/plot"
	"plot-viewport/internal/viewport"

	"gonum.org/v1/gonum/floats/scalar"
)

// Zoom steps used by wheel input. Zooming in is proportionally stronger
// than zooming out at the same tick.
const (
	ZoomInStep  = 1.2
	ZoomOutStep = 0.7
)

// zoomTolerance is the absolute and relative tolerance under which a
// stored zoom counts as equal to the requested one.
const zoomTolerance = 1e-12

// Readout is the hover annotation for the curve nearest the cursor.
// CursorX is in translated pixel space (relative to the logical origin's
// pixel column); Value is the curve's logical value at the cursor's logical X.
type Readout struct {
	CursorX float64
	Value   float64
	Color   color.RGBA
}

// Engine combines a Viewport with the ordered item list and the last
// hover readout. It is not safe for concurrent use.
type Engine struct {
	vp      *viewport.Viewport
	items   []plot.Item
	readout Readout
}

// New creates an engine driving vp.
func New(vp *viewport.Viewport) *Engine {
	return &Engine{vp: vp}
}

// Viewport returns the engine's viewport.
func (e *Engine) Viewport() *viewport.Viewport {
	return e.vp
}

// Snapshot returns the current viewport snapshot.
func (e *Engine) Snapshot() viewport.Snapshot {
	return e.vp.Snapshot()
}

// Add appends items in draw order.
func (e *Engine) Add(items ...plot.Item) {
	e.items = append(e.items, items...)
}

// Items returns the items in draw order. The slice must not be modified.
func (e *Engine) Items() []plot.Item {
	return e.items
}

// HasCurves reports whether any curve item exists. Without one the
// readout is never written and callers should not display it.
func (e *Engine) HasCurves() bool {
	for _, it := range e.items {
		if _, ok := it.(plot.Curve); ok {
			return true
		}
	}
	return false
}

// Readout returns the last readout. It is the zero Readout until a hover
// selects a curve.
func (e *Engine) Readout() Readout {
	return e.readout
}

// Pan moves the view by a pixel delta, clamped by the viewport bounds.
func (e *Engine) Pan(dx, dy float64) {
	e.vp.SetPan(viewport.By(dx), viewport.By(dy))
}

// ApplyZoom sets the zoom factor while keeping the logical point under
// pixel (anchorPx, anchorPy) at that pixel.
//
// If the viewport clamps the requested zoom to a different value, the pan
// is left alone and ApplyZoom returns false. The requested and stored zoom
// compare equal within a tolerance of 1e-12 (absolute or relative), so a
// request landing on a limit through float rounding is still accepted.
func (e *Engine) ApplyZoom(req viewport.Number, anchorPx, anchorPy float64) bool {
	s := e.vp.Snapshot()
	ox, oy := s.Origin()
	offsetX := anchorPx - ox
	offsetY := anchorPy - oy

	oldZoom := s.ZoomFactor
	newZoom := req.Resolve(oldZoom)

	e.vp.SetZoom(viewport.Value(newZoom))
	stored := e.vp.ZoomFactor()
	if !scalar.EqualWithinAbsOrRel(newZoom, stored, zoomTolerance, zoomTolerance) {
		Logger().Debug("zoom request clamped, anchor shift skipped",
			slog.Float64("requested", newZoom), slog.Float64("stored", stored))
		return false
	}

	scale := stored / oldZoom
	e.vp.SetPan(viewport.By(offsetX*(1-scale)), viewport.By(offsetY*(1-scale)))
	return true
}

// ZoomIn zooms by ZoomInStep anchored at the given pixel.
func (e *Engine) ZoomIn(anchorPx, anchorPy float64) bool {
	return e.ApplyZoom(viewport.Times(ZoomInStep), anchorPx, anchorPy)
}

// ZoomOut zooms by ZoomOutStep anchored at the given pixel.
func (e *Engine) ZoomOut(anchorPx, anchorPy float64) bool {
	return e.ApplyZoom(viewport.Times(ZoomOutStep), anchorPx, anchorPy)
}

// ResetView restores zoom 1 and pan (0, 0).
func (e *Engine) ResetView() {
	e.vp.SetZoom(viewport.Value(1))
	e.vp.SetPan(viewport.Value(0), viewport.Value(0))
	Logger().Info("view reset")
}

// Hover finds the curve whose value at the cursor's logical X is
// vertically nearest the cursor's logical Y, and stores it as the readout.
// Rects never take part. Ties keep the earliest curve. A curve yielding
// NaN or an infinite distance is never selected.
//
// If no curve is selected the previous readout is kept and Hover returns
// it with false.
func (e *Engine) Hover(px, py float64) (Readout, bool) {
	s := e.vp.Snapshot()
	p := PixelToLogical(s, px, py)

	h := nearestCurve{x: p.X, y: p.Y, minDist: math.Inf(1)}
	for _, it := range e.items {
		it.Accept(&h)
	}
	if !h.found {
		return e.readout, false
	}

	startX, _, _, _ := PixelWindow(s)
	e.readout = Readout{
		CursorX: startX + px,
		Value:   h.value,
		Color:   h.color,
	}
	Logger().Debug("hover",
		slog.Float64("x", p.X), slog.Float64("y", p.Y), slog.Float64("value", h.value))
	return e.readout, true
}

// nearestCurve is the hover visitor.
type nearestCurve struct {
	x, y    float64
	minDist float64

	found bool
	value float64
	color color.RGBA
}

func (n *nearestCurve) VisitRect(plot.Rect) {}

func (n *nearestCurve) VisitCurve(c plot.Curve) {
	value := c.Eval(n.x)
	dist := math.Abs(value - n.y)
	if dist < n.minDist {
		n.minDist = dist
		n.found = true
		n.value = value
		n.color = c.Color
	}
}
