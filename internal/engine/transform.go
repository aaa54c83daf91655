package engine

import (
	"plot-viewport/internal/viewport"
	"plot-viewport/pkg/geometry"
)

// PixelWindow returns the visible range in translated pixel space: the
// canvas edges measured from the logical origin, before dividing by zoom.
// Y grows downward.
func PixelWindow(s viewport.Snapshot) (startX, endX, startY, endY float64) {
	startX = -s.CanvasWidth/2 - s.PanX
	endX = s.CanvasWidth/2 - s.PanX
	startY = -s.CanvasHeight/2 - s.PanY
	endY = s.CanvasHeight/2 - s.PanY
	return
}

// PixelToLogical returns the logical point under canvas pixel (px, py).
//
// The pixel window is divided by zoom to get the logical window, the
// cursor's fractional position is interpolated into it, and Y is flipped
// because canvas Y grows downward while logical Y grows upward.
func PixelToLogical(s viewport.Snapshot, px, py float64) geometry.Point2D {
	startX, endX, startY, endY := PixelWindow(s)
	z := s.ZoomFactor

	fracX := px / s.CanvasWidth
	fracY := py / s.CanvasHeight

	lx := startX/z + (endX/z-startX/z)*fracX
	ly := startY/z + (endY/z-startY/z)*fracY
	return geometry.Pt(lx, -ly)
}

// PixelTransform returns the logical-to-pixel transform for s: scale by
// zoom with Y flipped, then translate to the origin's pixel position.
func PixelTransform(s viewport.Snapshot) geometry.AffineTransform {
	ox, oy := s.Origin()
	return geometry.Translation(ox, oy).Compose(geometry.Scale(s.ZoomFactor, -s.ZoomFactor))
}

// LogicalToPixel returns the canvas pixel at which logical point (lx, ly)
// is drawn.
func LogicalToPixel(s viewport.Snapshot, lx, ly float64) geometry.Point2D {
	return PixelTransform(s).Apply(geometry.Pt(lx, ly))
}

// VisibleWindow returns the logical rectangle covered by the canvas,
// with (X, Y) at its bottom-left corner.
func VisibleWindow(s viewport.Snapshot) geometry.Rect {
	bottomRight := PixelToLogical(s, s.CanvasWidth, s.CanvasHeight)
	topLeft := PixelToLogical(s, 0, 0)
	return geometry.RectFromCorners(topLeft, bottomRight)
}
