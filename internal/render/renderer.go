// Package render draws a viewport frame into a raster image and schedules
// redraws.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"plot-viewport/internal/engine"
	"plot-viewport/internal/plot"
	"plot-viewport/internal/viewport"
	"plot-viewport/pkg/colorutil"
	"plot-viewport/pkg/geometry"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/floats"
)

const (
	defaultStrokeWidth = 1.5
	pointerRadius      = 4
	labelOffset        = 10
	circleSegments     = 24
)

// Frame is everything one draw pass reads.
type Frame struct {
	Snapshot viewport.Snapshot
	Items    []plot.Item
	Readout  engine.Readout
	// ShowReadout is false while no curve exists; the readout is then a
	// meaningless default.
	ShowReadout bool
	// PixelScale is device pixels per canvas unit. Stroke width, marker
	// size and label offset are multiplied by it.
	PixelScale float64
}

// FrameOf captures the current state of e.
func FrameOf(e *engine.Engine) Frame {
	return Frame{
		Snapshot:    e.Snapshot(),
		Items:       e.Items(),
		Readout:     e.Readout(),
		ShowReadout: e.HasCurves(),
		PixelScale:  1,
	}
}

// Scaled returns f for a surface with k device pixels per canvas unit.
// Canvas size, pan and zoom are multiplied by k, so the same logical
// region fills the larger raster. Non-positive or non-finite k returns f.
func (f Frame) Scaled(k float64) Frame {
	if !(k > 0) || math.IsInf(k, 0) || k == 1 {
		return f
	}
	s := f.Snapshot
	s.CanvasWidth *= k
	s.CanvasHeight *= k
	s.PanX *= k
	s.PanY *= k
	s.ZoomFactor *= k
	f.Snapshot = s
	f.Readout.CursorX *= k
	f.PixelScale = f.pixelScale() * k
	return f
}

func (f Frame) pixelScale() float64 {
	if f.PixelScale > 0 {
		return f.PixelScale
	}
	return 1
}

// Renderer draws frames. The zero value is not usable; call NewRenderer.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	Background  color.RGBA
	AxisColor   color.RGBA
	StrokeWidth float64
	Face        font.Face

	ras *vector.Rasterizer
}

// NewRenderer returns a renderer with a white background, black axis and
// the 7x13 fixed font for labels.
func NewRenderer() *Renderer {
	return &Renderer{
		Background:  colorutil.White,
		AxisColor:   colorutil.Black,
		StrokeWidth: defaultStrokeWidth,
		Face:        basicfont.Face7x13,
		ras:         vector.NewRasterizer(0, 0),
	}
}

// Image allocates a canvas-sized image and draws f into it.
func (r *Renderer) Image(f Frame) *image.RGBA {
	w := int(math.Ceil(f.Snapshot.CanvasWidth))
	h := int(math.Ceil(f.Snapshot.CanvasHeight))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	r.Draw(dst, f)
	return dst
}

// Draw clears dst and draws f: axis cross, rects, curves, then the
// pointer readout. Drawing is relative to the logical origin's pixel
// position (w/2+panX, h/2+panY).
func (r *Renderer) Draw(dst *image.RGBA, f Frame) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)

	p := &painter{r: r, dst: dst, s: f.Snapshot, scale: f.pixelScale()}
	p.ox, p.oy = f.Snapshot.Origin()

	if f.Snapshot.AxisEnabled {
		p.axis()
	}
	for _, it := range f.Items {
		it.Accept(p)
	}
	if f.ShowReadout {
		p.pointer(f.Readout)
	}
}

// painter is the per-frame item visitor.
type painter struct {
	r      *Renderer
	dst    *image.RGBA
	s      viewport.Snapshot
	scale  float64
	ox, oy float64
}

func (p *painter) bounds() (w, h float64) {
	b := p.dst.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (p *painter) begin() *vector.Rasterizer {
	b := p.dst.Bounds()
	p.r.ras.Reset(b.Dx(), b.Dy())
	p.r.ras.DrawOp = draw.Over
	return p.r.ras
}

func (p *painter) fill(c color.RGBA) {
	p.r.ras.Draw(p.dst, p.dst.Bounds(), image.NewUniform(c), image.Point{})
}

// addRect adds an axis-aligned rectangle in canvas pixels, clipped to a
// margin around the canvas so huge coordinates stay representable.
func (p *painter) addRect(ras *vector.Rasterizer, x0, y0, x1, y1 float64) {
	w, h := p.bounds()
	x0, x1 = clip(math.Min(x0, x1), -1, w+1), clip(math.Max(x0, x1), -1, w+1)
	y0, y1 = clip(math.Min(y0, y1), -1, h+1), clip(math.Max(y0, y1), -1, h+1)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	ras.MoveTo(float32(x0), float32(y0))
	ras.LineTo(float32(x1), float32(y0))
	ras.LineTo(float32(x1), float32(y1))
	ras.LineTo(float32(x0), float32(y1))
	ras.ClosePath()
}

// axis draws two one-pixel lines through the origin spanning the canvas,
// snapped to the pixel grid so they stay crisp.
func (p *painter) axis() {
	w, h := p.bounds()
	x, y := math.Floor(p.ox), math.Floor(p.oy)
	ras := p.begin()
	p.addRect(ras, x, 0, x+1, h)
	p.addRect(ras, 0, y, w, y+1)
	p.fill(p.r.AxisColor)
}

// VisitRect fills the rect, skipping it when it lies entirely off the canvas.
func (p *painter) VisitRect(rc plot.Rect) {
	z := p.s.ZoomFactor
	x0 := p.ox + rc.X*z
	y0 := p.oy + rc.Y*z
	x1, y1 := x0+rc.Width*z, y0+rc.Height*z

	w, h := p.bounds()
	if !geometry.NewRect(0, 0, w, h).Intersects(geometry.RectFromCorners(geometry.Pt(x0, y0), geometry.Pt(x1, y1))) {
		return
	}
	ras := p.begin()
	p.addRect(ras, x0, y0, x1, y1)
	p.fill(rc.Color)
}

// VisitCurve samples one logical X per pixel column across the visible
// window and strokes the polyline. Non-finite samples break the line.
func (p *painter) VisitCurve(c plot.Curve) {
	w, h := p.bounds()
	n := int(w) + 1
	if n < 2 {
		return
	}
	z := p.s.ZoomFactor
	startX, _, _, _ := engine.PixelWindow(p.s)

	xs := make([]float64, n)
	floats.Span(xs, startX/z, (startX+float64(n-1))/z)

	ras := p.begin()
	limit := 2 * h
	prevOK := false
	var px, py float64
	for i, lx := range xs {
		cx, cy := float64(i), p.oy-c.Eval(lx)*z
		ok := geometry.Pt(cx, cy).IsFinite()
		if ok {
			cy = clip(cy, -limit, h+limit)
			if prevOK {
				p.addSegment(ras, px, py, cx, cy)
			}
		}
		px, py, prevOK = cx, cy, ok
	}
	p.fill(c.Color)
}

// addSegment adds the segment (x0,y0)-(x1,y1) as a quad of the stroke
// width. All quads share one orientation so overlapping coverage adds up.
func (p *painter) addSegment(ras *vector.Rasterizer, x0, y0, x1, y1 float64) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	half := p.r.StrokeWidth * p.scale / 2
	nx, ny := -dy/l*half, dx/l*half

	ras.MoveTo(float32(x0+nx), float32(y0+ny))
	ras.LineTo(float32(x1+nx), float32(y1+ny))
	ras.LineTo(float32(x1-nx), float32(y1-ny))
	ras.LineTo(float32(x0-nx), float32(y0-ny))
	ras.ClosePath()
}

// pointer draws the readout marker and its value label. The value is
// logical, so it is scaled by the current zoom and flipped.
func (p *painter) pointer(rd engine.Readout) {
	cx := p.ox + rd.CursorX
	cy := p.oy - rd.Value*p.s.ZoomFactor
	if !geometry.Pt(cx, cy).IsFinite() {
		return
	}

	radius := pointerRadius * p.scale
	ras := p.begin()
	for i := 0; i <= circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		x := float32(cx + radius*math.Cos(a))
		y := float32(cy + radius*math.Sin(a))
		if i == 0 {
			ras.MoveTo(x, y)
		} else {
			ras.LineTo(x, y)
		}
	}
	ras.ClosePath()
	p.fill(rd.Color)

	off := int(math.Round(labelOffset * p.scale))
	d := &font.Drawer{
		Dst:  p.dst,
		Src:  image.NewUniform(rd.Color),
		Face: p.r.Face,
		Dot:  fixed.P(int(math.Round(cx))+off, int(math.Round(cy))+off),
	}
	d.DrawString(FormatValue(rd.Value))
}

// FormatValue formats a readout value the way the label shows it.
func FormatValue(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
