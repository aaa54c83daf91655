// Package plotcanvas provides the interactive plot surface: a raster that
// draws the scene and forwards drag, wheel and hover input to the state.
package plotcanvas

import (
	"context"
	"image"
	"sync"

	"plot-viewport/internal/app"
	"plot-viewport/internal/engine"
	"plot-viewport/internal/render"
	"plot-viewport/internal/viewport"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// PlotCanvas displays the plot and turns pointer input into viewport
// operations. Dragging pans, the wheel zooms about the cursor and moving
// the pointer updates the readout. Pan and zoom are ignored while locked.
type PlotCanvas struct {
	widget.BaseWidget

	state *app.State

	raster *fynecanvas.Raster
	sched  *render.Scheduler
	cancel context.CancelFunc

	// Renderer is reused between frames and is not safe for concurrent use.
	rmu      sync.Mutex
	renderer *render.Renderer

	cbMu     sync.Mutex
	lastZoom float64
	hovering bool

	// Callbacks
	onZoomChange func(zoom float64)
	onReadout    func(r engine.Readout)
}

var (
	_ fyne.Draggable    = (*PlotCanvas)(nil)
	_ fyne.Scrollable   = (*PlotCanvas)(nil)
	_ desktop.Hoverable = (*PlotCanvas)(nil)
)

// New creates a plot canvas bound to state and starts its frame loop.
// Call Stop when the canvas is discarded.
func New(state *app.State) *PlotCanvas {
	pc := &PlotCanvas{
		state:    state,
		renderer: render.NewRenderer(),
		lastZoom: state.Snapshot().ZoomFactor,
	}
	pc.raster = fynecanvas.NewRaster(pc.draw)
	pc.raster.ScaleMode = fynecanvas.ImageScalePixels
	pc.sched = render.NewScheduler(pc.raster.Refresh)

	state.On(app.EventViewChanged, pc.viewChanged)
	state.On(app.EventReadoutChanged, pc.readoutChanged)
	state.On(app.EventItemsChanged, func(interface{}) { pc.sched.Request() })
	state.On(app.EventLockChanged, func(interface{}) { pc.sched.Request() })

	ctx, cancel := context.WithCancel(context.Background())
	pc.cancel = cancel
	go pc.sched.Run(ctx, render.DefaultFrameInterval)

	pc.ExtendBaseWidget(pc)
	pc.sched.Request()
	return pc
}

// Stop ends the frame loop.
func (pc *PlotCanvas) Stop() {
	pc.cancel()
}

// OnZoomChange sets a callback invoked with the new zoom factor whenever
// it changes.
func (pc *PlotCanvas) OnZoomChange(callback func(zoom float64)) {
	pc.cbMu.Lock()
	pc.onZoomChange = callback
	pc.cbMu.Unlock()
}

// OnReadout sets a callback invoked when hovering selects a curve.
func (pc *PlotCanvas) OnReadout(callback func(r engine.Readout)) {
	pc.cbMu.Lock()
	pc.onReadout = callback
	pc.cbMu.Unlock()
}

// ResetView restores zoom 1 and pan (0, 0).
func (pc *PlotCanvas) ResetView() {
	pc.state.ResetView()
}

// SetAxisEnabled shows or hides the axis cross.
func (pc *PlotCanvas) SetAxisEnabled(on bool) {
	pc.state.SetAxisEnabled(on)
}

// ToggleLock flips the pan/zoom lock and returns the new value.
func (pc *PlotCanvas) ToggleLock() bool {
	return pc.state.ToggleLock()
}

// Dragged pans by the drag delta.
func (pc *PlotCanvas) Dragged(ev *fyne.DragEvent) {
	pc.state.Pan(float64(ev.Dragged.DX), float64(ev.Dragged.DY))
}

// DragEnd implements fyne.Draggable.
func (pc *PlotCanvas) DragEnd() {}

// Scrolled zooms in for wheel-up and out for wheel-down, keeping the point
// under the cursor fixed.
func (pc *PlotCanvas) Scrolled(ev *fyne.ScrollEvent) {
	pc.state.Scroll(float64(ev.Scrolled.DY), float64(ev.Position.X), float64(ev.Position.Y))
}

// MouseIn implements desktop.Hoverable.
func (pc *PlotCanvas) MouseIn(ev *desktop.MouseEvent) {
	pc.cbMu.Lock()
	pc.hovering = true
	pc.cbMu.Unlock()
	pc.MouseMoved(ev)
}

// MouseMoved updates the readout for the pointer position.
func (pc *PlotCanvas) MouseMoved(ev *desktop.MouseEvent) {
	pc.state.Hover(float64(ev.Position.X), float64(ev.Position.Y))
}

// MouseOut implements desktop.Hoverable. The last readout stays visible.
func (pc *PlotCanvas) MouseOut() {
	pc.cbMu.Lock()
	pc.hovering = false
	pc.cbMu.Unlock()
}

// Hovering reports whether the pointer is over the canvas.
func (pc *PlotCanvas) Hovering() bool {
	pc.cbMu.Lock()
	defer pc.cbMu.Unlock()
	return pc.hovering
}

// Resize keeps the viewport's canvas size in step with the widget.
func (pc *PlotCanvas) Resize(size fyne.Size) {
	pc.BaseWidget.Resize(size)
	pc.state.SetCanvasSize(float64(size.Width), float64(size.Height))
}

func (pc *PlotCanvas) viewChanged(data interface{}) {
	pc.sched.Request()

	snap, ok := data.(viewport.Snapshot)
	if !ok {
		return
	}
	pc.cbMu.Lock()
	changed := snap.ZoomFactor != pc.lastZoom
	pc.lastZoom = snap.ZoomFactor
	cb := pc.onZoomChange
	pc.cbMu.Unlock()

	if changed && cb != nil {
		cb(snap.ZoomFactor)
	}
}

func (pc *PlotCanvas) readoutChanged(data interface{}) {
	pc.sched.Request()

	r, ok := data.(engine.Readout)
	if !ok {
		return
	}
	pc.cbMu.Lock()
	cb := pc.onReadout
	pc.cbMu.Unlock()
	if cb != nil {
		cb(r)
	}
}

// draw is the raster generator. w and h are device pixels; the frame is
// scaled from canvas units so the image maps one-to-one onto the screen.
func (pc *PlotCanvas) draw(w, h int) image.Image {
	f := pc.state.Frame()
	pc.rmu.Lock()
	defer pc.rmu.Unlock()

	if w <= 0 || h <= 0 || f.Snapshot.CanvasWidth <= 0 {
		return pc.renderer.Image(f)
	}
	f = f.Scaled(float64(w) / f.Snapshot.CanvasWidth)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	pc.renderer.Draw(dst, f)
	return dst
}

// CreateRenderer implements fyne.Widget.
func (pc *PlotCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &plotCanvasRenderer{canvas: pc}
}

type plotCanvasRenderer struct {
	canvas *PlotCanvas
}

func (r *plotCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
}

func (r *plotCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *plotCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *plotCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *plotCanvasRenderer) Destroy() {
	r.canvas.Stop()
}
