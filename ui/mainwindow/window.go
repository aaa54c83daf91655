// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"

	"plot-viewport/internal/app"
	"plot-viewport/internal/engine"
	"plot-viewport/internal/render"
	"plot-viewport/internal/version"
	"plot-viewport/pkg/colorutil"
	"plot-viewport/ui/plotcanvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const appTitle = "Plot Viewport"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	state  *app.State
	canvas *plotcanvas.PlotCanvas

	statusBar *widget.Label
	zoomLabel *widget.Label
	axisCheck *widget.Check
	lockCheck *widget.Check
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = plotcanvas.New(mw.state)

	mw.statusBar = widget.NewLabel("Move the pointer over the plot")
	mw.zoomLabel = widget.NewLabel("")
	mw.updateZoomLabel(mw.state.Snapshot().ZoomFactor)

	toolbar := mw.createToolbar()

	content := container.NewBorder(
		toolbar,                           // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		mw.canvas,                         // center
	)

	mw.SetContent(content)
	cfg := mw.state.Config()
	mw.Resize(fyne.NewSize(float32(cfg.CanvasWidth), float32(cfg.CanvasHeight)+80))
	mw.SetOnClosed(mw.canvas.Stop)
}

// createToolbar creates the toolbar with view controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	resetBtn := widget.NewButton("Reset", mw.onReset)
	zoomOutBtn := widget.NewButton("-", mw.onZoomOut)
	zoomInBtn := widget.NewButton("+", mw.onZoomIn)

	mw.axisCheck = widget.NewCheck("Axis", mw.canvas.SetAxisEnabled)
	mw.axisCheck.SetChecked(mw.state.Snapshot().AxisEnabled)

	mw.lockCheck = widget.NewCheck("Lock", func(on bool) {
		if on != mw.state.Locked() {
			mw.canvas.ToggleLock()
		}
	})
	mw.lockCheck.SetChecked(mw.state.Locked())

	return container.NewHBox(
		resetBtn,
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		mw.zoomLabel,
		widget.NewSeparator(),
		mw.axisCheck,
		mw.lockCheck,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		fyne.NewMenuItem("Reset View", mw.onReset),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)
	mw.SetMainMenu(fyne.NewMainMenu(viewMenu, helpMenu))
}

// setupEventHandlers registers for canvas and state events.
func (mw *MainWindow) setupEventHandlers() {
	mw.canvas.OnZoomChange(mw.updateZoomLabel)
	mw.canvas.OnReadout(func(r engine.Readout) {
		mw.updateStatus(fmt.Sprintf("x = %.1f px  value = %s  %s",
			r.CursorX, render.FormatValue(r.Value), colorutil.Hex(r.Color)))
	})
	mw.state.On(app.EventLockChanged, func(data interface{}) {
		if locked, ok := data.(bool); ok && mw.lockCheck.Checked != locked {
			mw.lockCheck.SetChecked(locked)
		}
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) updateZoomLabel(zoom float64) {
	mw.zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
}

// zoomAtCenter zooms about the middle of the canvas.
func (mw *MainWindow) zoomAtCenter(dy float64) {
	before := mw.state.Snapshot()
	if mw.state.Scroll(dy, before.CanvasWidth/2, before.CanvasHeight/2) {
		return
	}
	switch after := mw.state.Snapshot(); {
	case mw.state.Locked():
		mw.updateStatus("View is locked")
	case after.ZoomFactor != before.ZoomFactor:
		mw.updateStatus(fmt.Sprintf("Zoom limited to %.0f%%", after.ZoomFactor*100))
	default:
		mw.updateStatus("Zoom limit reached")
	}
}

func (mw *MainWindow) onZoomIn() {
	mw.zoomAtCenter(1)
}

func (mw *MainWindow) onZoomOut() {
	mw.zoomAtCenter(-1)
}

func (mw *MainWindow) onReset() {
	mw.canvas.ResetView()
	mw.updateStatus("View reset")
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s v%s\n\n"+
			"Pan with drag, zoom with the wheel, hover for values.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			appTitle, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
