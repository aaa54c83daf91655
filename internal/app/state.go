// Package app holds the shared plot state, the demo scene and the theme.
package app

import (
	"fmt"
	"log"
	"sync"

	"plot-viewport/internal/engine"
	"plot-viewport/internal/plot"
	"plot-viewport/internal/render"
	"plot-viewport/internal/viewport"
)

// State owns the engine and serializes access to it. Input handlers and
// raster generation run on different goroutines, so every engine call goes
// through State.
type State struct {
	mu  sync.RWMutex
	eng *engine.Engine

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different state events.
type EventType int

const (
	// EventViewChanged carries the new viewport.Snapshot.
	EventViewChanged EventType = iota
	// EventReadoutChanged carries the new engine.Readout.
	EventReadoutChanged
	// EventItemsChanged carries the new item count.
	EventItemsChanged
	// EventLockChanged carries the new lock flag.
	EventLockChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a state around a fresh viewport built from cfg.
func NewState(cfg viewport.Config) (*State, error) {
	vp, err := viewport.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating viewport: %w", err)
	}
	return &State{
		eng:       engine.New(vp),
		listeners: make(map[EventType][]EventListener),
	}, nil
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type. Listeners run
// without the state lock held.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Add appends items in draw order.
func (s *State) Add(items ...plot.Item) {
	s.mu.Lock()
	s.eng.Add(items...)
	n := len(s.eng.Items())
	s.mu.Unlock()
	s.Emit(EventItemsChanged, n)
}

// LoadScene builds items from descriptors and appends them. Nothing is
// added if any descriptor is invalid.
func (s *State) LoadScene(descs []plot.Descriptor) error {
	items, err := plot.NewItems(descs...)
	if err != nil {
		return err
	}
	s.Add(items...)
	log.Printf("Loaded %d plot items", len(items))
	return nil
}

// Frame captures everything the renderer needs for one draw.
func (s *State) Frame() render.Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return render.FrameOf(s.eng)
}

// Snapshot returns the current viewport snapshot.
func (s *State) Snapshot() viewport.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eng.Snapshot()
}

// Config returns the viewport's current configuration.
func (s *State) Config() viewport.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eng.Viewport().Config()
}

// Locked reports whether pan and zoom input is disabled.
func (s *State) Locked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eng.Viewport().Locked()
}

// Pan moves the view by a pixel delta. It does nothing while locked and
// reports whether the pan was applied.
func (s *State) Pan(dx, dy float64) bool {
	s.mu.Lock()
	if s.eng.Viewport().Locked() {
		s.mu.Unlock()
		return false
	}
	s.eng.Pan(dx, dy)
	snap := s.eng.Snapshot()
	s.mu.Unlock()

	s.Emit(EventViewChanged, snap)
	return true
}

// Scroll zooms in for a positive wheel delta and out for a negative one,
// anchored at the pixel (x, y). A zero delta or a locked view does nothing.
// It reports whether the zoom was accepted. A request clamped by the zoom
// limits is rejected but may still move the zoom to the limit, so the view
// event fires whenever the snapshot changed.
func (s *State) Scroll(dy, x, y float64) bool {
	if dy == 0 {
		return false
	}
	s.mu.Lock()
	if s.eng.Viewport().Locked() {
		s.mu.Unlock()
		return false
	}
	before := s.eng.Snapshot()
	var ok bool
	if dy > 0 {
		ok = s.eng.ZoomIn(x, y)
	} else {
		ok = s.eng.ZoomOut(x, y)
	}
	snap := s.eng.Snapshot()
	s.mu.Unlock()

	if snap != before {
		s.Emit(EventViewChanged, snap)
	}
	return ok
}

// Hover updates the readout for the cursor at pixel (x, y).
func (s *State) Hover(x, y float64) (engine.Readout, bool) {
	s.mu.Lock()
	r, ok := s.eng.Hover(x, y)
	s.mu.Unlock()

	if ok {
		s.Emit(EventReadoutChanged, r)
	}
	return r, ok
}

// Readout returns the last readout and whether it should be shown.
func (s *State) Readout() (engine.Readout, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eng.Readout(), s.eng.HasCurves()
}

// ResetView restores zoom 1 and pan (0, 0). It is not affected by the lock.
func (s *State) ResetView() {
	s.mu.Lock()
	s.eng.ResetView()
	snap := s.eng.Snapshot()
	s.mu.Unlock()
	s.Emit(EventViewChanged, snap)
}

// SetAxisEnabled shows or hides the axis cross.
func (s *State) SetAxisEnabled(on bool) {
	s.mu.Lock()
	s.eng.Viewport().SetAxisEnabled(on)
	snap := s.eng.Snapshot()
	s.mu.Unlock()
	s.Emit(EventViewChanged, snap)
}

// ToggleLock flips the lock flag and returns the new value.
func (s *State) ToggleLock() bool {
	s.mu.Lock()
	vp := s.eng.Viewport()
	vp.SetLock(viewport.Toggle())
	locked := vp.Locked()
	s.mu.Unlock()
	s.Emit(EventLockChanged, locked)
	return locked
}

// SetCanvasSize follows a resize of the drawing surface.
func (s *State) SetCanvasSize(w, h float64) {
	s.mu.Lock()
	vp := s.eng.Viewport()
	if vp.CanvasWidth() == w && vp.CanvasHeight() == h {
		s.mu.Unlock()
		return
	}
	vp.SetCanvasSize(w, h)
	snap := s.eng.Snapshot()
	s.mu.Unlock()
	s.Emit(EventViewChanged, snap)
}
