package render

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"plot-viewport/internal/engine"
)

// DefaultFrameInterval is the display refresh period used by Run.
const DefaultFrameInterval = time.Second / 60

// Scheduler coalesces render requests into at most one draw per frame.
// N requests before a frame boundary produce a single draw that reads the
// latest state when it runs, never a queue of stale snapshots.
//
// Request may be called from any goroutine.
type Scheduler struct {
	mu      sync.Mutex
	pending bool
	draw    func()
}

// NewScheduler returns a scheduler that calls draw for each coalesced frame.
func NewScheduler(draw func()) *Scheduler {
	return &Scheduler{draw: draw}
}

// Request asks for a redraw on the next frame.
func (s *Scheduler) Request() {
	s.mu.Lock()
	s.pending = true
	s.mu.Unlock()
}

// Pending reports whether a redraw has been requested since the last frame.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Frame runs one frame boundary: if a redraw is pending it clears the
// request and draws once. It reports whether it drew. A Request issued
// during the draw is kept for the next frame.
func (s *Scheduler) Frame() bool {
	s.mu.Lock()
	if !s.pending {
		s.mu.Unlock()
		return false
	}
	s.pending = false
	s.mu.Unlock()

	s.draw()
	return true
}

// Run calls Frame every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	log := engine.Logger()
	log.Debug("frame scheduler started", slog.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("frame scheduler stopped")
			return
		case <-ticker.C:
			s.Frame()
		}
	}
}
