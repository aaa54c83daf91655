package render

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerCoalesces(t *testing.T) {
	var draws, seen int
	state := 0
	s := NewScheduler(func() {
		draws++
		seen = state
	})

	for i := 1; i <= 5; i++ {
		state = i
		s.Request()
	}
	assert.True(t, s.Pending())

	assert.True(t, s.Frame())
	assert.False(t, s.Frame())
	assert.Equal(t, 1, draws)
	assert.Equal(t, 5, seen, "draw reads the latest state")
	assert.False(t, s.Pending())
}

func TestSchedulerRequestDuringDrawKeptForNextFrame(t *testing.T) {
	var s *Scheduler
	draws := 0
	s = NewScheduler(func() {
		draws++
		if draws == 1 {
			s.Request()
		}
	})

	s.Request()
	s.Frame()
	assert.True(t, s.Pending())
	s.Frame()
	assert.Equal(t, 2, draws)
	assert.False(t, s.Frame())
}

func TestSchedulerRun(t *testing.T) {
	var draws atomic.Int32
	s := NewScheduler(func() { draws.Add(1) })
	s.Request()
	s.Request()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return draws.Load() == 1 }, time.Second, time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, int32(1), draws.Load())
}
