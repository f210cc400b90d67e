// internal/sched/tickclock.go

package sched

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// TickClock emits wall-clock ticks and counts them atomically.
type TickClock struct {
	Ch    chan struct{}
	count atomic.Int64
	stop  chan struct{}
	once  sync.Once
}

// NewTickClock creates a clock but does not start it.
func NewTickClock(buffer int) *TickClock {
	return &TickClock{
		Ch:   make(chan struct{}, buffer),
		stop: make(chan struct{}),
	}
}

// Start begins emitting ticks at the given interval.
func (c *TickClock) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		defer close(c.Ch)
		for {
			select {
			case <-ticker.C:
				c.count.Add(1)
				// a slow reader must not keep Stop from being observed
				select {
				case c.Ch <- struct{}{}:
				case <-c.stop:
					return
				}
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop signals the clock to stop emitting ticks. It is safe to call twice.
func (c *TickClock) Stop() {
	c.once.Do(func() { close(c.stop) })
}

// Count returns the current tick count atomically.
func (c *TickClock) Count() int64 {
	return c.count.Load()
}

// Replay walks a timeline one simulated tick per clock tick and calls fn
// with the task holding the processor, or 0 when it is idle.
func Replay(ctx context.Context, tl Timeline, interval time.Duration, fn func(tick int, id TaskID)) error {
	end := tl.End()
	if end == 0 {
		return nil
	}
	clock := NewTickClock(1)
	clock.Start(interval)
	defer clock.Stop()

	i := 0
	for tick := 0; tick < end; tick++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.Ch:
		}
		for i < len(tl) && tl[i].End <= tick {
			i++
		}
		var id TaskID
		if i < len(tl) && tl[i].Start <= tick {
			id = tl[i].TaskID
		}
		fn(tick, id)
	}
	return nil
}
