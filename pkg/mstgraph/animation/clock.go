package animation

import (
	"sort"
	"sync"
	"time"
)

// Clock schedules a periodic callback.
//
// Every calls fn once per interval until stop is called. Implementations must
// never run fn concurrently with itself, and stop must be safe to call from
// inside fn and more than once.
type Clock interface {
	Every(interval time.Duration, fn func()) (stop func())
}

// RealClock ticks on wall-clock time.
type RealClock struct{}

// Every starts a goroutine that calls fn on each tick of a time.Ticker.
func (RealClock) Every(interval time.Duration, fn func()) func() {
	stopCh := make(chan struct{})
	var once sync.Once

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				select {
				case <-stopCh:
					return
				default:
				}
				fn()
			}
		}
	}()

	return func() {
		once.Do(func() { close(stopCh) })
	}
}

// ManualClock is a Clock advanced explicitly. Callbacks run synchronously on
// the goroutine calling Advance or Tick.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	timers map[int]*manualTimer
}

type manualTimer struct {
	id       int
	interval time.Duration
	next     time.Duration
	fn       func()
}

// NewManualClock returns a clock at time zero with no timers.
func NewManualClock() *ManualClock {
	return &ManualClock{timers: make(map[int]*manualTimer)}
}

// Every registers fn to run each time the clock crosses a multiple of interval
// from now.
func (c *ManualClock) Every(interval time.Duration, fn func()) func() {
	if interval <= 0 {
		interval = time.Nanosecond
	}

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.timers[id] = &manualTimer{id: id, interval: interval, next: c.now + interval, fn: fn}
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.timers, id)
		c.mu.Unlock()
	}
}

// Advance moves the clock forward by d, firing due callbacks in deadline order.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		t := c.earliestLocked()
		if t == nil || t.next > target {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = t.next
		t.next += t.interval
		fn := t.fn
		c.mu.Unlock()

		fn()
	}
}

// Tick advances to the earliest pending deadline, firing exactly the timers
// due at that instant. It reports false when no timer is registered.
func (c *ManualClock) Tick() bool {
	c.mu.Lock()
	t := c.earliestLocked()
	if t == nil {
		c.mu.Unlock()
		return false
	}
	d := t.next - c.now
	c.mu.Unlock()

	c.Advance(d)
	return true
}

// Now returns the elapsed manual time.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of registered timers.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *ManualClock) earliestLocked() *manualTimer {
	if len(c.timers) == 0 {
		return nil
	}
	ts := make([]*manualTimer, 0, len(c.timers))
	for _, t := range c.timers {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].next != ts[j].next {
			return ts[i].next < ts[j].next
		}
		return ts[i].id < ts[j].id
	})
	return ts[0]
}
