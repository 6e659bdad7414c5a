// Package animation plays back an MST edge sequence one edge per tick.
//
// A Scheduler is an explicit state machine over Idle, Running, Paused and
// Finished. Ticks come from a Clock. While Paused the clock keeps ticking but
// each tick is inert, so resuming keeps the original cadence.
//
// Basic usage:
//
//	s := animation.New(
//	    animation.WithInterval(2*time.Second),
//	    animation.WithListener(l),
//	)
//	s.Start([]string{"A_B", "B_C"})
//	s.Pause()
//	s.Resume()
//	s.Cancel()
//
// Tests drive ticks with a ManualClock:
//
//	clock := animation.NewManualClock()
//	s := animation.New(animation.WithClock(clock))
//	s.Start(seq)
//	clock.Tick() // reveals seq[0]
package animation
