package animation

import (
	"sync"
	"time"
)

// DefaultInterval is the time between reveals.
const DefaultInterval = 2 * time.Second

// Listener receives playback signals.
//
// Methods are called with the scheduler lock held: they must return promptly
// and must not call back into the Scheduler.
type Listener interface {
	// EdgeRevealed reports that sequence[index] is now visible.
	EdgeRevealed(edgeID string, index int)

	// Finished reports the complete revealed sequence.
	Finished(sequence []string)

	// StatusChanged reports every status transition.
	StatusChanged(status Status)
}

// NopListener ignores every signal.
type NopListener struct{}

func (NopListener) EdgeRevealed(string, int) {}
func (NopListener) Finished([]string) {}
func (NopListener) StatusChanged(Status) {}

// State is a point-in-time copy of the scheduler state.
type State struct {
	Status   Status   `json:"status"`
	Revealed int      `json:"revealed"`
	Sequence []string `json:"sequence"`
}

// Remaining returns how many edges are still hidden.
func (s State) Remaining() int {
	return len(s.Sequence) - s.Revealed
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval sets the tick interval.
// Default: DefaultInterval
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock sets the tick source.
// Default: RealClock{}
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithListener sets the signal receiver.
// Default: NopListener{}
func WithListener(l Listener) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.listener = l
		}
	}
}

// Scheduler reveals a sequence of edge ids over time.
// It is safe for concurrent use.
type Scheduler struct {
	mu       sync.Mutex
	clock    Clock
	interval time.Duration
	listener Listener

	status   Status
	sequence []string
	revealed int

	stop func()
	// generation invalidates ticks from a previous Start.
	generation uint64
}

// New creates an Idle scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:    RealClock{},
		interval: DefaultInterval,
		listener: NopListener{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Interval returns the tick interval.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Start discards any current playback and begins revealing sequence from the
// first edge. An empty sequence finishes immediately.
func (s *Scheduler) Start(sequence []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.generation++
	s.sequence = append([]string(nil), sequence...)
	s.revealed = 0
	s.setStatusLocked(Running)

	if len(s.sequence) == 0 {
		s.finishLocked()
		return
	}

	gen := s.generation
	s.stop = s.clock.Every(s.interval, func() { s.tick(gen) })
}

// Pause makes ticks inert. It reports false unless the scheduler was Running.
func (s *Scheduler) Pause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != Running {
		return false
	}
	s.setStatusLocked(Paused)
	return true
}

// Resume continues revealing from where Pause left off. It reports false
// unless the scheduler was Paused.
func (s *Scheduler) Resume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != Paused {
		return false
	}
	s.setStatusLocked(Running)
	return true
}

// Cancel stops ticking and discards playback state. It reports false when the
// scheduler was already Idle.
func (s *Scheduler) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.generation++
	s.sequence = nil
	s.revealed = 0
	if s.status == Idle {
		return false
	}
	s.setStatusLocked(Idle)
	return true
}

// Status returns the current status.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// State returns a copy of the current state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Status:   s.status,
		Revealed: s.revealed,
		Sequence: append([]string(nil), s.sequence...),
	}
}

// tick reveals the next edge. The tick that reveals the last edge also
// finishes, so a sequence of n edges finishes on tick n.
func (s *Scheduler) tick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || s.status != Running {
		return
	}
	if s.revealed < len(s.sequence) {
		idx := s.revealed
		s.revealed++
		s.listener.EdgeRevealed(s.sequence[idx], idx)
	}
	if s.revealed == len(s.sequence) {
		s.finishLocked()
	}
}

func (s *Scheduler) finishLocked() {
	s.stopLocked()
	s.status = Finished
	s.listener.Finished(append([]string(nil), s.sequence...))
	s.listener.StatusChanged(Finished)
}

func (s *Scheduler) setStatusLocked(status Status) {
	s.status = status
	s.listener.StatusChanged(status)
}

func (s *Scheduler) stopLocked() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}
