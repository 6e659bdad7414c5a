package animation

import "fmt"

// Status is the playback state.
type Status int

const (
	// Idle means nothing is playing.
	Idle Status = iota
	// Running means ticks reveal edges.
	Running
	// Paused means ticks are inert.
	Paused
	// Finished means every edge has been revealed.
	Finished
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Active reports whether playback is in progress (Running or Paused).
func (s Status) Active() bool {
	return s == Running || s == Paused
}

// MarshalText encodes the status as its name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name.
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = Idle
	case "running":
		*s = Running
	case "paused":
		*s = Paused
	case "finished":
		*s = Finished
	default:
		return fmt.Errorf("unknown animation status %q", text)
	}
	return nil
}
