package mstgraph

import "errors"

// Sentinel errors for editor commands.
var (
	// ErrPlaybackActive indicates a graph edit was attempted while the
	// animation is running or paused.
	ErrPlaybackActive = errors.New("graph editing disabled during playback")

	// ErrNilContext indicates a command was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")
)
