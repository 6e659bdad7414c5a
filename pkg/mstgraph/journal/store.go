// Package journal keeps a history of MST solves.
//
// Each solve is stored as a JSON Snapshot under (session ID, key). The
// journal is write-only from the editor's point of view: state is never
// restored from it, it exists for inspection and replay tooling.
package journal

import (
	"context"
	"errors"
	"time"
)

// Store persists journal entries.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores data for (sessionID, key), overwriting an existing entry.
	Save(ctx context.Context, sessionID, key string, data []byte) error

	// Load retrieves an entry. Returns ErrNotFound if it doesn't exist.
	Load(ctx context.Context, sessionID, key string) ([]byte, error)

	// List returns the entries of a session ordered by sequence.
	// Returns an empty slice (not an error) for an unknown session.
	List(ctx context.Context, sessionID string) ([]Info, error)

	// Sessions returns every session ID, oldest first.
	Sessions(ctx context.Context) ([]string, error)

	// Delete removes one entry. Missing entries are not an error.
	Delete(ctx context.Context, sessionID, key string) error

	// DeleteSession removes every entry of a session.
	DeleteSession(ctx context.Context, sessionID string) error

	// Close releases resources.
	Close() error
}

// Info describes an entry without loading it.
type Info struct {
	SessionID string    `json:"session_id"`
	Key       string    `json:"key"`
	Sequence  int       `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`
	Size      int64     `json:"size"`
}

var (
	// ErrNotFound indicates an entry doesn't exist.
	ErrNotFound = errors.New("journal entry not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("journal store closed")
)
