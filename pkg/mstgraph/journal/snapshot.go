package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/graph"
)

// Version is the snapshot format version.
const Version = 1

// Snapshot is the journaled record of one solve.
type Snapshot struct {
	Version   int       `json:"version"`
	SessionID string    `json:"session_id"`
	Key       string    `json:"key"`
	Timestamp time.Time `json:"timestamp"`

	Scale float64      `json:"scale"`
	Nodes []graph.Node `json:"nodes"`
	Edges []graph.Edge `json:"edges"`

	TotalWeight int64    `json:"total_weight"`
	Components  int      `json:"components"`
	Sequence    []string `json:"sequence"`
}

// Marshal serializes the snapshot to JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal decodes a snapshot and checks its version.
func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	return &s, nil
}

// SolveKey returns the key of the n-th solve of a session, starting at 1.
func SolveKey(n int) string {
	return fmt.Sprintf("solve-%04d", n)
}

// parseSolveKey returns n for a key produced by SolveKey.
func parseSolveKey(key string) (int, bool) {
	var n int
	if _, err := fmt.Sscanf(key, "solve-%d", &n); err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Writer appends snapshots for one session under sequential solve keys.
// Keys continue after the highest solve key already stored for the session,
// so reopening a journal never overwrites earlier entries.
type Writer struct {
	store     Store
	sessionID string

	mu      sync.Mutex
	resumed bool
	last    int
	count   int
}

// NewWriter returns a Writer appending to store under sessionID.
func NewWriter(store Store, sessionID string) *Writer {
	return &Writer{store: store, sessionID: sessionID}
}

// resumeLocked loads the highest existing solve key once.
func (w *Writer) resumeLocked(ctx context.Context) error {
	if w.resumed {
		return nil
	}
	infos, err := w.store.List(ctx, w.sessionID)
	if err != nil {
		return fmt.Errorf("resume journal: %w", err)
	}
	for _, info := range infos {
		if n, ok := parseSolveKey(info.Key); ok && n > w.last {
			w.last = n
		}
	}
	w.resumed = true
	return nil
}

// Append stamps snap with the session, next key and current time, then saves
// it. It returns the key and the encoded size. The key is empty when the
// existing entries could not be read.
func (w *Writer) Append(ctx context.Context, snap Snapshot) (string, int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.resumeLocked(ctx); err != nil {
		return "", 0, err
	}

	key := SolveKey(w.last + 1)
	snap.Version = Version
	snap.SessionID = w.sessionID
	snap.Key = key
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}

	data, err := snap.Marshal()
	if err != nil {
		return key, 0, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := w.store.Save(ctx, w.sessionID, key, data); err != nil {
		return key, len(data), err
	}
	w.last++
	w.count++
	return key, len(data), nil
}

// Count returns the number of snapshots written by this Writer.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// LoadSnapshot loads and decodes one entry.
func LoadSnapshot(ctx context.Context, store Store, sessionID, key string) (*Snapshot, error) {
	data, err := store.Load(ctx, sessionID, key)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}
