package journal

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store. Data is lost when the process exits.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
	order    []string
	closed   bool
}

type memorySession struct {
	nextSeq int
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	sequence  int
	timestamp time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*memorySession)}
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, sessionID, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	sess, ok := m.sessions[sessionID]
	if !ok {
		sess = &memorySession{entries: make(map[string]memoryEntry)}
		m.sessions[sessionID] = sess
		m.order = append(m.order, sessionID)
	}
	sess.nextSeq++

	sess.entries[key] = memoryEntry{
		data:      append([]byte(nil), data...),
		sequence:  sess.nextSeq,
		timestamp: time.Now().UTC(),
	}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(_ context.Context, sessionID, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	e, ok := sess.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), e.data...), nil
}

// List implements Store.
func (m *MemoryStore) List(_ context.Context, sessionID string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	sess, ok := m.sessions[sessionID]
	if !ok {
		return []Info{}, nil
	}

	infos := make([]Info, 0, len(sess.entries))
	for key, e := range sess.entries {
		infos = append(infos, Info{
			SessionID: sessionID,
			Key:       key,
			Sequence:  e.sequence,
			Timestamp: e.timestamp,
			Size:      int64(len(e.data)),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Sequence < infos[j].Sequence
	})
	return infos, nil
}

// Sessions implements Store.
func (m *MemoryStore) Sessions(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}
	return append([]string{}, m.order...), nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, sessionID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil
	}
	delete(sess.entries, key)
	if len(sess.entries) == 0 {
		m.dropSessionLocked(sessionID)
	}
	return nil
}

// DeleteSession implements Store.
func (m *MemoryStore) DeleteSession(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	m.dropSessionLocked(sessionID)
	return nil
}

func (m *MemoryStore) dropSessionLocked(sessionID string) {
	if _, ok := m.sessions[sessionID]; !ok {
		return
	}
	delete(m.sessions, sessionID)
	for i, id := range m.order {
		if id == sessionID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.sessions = nil
	m.order = nil
	return nil
}

// Len returns the number of entries across all sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, sess := range m.sessions {
		n += len(sess.entries)
	}
	return n
}
