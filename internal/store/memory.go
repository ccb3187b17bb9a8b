// internal/store/memory.go
//
// In-memory registry of live deduction sessions.
//
// Characteristics:
//   - Holds game.Session values (Classic/Advanced *game.Game or *game.Oracle)
//     keyed by session ID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; sessions are never resumed.
//   - Idle sessions are dropped by Sweep.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mindreader/go-server/internal/game"
)

var ErrNotFound = errors.New("session not found")

// Store keeps live sessions between requests.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s game.Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (game.Session, error)

	// Delete discards a session. Missing IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Sweep removes sessions untouched since before cutoff and reports how
	// many were removed.
	Sweep(ctx context.Context, cutoff time.Time) int
}

type entry struct {
	session game.Session
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

// NewMemoryStoreWithClock is NewMemoryStore with an explicit clock for touch
// times, so sweeping can share the caller's notion of now.
func NewMemoryStoreWithClock(now func() time.Time) Store {
	return newMemory(now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{sessions: make(map[string]*entry), now: now}
}

func (m *memory) Save(ctx context.Context, s game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = &entry{session: s, touched: m.now()}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.sessions[id]; ok {
		return e.session, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		if e.touched.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Len reports the number of live sessions.
func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
