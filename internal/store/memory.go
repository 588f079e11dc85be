// internal/store/memory.go
//
// In-memory session store: session id → *game.Engine.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Sessions idle for longer than the TTL are dropped by Sweep.
//   - State is lost when the process restarts; games are not persisted.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle-clone/internal/game"
)

// ErrNotFound is returned by Get for unknown or expired sessions.
var ErrNotFound = errors.New("store: session not found")

// Store holds the live game engines.
type Store interface {
	// Save adds or replaces the engine under its ID.
	Save(ctx context.Context, e *game.Engine) error

	// Get retrieves an engine by session ID and marks it as used.
	Get(ctx context.Context, id string) (*game.Engine, error)

	// Sweep drops sessions idle since before now-TTL and returns how many
	// were removed.
	Sweep(now time.Time) int

	// Len reports the number of live sessions.
	Len() int
}

type entry struct {
	engine   *game.Engine
	lastSeen time.Time
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore constructs an in-memory Store with the given idle TTL.
func NewMemoryStore(ttl time.Duration) Store {
	return &memory{sessions: make(map[string]*entry), ttl: ttl, now: time.Now}
}

func (m *memory) Save(ctx context.Context, e *game.Engine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[e.ID()] = &entry{engine: e, lastSeen: m.now()}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ent, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := m.now()
	if m.ttl > 0 && now.Sub(ent.lastSeen) > m.ttl {
		delete(m.sessions, id)
		return nil, ErrNotFound
	}
	ent.lastSeen = now
	return ent.engine, nil
}

func (m *memory) Sweep(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, ent := range m.sessions {
		if now.Sub(ent.lastSeen) > m.ttl {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
