// Package roomlock serializes mutation per room. Each room is logically
// independent; the check-then-append on the answer log and the scoring
// pass must not interleave with other writers to the same room.
package roomlock

import (
	"sync"

	"github.com/quizparty/quizparty-go/internal/model"
)

// Manager hands out one mutex per room code
type Manager struct {
	mu    sync.Mutex
	locks map[model.RoomCode]*sync.Mutex
}

// NewManager creates a new lock manager
func NewManager() *Manager {
	return &Manager{
		locks: make(map[model.RoomCode]*sync.Mutex),
	}
}

// Lock acquires the mutex for a room, creating it on first use.
// The returned function releases it.
func (m *Manager) Lock(code model.RoomCode) func() {
	m.mu.Lock()
	lock, ok := m.locks[code]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[code] = lock
	}
	m.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// Forget drops the mutex for a deleted room
func (m *Manager) Forget(code model.RoomCode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, code)
}
