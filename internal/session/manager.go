package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sylar-lab/sharks-backend-go/internal/overlay"
)

// Session is one dashboard session. Each session owns an independent
// State: slider settings and the overlay they produced are session-local
// and never shared across sessions.
type Session struct {
	ID        uuid.UUID
	State     *overlay.State
	CreatedAt time.Time

	lastSeen time.Time // guarded by the manager's mutex
}

// Manager is the registry of live sessions with idle expiry
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
}

// NewManager creates a session manager that expires sessions idle for
// longer than ttl
func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
	}
	go m.cleanup()
	return m
}

// Create registers a new session with a fresh Empty state
func (m *Manager) Create() *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.New(),
		State:     overlay.NewState(),
		CreatedAt: now,
		lastSeen:  now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	log.Printf("[SessionManager] Created session %s", s.ID)
	return s
}

// Get returns the session with the given ID and marks it as seen
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = time.Now()
	return s, true
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// cleanup removes idle sessions periodically
func (m *Manager) cleanup() {
	ticker := time.NewTicker(m.ttl)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		now := time.Now()
		for id, s := range m.sessions {
			if now.Sub(s.lastSeen) > m.ttl {
				delete(m.sessions, id)
				log.Printf("[SessionManager] Expired session %s", id)
			}
		}
		m.mu.Unlock()
	}
}
