package session

import (
	"fmt"
	"sync"
)

// Manager tracks all live connection sessions by id.
// All methods are safe for concurrent use; the fields of a returned Session
// are owned by the relay's event mutex, not by this registry.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session Manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// Add registers a new session for the given connection id and transport.
//
// Precondition: id must be non-empty; conn must be non-nil.
// Postcondition: Returns the created Session, or an error if the id is
// already registered.
func (m *Manager) Add(id string, conn Sender) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; exists {
		return nil, fmt.Errorf("connection %q already registered", id)
	}

	sess := &Session{
		ID:   id,
		Conn: conn,
	}
	m.sessions[id] = sess
	return sess, nil
}

// Remove deletes the session for the given connection id.
//
// Postcondition: The id is no longer registered. Returns an error if it was
// not registered.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; !exists {
		return fmt.Errorf("connection %q not found", id)
	}
	delete(m.sessions, id)
	return nil
}

// Get returns the session for the given connection id.
//
// Postcondition: Returns (session, true) if found, or (nil, false) otherwise.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
