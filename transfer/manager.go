package transfer

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Manager tracks the live upload session of every connected client.
//
// Sessions are keyed by connection identity (the BlueZ device object path),
// never by process-wide state: two centrals writing concurrently each drive
// their own buffer, name and status.
type Manager struct {
	store    Store
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session manager that persists completed uploads
// through the given store.
func NewManager(store Store) *Manager {
	logrus.WithFields(logrus.Fields{
		"function": "NewManager",
	}).Info("Creating upload session manager")

	return &Manager{
		store:    store,
		sessions: make(map[string]*Session),
	}
}

// Session returns the session owned by the given connection identity,
// creating it on first interaction.
func (m *Manager) Session(device string) *Session {
	m.mu.RLock()
	s, ok := m.sessions[device]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-check under the write lock; another event may have created it.
	if s, ok := m.sessions[device]; ok {
		return s
	}

	s = NewSession(device, m.store)
	m.sessions[device] = s
	return s
}

// Drop releases the session owned by the given connection identity. A
// dropped connection is treated as an implicit CANCEL: an in-flight buffer
// is cleared before the session is discarded. Dropping an unknown identity
// is a no-op.
func (m *Manager) Drop(device string) {
	m.mu.Lock()
	s, ok := m.sessions[device]
	delete(m.sessions, device)
	m.mu.Unlock()

	if !ok {
		return
	}

	if s.Status() == StatusStarted {
		s.Abort()
	}

	logrus.WithFields(logrus.Fields{
		"function":   "Drop",
		"session_id": s.ID(),
		"device":     device,
	}).Info("Upload session released")
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
