// README: Session manager; keeps per-session state and the backend bearer token.
package session

import (
	"sync"

	"github.com/google/uuid"

	"keepify/internal/modules/draft"
)

// Session couples the reducer-managed state with the backend credential for
// one browsing session. The token itself is persisted in the client cookie;
// this copy only lives for the process lifetime.
type Session struct {
	ID    string
	State State
	Draft draft.Order
	Token string
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

func (m *Manager) Create() *Session {
	s := &Session{ID: uuid.New().String(), State: Initial()}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	return s, ok
}

// Snapshot returns a copy of the session taken under the lock. Field reads off
// the shared pointer race with Dispatch; readers go through here instead. The
// copied State shares the User pointer, which reducers replace but never
// mutate in place.
func (m *Manager) Snapshot(id string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// AttachToken stores the credential only when the session holds none yet.
func (m *Manager) AttachToken(id, token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.Token != "" {
		return false
	}
	s.Token = token
	return true
}

// Dispatch applies a reducer to the session's state under the manager lock.
func (m *Manager) Dispatch(id string, reduce func(State) State) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return false
	}
	s.State = reduce(s.State)
	return true
}

// DispatchDraft applies a draft reducer and returns the resulting draft.
func (m *Manager) DispatchDraft(id string, reduce func(draft.Order) draft.Order) (draft.Order, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return draft.Initial(), false
	}
	s.Draft = reduce(s.Draft)
	return s.Draft, true
}

func (m *Manager) SetToken(id, token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return false
	}
	s.Token = token
	return true
}

func (m *Manager) Drop(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
