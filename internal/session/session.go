// Package session is an in-memory, cookie-keyed session store holding
// the logged-in user and a one-shot flash message.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// User is the minimal identity kept in the session after login.
type User struct {
	ID    int64
	Email string
	Name  string
}

type Session struct {
	mu      sync.Mutex
	ID      string
	user    *User
	message string
}

func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Session) SetUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

func (s *Session) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
}

// PopMessage returns the pending flash message and clears it, so a
// message renders at most once.
func (s *Session) PopMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.message
	s.message = ""
	return msg
}

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session for id, or nil when it does not exist.
func (st *Store) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[id]
}

// New creates a fresh session under a random id.
func (st *Store) New() *Session {
	s := &Session{ID: uuid.NewString()}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Destroy drops the session entirely, ending the login.
func (st *Store) Destroy(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
