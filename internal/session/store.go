// Package session holds login sessions in memory. Sessions are volatile:
// a restart drops them all, and no TTL is enforced (sessions live until
// logout or shutdown).
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Store maps opaque session tokens to user ids. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]string
}

func NewStore() *Store {
	return &Store{sessions: map[string]string{}}
}

// Create issues a fresh random token bound to userID.
func (s *Store) Create(userID string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = userID
	s.mu.Unlock()
	return token
}

// Resolve returns the user id bound to token, if any.
func (s *Store) Resolve(token string) (string, bool) {
	s.mu.RLock()
	userID, ok := s.sessions[token]
	s.mu.RUnlock()
	return userID, ok
}

// Destroy removes token; destroying an unknown token is a no-op.
func (s *Store) Destroy(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Shutdown invalidates every active session.
func (s *Store) Shutdown() {
	s.mu.Lock()
	s.sessions = map[string]string{}
	s.mu.Unlock()
}

// Len reports the number of active sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
