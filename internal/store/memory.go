package store

import (
	"errors"
	"sync"

	"github.com/fairjack/fairjack-be/internal/game"
)

// ErrNotFound is returned when no session exists for an ID. The API layer
// maps it to the session-expired view rather than an error response.
var ErrNotFound = errors.New("session not found")

// MemoryStore is the in-memory session repository used when no database is
// configured. Sessions live until the process exits.
type MemoryStore struct {
	sessions map[string]*game.Session
	mu       sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*game.Session)}
}

func (s *MemoryStore) SaveSession(sess *game.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ID] = sess
	return nil
}

func (s *MemoryStore) GetSession(id string) (*game.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[id]
	if !exists {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *MemoryStore) DeleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}
