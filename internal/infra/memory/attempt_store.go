package memory

import (
	"sync"

	"quiz-attempt-service/internal/app"
	"quiz-attempt-service/internal/domain"
)

// AttemptStore is an in-memory implementation of app.SessionStore.
type AttemptStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{
		sessions: make(map[string]*app.Session),
	}
}

func (s *AttemptStore) Create(questions []domain.Question) *app.Session {
	session := app.NewSession(questions)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session
	return session
}

func (s *AttemptStore) Get(id string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *AttemptStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
