package memcache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"riderquiz/internal/models/quiz_models"
)

type SessionStore interface {
	Put(session *quiz_models.QuizSession)

	// Get returns the session if present and not idle past the TTL, and
	// extends its lifetime. Expired sessions are removed.
	Get(id string) (*quiz_models.QuizSession, bool)

	Delete(id string) bool
	Len() int
}

type entry struct {
	session   *quiz_models.QuizSession
	expiresAt time.Time
}

// Sessions is an in-memory LRU of quiz sessions with sliding expiry.
// Evicted, expired and deleted sessions are closed so any in-flight
// generation for them is cancelled.
type Sessions struct {
	mu    sync.Mutex
	ttl   time.Duration
	cache *lru.Cache[string, *entry]
	now   func() time.Time
}

func NewSessions(capacity int, ttl time.Duration) (*Sessions, error) {
	cache, err := lru.NewWithEvict[string, *entry](capacity, func(_ string, e *entry) {
		e.session.Close()
	})
	if err != nil {
		return nil, err
	}
	return &Sessions{
		ttl:   ttl,
		cache: cache,
		now:   time.Now,
	}, nil
}

func (s *Sessions) Put(session *quiz_models.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Add(session.ID, &entry{
		session:   session,
		expiresAt: s.now().Add(s.ttl),
	})
}

func (s *Sessions) Get(id string) (*quiz_models.QuizSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.ttl > 0 && now.After(e.expiresAt) {
		s.cache.Remove(id) // closes the session
		return nil, false
	}
	e.expiresAt = now.Add(s.ttl)
	return e.session, true
}

func (s *Sessions) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remove(id)
}

func (s *Sessions) Len() int {
	return s.cache.Len()
}
