package memcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riderquiz/internal/models/quiz_models"
)

func newTestSessions(t *testing.T, capacity int, ttl time.Duration) (*Sessions, *time.Time) {
	t.Helper()
	s, err := NewSessions(capacity, ttl)
	require.NoError(t, err)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestSessionsPutGet(t *testing.T) {
	s, _ := newTestSessions(t, 4, time.Hour)
	session := quiz_models.NewQuizSession("a", nil)
	s.Put(session)

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Same(t, session, got)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestSessionsExpireAndCancel(t *testing.T) {
	s, now := newTestSessions(t, 4, time.Minute)
	session := quiz_models.NewQuizSession("a", nil)
	s.Put(session)

	*now = now.Add(30 * time.Second)
	_, ok := s.Get("a")
	require.True(t, ok, "access extends the lifetime")

	*now = now.Add(45 * time.Second)
	_, ok = s.Get("a")
	require.True(t, ok)

	*now = now.Add(2 * time.Minute)
	_, ok = s.Get("a")
	assert.False(t, ok)
	assert.Error(t, session.Context().Err())
	assert.Zero(t, s.Len())
}

func TestSessionsEvictionCancelsOldest(t *testing.T) {
	s, _ := newTestSessions(t, 2, time.Hour)
	first := quiz_models.NewQuizSession("a", nil)
	s.Put(first)
	s.Put(quiz_models.NewQuizSession("b", nil))
	s.Put(quiz_models.NewQuizSession("c", nil))

	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Error(t, first.Context().Err())
	assert.Equal(t, 2, s.Len())
}

func TestSessionsDelete(t *testing.T) {
	s, _ := newTestSessions(t, 2, time.Hour)
	session := quiz_models.NewQuizSession("a", nil)
	s.Put(session)

	assert.True(t, s.Delete("a"))
	assert.False(t, s.Delete("a"))
	assert.Error(t, session.Context().Err())
}
