package service

import (
	"context"
	"sync"
	"time"

	"event_rsvp/internal/models"

	"github.com/google/uuid"
)

const defaultSessionTTL = 12 * time.Hour

// SessionStore keeps admin sessions in memory, keyed by an opaque id.
// Sessions do not survive a process restart.
type SessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]models.Session
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]models.Session),
	}
}

// Ensure the store satisfies the janitor contract at compile time.
var _ Janitor = (*SessionStore)(nil)

// Create registers a fresh session for the given admin and returns it.
func (s *SessionStore) Create(username string) models.Session {
	now := time.Now().UTC()
	sess := models.Session{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Get returns the session with the given id, evicting it if already expired.
func (s *SessionStore) Get(id string) (*models.Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if sess.Expired(time.Now().UTC()) {
		s.Delete(id)
		return nil, false
	}
	return &sess, true
}

// Delete removes a session; unknown ids are a no-op.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len reports the number of stored sessions, expired or not.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Run ticks at the given interval until ctx is canceled, purging expired sessions.
func (s *SessionStore) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.purgeExpired(now.UTC())
		}
	}
}

// purgeExpired drops every session past its expiry and returns how many were removed.
func (s *SessionStore) purgeExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
