package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long a login lasts without renewal.
const DefaultSessionTTL = 12 * time.Hour

type session struct {
	userID    int64
	expiresAt time.Time
}

// Sessions is the in-process login registry: opaque uuid tokens mapped to
// user ids, handed to browsers as a cookie value.
type Sessions struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]*session
}

// NewSessions creates a registry with the given session lifetime;
// ttl <= 0 means DefaultSessionTTL.
func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{ttl: ttl, m: make(map[string]*session)}
}

// Start opens a session for the user and returns its token.
func (s *Sessions) Start(userID int64) string {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[token] = &session{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	return token
}

// UserID resolves a token to the logged-in user. Expired sessions are
// dropped on lookup.
func (s *Sessions) UserID(token string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[token]
	if !ok {
		return 0, false
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.m, token)
		return 0, false
	}
	return sess.userID, true
}

// End terminates a session. Unknown tokens are a no-op.
func (s *Sessions) End(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, token)
}

// EndAllFor terminates every session belonging to the user, e.g. after an
// admin deletes the account.
func (s *Sessions) EndAllFor(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, sess := range s.m {
		if sess.userID == userID {
			delete(s.m, token)
		}
	}
}
