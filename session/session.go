// Package session holds the per-visitor state that outlives a single
// request: the shopping cart and, after login, the user's identity.
// Sessions are keyed by an opaque token carried in a cookie.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Session struct {
	Token     string
	UserID    *uint
	Email     string
	Cart      map[uint]int // food ID -> quantity
	ExpiresAt time.Time
}

// LoggedIn reports whether an authenticated identity is bound to the session.
func (s *Session) LoggedIn() bool {
	return s.UserID != nil
}

// ClearCart empties the cart, e.g. after a successful checkout.
func (s *Session) ClearCart() {
	s.Cart = make(map[uint]int)
}

// Store is an in-memory session store with a sliding expiry window.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// TTL returns the sliding expiry window sessions are created with.
func (st *Store) TTL() time.Duration {
	return st.ttl
}

// Create makes a fresh session with an empty cart and a random token.
func (st *Store) Create() *Session {
	s := &Session{
		Token:     uuid.NewString(),
		Cart:      make(map[uint]int),
		ExpiresAt: time.Now().Add(st.ttl),
	}
	st.mu.Lock()
	st.sessions[s.Token] = s
	st.mu.Unlock()
	return s
}

// Get returns the live session for a token and slides its expiry.
// Expired sessions are dropped and reported as missing.
func (st *Store) Get(token string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[token]
	if !ok {
		return nil, false
	}
	if time.Now().After(s.ExpiresAt) {
		delete(st.sessions, token)
		return nil, false
	}
	s.ExpiresAt = time.Now().Add(st.ttl)
	return s, true
}

// Delete drops a session, ending it immediately.
func (st *Store) Delete(token string) {
	st.mu.Lock()
	delete(st.sessions, token)
	st.mu.Unlock()
}
