package backend

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"periolifts/fitness-client/internal/domain"
)

// AuthEvent describes a change of the stored authentication state.
type AuthEvent struct {
	Token string
	User  domain.User
}

// AuthStore holds the bearer token and the authenticated user record, and
// publishes change events to subscribers. Safe for concurrent use.
type AuthStore struct {
	mu      sync.RWMutex
	token   string
	user    domain.User
	subs    map[int]func(AuthEvent)
	nextSub int
}

func NewAuthStore() *AuthStore {
	return &AuthStore{subs: make(map[int]func(AuthEvent))}
}

// Save replaces the stored token and user and notifies subscribers.
func (s *AuthStore) Save(token string, user domain.User) {
	s.mu.Lock()
	s.token = token
	s.user = user
	subs := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(AuthEvent{Token: token, User: user})
	}
}

// Clear drops the stored token and user and notifies subscribers.
func (s *AuthStore) Clear() {
	s.mu.Lock()
	s.token = ""
	s.user = domain.User{}
	subs := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(AuthEvent{})
	}
}

func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *AuthStore) User() domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsValid reports whether a token is present and not expired. The expiry is
// read from the JWT claims without signature verification: the client never
// holds the signing secret, the backend re-verifies every request anyway.
func (s *AuthStore) IsValid() bool {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Not a JWT (Appwrite session secrets are opaque): treat presence as valid.
		return true
	}
	// req=false: a missing exp claim still reads as valid.
	return claims.VerifyExpiresAt(time.Now().Unix(), false)
}

// OnChange registers fn for auth state changes and returns an unsubscribe
// func. fn is invoked synchronously from Save/Clear.
func (s *AuthStore) OnChange(fn func(AuthEvent)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// snapshot copies the subscriber list; callers must hold mu.
func (s *AuthStore) snapshot() []func(AuthEvent) {
	out := make([]func(AuthEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}
