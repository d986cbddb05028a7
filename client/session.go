// Package client is the HTTP consumer of the reservation backend: it holds
// the signed-in session and implements the API surfaces the booking flow and
// the admin ledger depend on.
package client

import (
	"sync"

	"indigo-hotel/booking"
)

// Session is the client-side authentication state: the bearer token plus the
// identity it was issued for. It satisfies booking.IdentityProvider so the
// booking controller can gate submission without owning session state.
type Session struct {
	mu       sync.Mutex
	token    string
	identity booking.Identity
	role     string
}

func NewSession() *Session { return &Session{} }

// Start installs the credentials returned by a successful login.
func (s *Session) Start(token string, identity booking.Identity, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.identity = identity
	s.role = role
}

// Current returns the signed-in identity, or false when logged out.
func (s *Session) Current() (booking.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return booking.Identity{}, false
	}
	return s.identity, true
}

// Token returns the bearer token, empty when logged out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Role returns the role claim of the signed-in user.
func (s *Session) Role() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// IsStaff reports whether the session may use the admin ledger endpoints.
func (s *Session) IsStaff() bool {
	role := s.Role()
	return role == "receptionist" || role == "admin"
}

// Logout drops the credentials.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.identity = booking.Identity{}
	s.role = ""
}
