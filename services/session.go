package services

import (
	"sync"

	"food-storefront/models"
)

type SessionState int

const (
	Anonymous SessionState = iota
	Authenticated
)

func (s SessionState) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Session holds at most one logged-in account. There is no expiry.
type Session struct {
	mu        sync.RWMutex
	account   *models.UserAccount
	listeners []func(*models.UserAccount)
}

// Login sets the session unconditionally. Credentials are checked by the caller.
func (s *Session) Login(account models.UserAccount) {
	c := account.Clone()
	s.mu.Lock()
	s.account = &c
	s.mu.Unlock()
	s.notify()
}

func (s *Session) Logout() {
	s.mu.Lock()
	s.account = nil
	s.mu.Unlock()
	s.notify()
}

// Update replaces the logged-in account wholesale.
func (s *Session) Update(account models.UserAccount) error {
	c := account.Clone()
	s.mu.Lock()
	if s.account == nil {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	s.account = &c
	s.mu.Unlock()
	s.notify()
	return nil
}

// Current returns a copy of the logged-in account.
func (s *Session) Current() (models.UserAccount, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return models.UserAccount{}, false
	}
	return s.account.Clone(), true
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return Anonymous
	}
	return Authenticated
}

// Subscribe registers fn to run after every transition. fn gets nil on logout.
func (s *Session) Subscribe(fn func(*models.UserAccount)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Session) notify() {
	s.mu.RLock()
	var current *models.UserAccount
	if s.account != nil {
		c := s.account.Clone()
		current = &c
	}
	listeners := append(([]func(*models.UserAccount))(nil), s.listeners...)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(current)
	}
}

// Sessions keeps one Session per client key (a Telegram chat id). The bot
// holds a single registry; it is the only place sessions live.
type Sessions struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[int64]*Session)}
}

// Get returns the session for key, creating an anonymous one on first use.
func (r *Sessions) Get(key int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[key]
	if !ok {
		s = &Session{}
		r.sessions[key] = s
	}
	return s
}
