package directory

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Session is one visitor's view state: the current filter criteria and the
// selected record. Criteria changes never touch the selection.
type Session struct {
	ID string

	mu           sync.Mutex
	criteria     Criteria
	selected     *Record
	staleFilters bool
}

// NewSession returns a session with default criteria and no selection.
func NewSession(id string) *Session {
	return &Session{ID: id, criteria: DefaultCriteria()}
}

// Criteria returns the current filter criteria.
func (s *Session) Criteria() Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// SetCriteria replaces the filter criteria.
func (s *Session) SetCriteria(c Criteria) {
	s.mu.Lock()
	s.criteria = c.Normalize()
	s.mu.Unlock()
}

// Select makes r the selected record, replacing any previous selection.
func (s *Session) Select(r Record) {
	s.mu.Lock()
	s.selected = &r
	s.mu.Unlock()
}

// Selected returns the selected record, if any.
func (s *Session) Selected() (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return Record{}, false
	}
	return *s.selected, true
}

// MarkStaleFilters records that the visitor was shown filter choices before
// the vocabulary was built.
func (s *Session) MarkStaleFilters() {
	s.mu.Lock()
	s.staleFilters = true
	s.mu.Unlock()
}

// TakeStaleFilters reports whether the visitor's filter choices are stale
// and clears the mark.
func (s *Session) TakeStaleFilters() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	stale := s.staleFilters
	s.staleFilters = false
	return stale
}

// Sessions is a bounded, expiring set of sessions keyed by ID.
type Sessions struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, *Session]
}

// NewSessions creates a session set holding at most size sessions, each
// expiring ttl after it was last used.
func NewSessions(size int, ttl time.Duration) *Sessions {
	return &Sessions{
		cache: expirable.NewLRU[string, *Session](size, nil, ttl),
	}
}

// Get returns the session for id, creating it if it does not exist. Every
// call restarts the session's ttl.
func (s *Sessions) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.cache.Get(id); ok {
		// expirable.LRU.Get keeps the original expiry; re-adding resets it.
		s.cache.Add(id, sess)
		return sess
	}
	sess := NewSession(id)
	s.cache.Add(id, sess)
	return sess
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	return s.cache.Len()
}
