package form

import (
	"sync"

	"github.com/Awindblowsggggg/Telegrambot/internal/record"
)

// Session is the mutable per-conversation form state: the pending step
// plus the accumulator of already-validated answers. A session belongs
// to exactly one chat and is never shared between conversations.
type Session struct {
	ChatID      int64
	SubmittedBy string
	Step        Step
	Draft       record.Record
}

// Sessions maps chat ids to their active form session. Creation happens
// on begin and removal on every terminal transition; there is no other
// way in or out of the map.
type Sessions struct {
	mu     sync.RWMutex
	active map[int64]*Session
}

// NewSessions returns an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{active: make(map[int64]*Session)}
}

// Get returns the active session for a chat, if any.
func (s *Sessions) Get(chatID int64) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.active[chatID]
	return sess, ok
}

// Put registers a freshly created session.
func (s *Sessions) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[sess.ChatID] = sess
}

// Remove drops the session for a chat.
func (s *Sessions) Remove(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, chatID)
}

// Active reports whether a chat currently has a form in progress.
func (s *Sessions) Active(chatID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.active[chatID]
	return ok
}
