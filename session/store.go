package session

import "sync"

// Store holds the live session of each conversation. It is the only
// state shared across conversations and tolerates interleaved access
// from their handlers.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns the live session for a conversation.
func (st *Store) Get(chatID int64) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[chatID]
	return s, ok
}

// Put installs a session, replacing any live session for the same
// conversation outright. At most one session per conversation exists at
// all times.
func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ChatID] = s
}

// Remove discards the conversation's session, if any.
func (st *Store) Remove(chatID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, chatID)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Drop removes sess only while it is still the conversation's live
// session, so a replacement installed in the meantime is never
// discarded by accident.
func (st *Store) Drop(sess *Session) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.sessions[sess.ChatID] != sess {
		return false
	}
	delete(st.sessions, sess.ChatID)
	return true
}

// Resolve maps a poll identifier back to the owning live session and
// the correct option recorded for it. A stale identifier, e.g. from a
// session already cancelled or replaced, resolves to nothing and the
// caller drops the event.
func (st *Store) Resolve(pollID string) (*Session, int, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, s := range st.sessions {
		if want, ok := s.peekPoll(pollID); ok {
			return s, want, true
		}
	}
	return nil, 0, false
}

// Commit runs fn only while sess is still the conversation's live
// session. Work finished on behalf of a session that was cancelled or
// replaced in the meantime is discarded by the false return.
func (st *Store) Commit(sess *Session, fn func()) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.sessions[sess.ChatID] != sess {
		return false
	}
	fn()
	return true
}
