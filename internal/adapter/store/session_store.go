package store

import (
	"container/list"
	"sync"

	"faq-agent/internal/domain/entity"
)

// SessionStore keeps one capped conversation history per client key.
// Sessions are created lazily, seeded with the fixed instruction messages,
// and live only in process memory. A single mutex serializes every
// read-modify-append so concurrent requests for the same key cannot lose
// updates. Least-recently-used keys are evicted once maxSessions is
// reached, bounding total memory across clients.
type SessionStore struct {
	mu          sync.Mutex
	sessions    map[string]*session
	lru         *list.List // front = most recently used, values are keys
	seed        []entity.Message
	maxMessages int
	maxSessions int
}

type session struct {
	messages []entity.Message
	elem     *list.Element
}

// NewSessionStore builds a store whose sessions start with seed and are
// truncated to maxMessages, always retaining the seed. maxSessions bounds
// the number of distinct client keys.
func NewSessionStore(seed []entity.Message, maxMessages, maxSessions int) *SessionStore {
	if maxMessages < len(seed)+1 {
		maxMessages = len(seed) + 1
	}
	return &SessionStore{
		sessions:    make(map[string]*session),
		lru:         list.New(),
		seed:        append([]entity.Message(nil), seed...),
		maxMessages: maxMessages,
		maxSessions: maxSessions,
	}
}

// Append adds msg to the session for key, creating and seeding the session
// if it does not exist, and returns a copy of the truncated history.
func (s *SessionStore) Append(key string, msg entity.Message) []entity.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.touch(key)
	sess.messages = append(sess.messages, msg)
	sess.messages = s.truncate(sess.messages)
	return copyMessages(sess.messages)
}

// History returns a copy of the current history for key, if any.
func (s *SessionStore) History(key string) ([]entity.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		return nil, false
	}
	return copyMessages(sess.messages), true
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// touch returns the session for key, creating it if needed, and marks it
// most recently used. Callers must hold s.mu.
func (s *SessionStore) touch(key string) *session {
	if sess, ok := s.sessions[key]; ok {
		s.lru.MoveToFront(sess.elem)
		return sess
	}

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		if oldest := s.lru.Back(); oldest != nil {
			s.lru.Remove(oldest)
			delete(s.sessions, oldest.Value.(string))
		}
	}

	sess := &session{messages: copyMessages(s.seed)}
	sess.elem = s.lru.PushFront(key)
	s.sessions[key] = sess
	return sess
}

// truncate keeps the seed instruction messages plus the most recent turns.
// The seed is never evicted, so the persona instruction survives any number
// of appends.
func (s *SessionStore) truncate(msgs []entity.Message) []entity.Message {
	if len(msgs) <= s.maxMessages {
		return msgs
	}
	keep := s.maxMessages - len(s.seed)
	out := msgs[:len(s.seed)]
	return append(out, msgs[len(msgs)-keep:]...)
}

func copyMessages(msgs []entity.Message) []entity.Message {
	return append([]entity.Message(nil), msgs...)
}
