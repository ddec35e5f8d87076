// Package session keeps short-lived, in-memory conversation history
// keyed by session ID. Histories are capped so the prompt assembled
// for the model stays small, and idle sessions expire.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxMessages is the number of trailing messages retained per session.
const maxMessages = 4

// defaultTTL is how long an idle session survives before eviction.
const defaultTTL = 30 * time.Minute

// Message is a single conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type entry struct {
	messages []Message
	lastSeen time.Time
}

// Store is a concurrency-safe in-memory session store.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
}

// NewStore creates a store with the given idle TTL. A non-positive TTL
// falls back to the default.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
	}
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// History returns a copy of the session's retained messages. An
// unknown session yields an empty history.
func (s *Store) History(id string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil
	}
	e.lastSeen = time.Now()
	out := make([]Message, len(e.messages))
	copy(out, e.messages)
	return out
}

// Append records a turn in the session, creating it if needed, and
// trims the history to the retained window.
func (s *Store) Append(id string, msgs ...Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		e = &entry{}
		s.sessions[id] = e
	}
	e.messages = append(e.messages, msgs...)
	if len(e.messages) > maxMessages {
		e.messages = e.messages[len(e.messages)-maxMessages:]
	}
	e.lastSeen = time.Now()
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run evicts idle sessions until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evict(time.Now())
		}
	}
}

func (s *Store) evict(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
