package workflow

import (
	"context"
	"sync"
	"time"
)

// Marker names the workflow that is waiting for free text in a chat.
type Marker string

const (
	MarkerNone           Marker = ""
	MarkerAwaitingSearch Marker = "awaiting_search"
)

// Session is the stored form of a Conversation Session marker.
type Session struct {
	ChatID    int64     `json:"chat_id" bson:"chat_id"`
	UserID    int64     `json:"user_id" bson:"user_id"`
	Marker    Marker    `json:"marker" bson:"marker"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type sessionKey struct {
	chatID int64
	userID int64
}

// MemorySessionStore keeps markers in process memory.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[sessionKey]Marker
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[sessionKey]Marker)}
}

func (s *MemorySessionStore) Load(_ context.Context, chatID, userID int64) (Marker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionKey{chatID, userID}], nil
}

func (s *MemorySessionStore) Save(_ context.Context, chatID, userID int64, marker Marker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if marker == MarkerNone {
		delete(s.sessions, sessionKey{chatID, userID})
		return nil
	}
	s.sessions[sessionKey{chatID, userID}] = marker
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, chatID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey{chatID, userID})
	return nil
}
